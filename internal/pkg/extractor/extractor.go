// Package extractor 简历文本提取服务客户端
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

var ErrEmptyText = errors.New("extractor returned no text")

type Client struct {
	client *resty.Client
}

func NewClient(cfg *config.ExtractorConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)
	return &Client{client: client}
}

type extractResponse struct {
	CleanText string `json:"clean_text"`
	Error     string `json:"error"`
}

// ExtractText 上传文件到 /extract-text，返回清洗后的纯文本
func (c *Client) ExtractText(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var result extractResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetMultipartField("file", filename, contentType, bytes.NewReader(data)).
		SetResult(&result).
		SetError(&result).
		Post("/extract-text")
	if err != nil {
		return "", fmt.Errorf("extractor request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("extractor status %d: %s", resp.StatusCode(), result.Error)
	}
	if strings.TrimSpace(result.CleanText) == "" {
		return "", ErrEmptyText
	}
	return result.CleanText, nil
}
