package dto

// UsageResponse 本月用量，Remaining / Limit 为 null 表示不限量
type UsageResponse struct {
	Remaining   *int   `json:"remaining"`
	Unlimited   bool   `json:"unlimited"`
	Role        string `json:"role"`
	Used        int    `json:"used"`
	Limit       *int   `json:"limit"`
	PeriodStart string `json:"period_start"`
}
