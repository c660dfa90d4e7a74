package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	OAuth     OAuthConfig     `mapstructure:"oauth"`
	Email     EmailConfig     `mapstructure:"email"`
	OTP       OTPConfig       `mapstructure:"otp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Plans     PlansConfig     `mapstructure:"plans"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	LLM       LLMConfig       `mapstructure:"llm"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql, postgres, sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type OAuthConfig struct {
	Google OAuthProviderConfig `mapstructure:"google"`
	Github OAuthProviderConfig `mapstructure:"github"`
}

type OAuthProviderConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

type EmailConfig struct {
	Provider string           `mapstructure:"provider"` // resend, smtp
	From     string           `mapstructure:"from"`
	Resend   ResendConfig     `mapstructure:"resend"`
	SMTP     SMTPConfig       `mapstructure:"smtp"`
	Retry    EmailRetryConfig `mapstructure:"retry"`
}

type ResendConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type EmailRetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
}

type OTPConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

// TTL 验证码有效期，未配置时 15 分钟
func (c OTPConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}

type RateLimitConfig struct {
	Store         string                `mapstructure:"store"` // memory, redis
	SweepInterval time.Duration         `mapstructure:"sweep_interval"`
	Register      RateLimitPresetConfig `mapstructure:"register"`
	Optimize      RateLimitPresetConfig `mapstructure:"optimize"`
	ResendOTP     RateLimitPresetConfig `mapstructure:"resend_otp"`
	General       RateLimitPresetConfig `mapstructure:"general"`
}

type RateLimitPresetConfig struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

type PlansConfig struct {
	Free    PlanConfig `mapstructure:"free"`
	Premium PlanConfig `mapstructure:"premium"`
}

// PlanConfig 套餐的月度配额，Unlimited 优先于 MonthlyLimit
type PlanConfig struct {
	MonthlyLimit int  `mapstructure:"monthly_limit"`
	Unlimited    bool `mapstructure:"unlimited"`
}

type UploadConfig struct {
	MaxSize              int64    `mapstructure:"max_size"`      // 最大文件大小（字节）
	AllowedTypes         []string `mapstructure:"allowed_types"` // 允许的 MIME 类型
	MaxJobDescriptionLen int      `mapstructure:"max_job_description_len"`
}

type ExtractorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LLMConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type AuthConfig struct {
	BcryptCost                 int  `mapstructure:"bcrypt_cost"`
	RequireVerifiedForOptimize bool `mapstructure:"require_verified_for_optimize"`
}

func Load(configPath string) (*Config, error) {
	// .env 中的变量只用于补充，不覆盖已存在的环境变量
	_ = godotenv.Load()

	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	setDefaults()

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("database.driver", "mysql")

	viper.SetDefault("jwt.expire_hours", 720)

	viper.SetDefault("email.provider", "resend")
	viper.SetDefault("email.from", "ResumeForge <no-reply@resumeforge.com>")
	viper.SetDefault("email.resend.base_url", "https://api.resend.com")
	viper.SetDefault("email.retry.max_attempts", 3)
	viper.SetDefault("email.retry.base_delay", 2*time.Second)

	viper.SetDefault("otp.ttl_minutes", 15)

	viper.SetDefault("rate_limit.store", "memory")
	viper.SetDefault("rate_limit.sweep_interval", 5*time.Minute)
	viper.SetDefault("rate_limit.register.max_requests", 5)
	viper.SetDefault("rate_limit.register.window", time.Minute)
	viper.SetDefault("rate_limit.optimize.max_requests", 10)
	viper.SetDefault("rate_limit.optimize.window", time.Minute)
	viper.SetDefault("rate_limit.resend_otp.max_requests", 5)
	viper.SetDefault("rate_limit.resend_otp.window", 10*time.Minute)
	viper.SetDefault("rate_limit.general.max_requests", 20)
	viper.SetDefault("rate_limit.general.window", time.Minute)

	viper.SetDefault("plans.free.monthly_limit", 3)
	viper.SetDefault("plans.premium.unlimited", true)

	viper.SetDefault("upload.max_size", 10*1024*1024)
	viper.SetDefault("upload.allowed_types", []string{
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword",
	})
	viper.SetDefault("upload.max_job_description_len", 10000)

	viper.SetDefault("extractor.base_url", "http://localhost:5001")
	viper.SetDefault("extractor.timeout", 30*time.Second)

	viper.SetDefault("llm.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.model", "gpt-4o")
	viper.SetDefault("llm.temperature", 0.1)
	viper.SetDefault("llm.timeout", 60*time.Second)

	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("auth.require_verified_for_optimize", true)
}
