package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSystemInstruction 分析师人设
const DefaultSystemInstruction = "Act as a senior financial analyst. " +
	"Your primary goal is to provide a professional, concise, and objective analysis " +
	"based *only* on the most recent, verifiable information. " +
	"Do not include introductory pleasantries or conversational filler. " +
	"Be direct and factual. Cite sources briefly if possible."

type Config struct {
	App struct {
		Name string
		Port string
		Mode string
	}
	Server struct {
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	}
	CORS struct {
		AllowOrigins []string `mapstructure:"allow_origins"`
	}
	Gemini struct {
		APIKey            string        `mapstructure:"api_key"`
		Model             string        `mapstructure:"model"`
		Timeout           time.Duration `mapstructure:"timeout"`
		SystemInstruction string        `mapstructure:"system_instruction"`
	}
	RabbitMQ struct {
		Url   string
		Queue string
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load 读取配置：环境变量 > 配置文件 > 默认值。path 为空时在 ./config 下查找 config.yml（可选）
func Load(path string) (*Config, error) {
	// .env 不存在不算错误
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ANALYST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// 与 SDK 一致的凭证环境变量
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = getEnvOrDefault("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "grounded-analyst")
	v.SetDefault("app.port", "5000")
	v.SetDefault("app.mode", "release")

	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("cors.allow_origins", []string{
		"http://localhost:5173",
		"https://grounded-analyst-app.vercel.app",
	})

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout", 60*time.Second)
	v.SetDefault("gemini.system_instruction", DefaultSystemInstruction)

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", "analysis.events")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate 只校验会导致服务无法启动的配置；缺少 API key 不在此列
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Port) == "" {
		return errors.New("app.port must not be empty")
	}
	switch c.App.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("app.mode must be debug, release or test, got %q", c.App.Mode)
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		return errors.New("gemini.model must not be empty")
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("gemini.timeout must be > 0, got %s", c.Gemini.Timeout)
	}
	if len(c.CORS.AllowOrigins) == 0 {
		return errors.New("cors.allow_origins must list at least one origin")
	}
	for _, o := range c.CORS.AllowOrigins {
		if o == "*" {
			return errors.New("cors.allow_origins must not contain a wildcard")
		}
	}
	return nil
}

// Addr 监听地址
func (c *Config) Addr() string {
	return ":" + c.App.Port
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
