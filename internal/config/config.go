package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PROOFPAGE_"

// AppConfig 汇总运行服务与离线任务所需的基础配置。
type AppConfig struct {
	ListenAddr      string        `koanf:"listen_addr"`
	DatabasePath    string        `koanf:"database_path"`
	SessionSecret   string        `koanf:"session_secret"`
	GinMode         string        `koanf:"gin_mode"`
	SiteBaseURL     string        `koanf:"site_base_url"`
	StorageDir      string        `koanf:"storage_dir"`
	MediaBucket     string        `koanf:"media_bucket"`
	SigningSecret   string        `koanf:"signing_secret"`
	SignedURLTTL    time.Duration `koanf:"signed_url_ttl"`
	BackfillBatch   int           `koanf:"backfill_batch"`
	RedisAddr       string        `koanf:"redis_addr"`
	RedisPassword   string        `koanf:"redis_password"`
	RateLimit       int           `koanf:"rate_limit"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	LogLevel        string        `koanf:"log_level"`
}

// Default 返回所有字段的默认值。
func Default() AppConfig {
	return AppConfig{
		ListenAddr:      ":8080",
		DatabasePath:    "proofpage.db",
		SessionSecret:   "proofpage-dev-secret",
		GinMode:         "release",
		SiteBaseURL:     "http://localhost:8080",
		StorageDir:      "data/storage",
		MediaBucket:     "proof-media",
		SigningSecret:   "proofpage-dev-signing-secret",
		SignedURLTTL:    time.Hour,
		BackfillBatch:   100,
		RateLimit:       5,
		RateLimitWindow: time.Minute,
		LogLevel:        "info",
	}
}

// Load 依次叠加默认值、可选的 YAML 文件（PROOFPAGE_CONFIG）与 PROOFPAGE_ 前缀的环境变量。
// 工作目录下存在 .env 时会先载入它。
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return AppConfig{}, err
	}

	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return AppConfig{}, err
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return AppConfig{}, err
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return AppConfig{}, err
	}

	cfg.normalize()
	return cfg, cfg.Validate()
}

func (c *AppConfig) normalize() {
	defaults := Default()
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = defaults.ListenAddr
	}
	c.DatabasePath = strings.TrimSpace(c.DatabasePath)
	if c.DatabasePath == "" {
		c.DatabasePath = defaults.DatabasePath
	}
	c.SiteBaseURL = strings.TrimRight(strings.TrimSpace(c.SiteBaseURL), "/")
	if c.MediaBucket = strings.TrimSpace(c.MediaBucket); c.MediaBucket == "" {
		c.MediaBucket = defaults.MediaBucket
	}
	if c.SignedURLTTL <= 0 {
		c.SignedURLTTL = defaults.SignedURLTTL
	}
	if c.BackfillBatch <= 0 {
		c.BackfillBatch = defaults.BackfillBatch
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = defaults.RateLimitWindow
	}
}

// Validate 检查必须存在的配置项。
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("session_secret must not be empty")
	}
	if strings.TrimSpace(c.SigningSecret) == "" {
		return errors.New("signing_secret must not be empty")
	}
	if strings.Contains(c.MediaBucket, "/") {
		return errors.New("media_bucket must not contain '/'")
	}
	return nil
}
