package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	fileKey := envKey + "_FILE"
	filePath := os.Getenv(fileKey)
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	val := strings.TrimSpace(string(data))
	os.Setenv(envKey, val)
}

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	R2        R2Config
	Zitadel   ZitadelConfig
	Gateway   GatewayConfig
	Worker    WorkerConfig
	Webhook   WebhookConfig
	Engine    EngineConfig
	Preview   PreviewConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	ApiDomain string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration int // hours
}

type RateLimitConfig struct {
	UploadPerHour   int
	AnalyzePerHour  int
	GeneratePerHour int
	PreviewPerMin   int
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
}

type ZitadelConfig struct {
	Domain   string
	ClientID string
	Issuer   string
}

type GatewayConfig struct {
	Enabled bool
}

// WorkerConfig points at the external analysis and render workers.
type WorkerConfig struct {
	AnalyzeURL    string
	GenerateURL   string
	Timeout       time.Duration // dispatch accept/reject
	JobTimeout    time.Duration // running jobs older than this are failed by the sweeper
	SweepInterval time.Duration
}

type WebhookConfig struct {
	Secret string
}

// EngineConfig tunes cut composition.
type EngineConfig struct {
	MaxTempoPct    float64
	CrossfadeBeats float64
	FloorBeats     float64
	MinCrossfade   float64 // seconds
	MaxCrossfade   float64 // seconds
}

type PreviewConfig struct {
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("REDIS_PASSWORD")
	readSecret("JWT_SECRET")
	readSecret("R2_ACCOUNT_ID")
	readSecret("R2_ACCESS_KEY_ID")
	readSecret("R2_SECRET_ACCESS_KEY")
	readSecret("ZITADEL_CLIENT_ID")
	readSecret("WEBHOOK_SECRET")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("server.api_domain", "API_DOMAIN")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	_ = viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	_ = viper.BindEnv("ratelimit.upload_per_hour", "RATELIMIT_UPLOAD_PER_HOUR")
	_ = viper.BindEnv("ratelimit.analyze_per_hour", "RATELIMIT_ANALYZE_PER_HOUR")
	_ = viper.BindEnv("ratelimit.generate_per_hour", "RATELIMIT_GENERATE_PER_HOUR")
	_ = viper.BindEnv("ratelimit.preview_per_min", "RATELIMIT_PREVIEW_PER_MIN")
	_ = viper.BindEnv("r2.account_id", "R2_ACCOUNT_ID")
	_ = viper.BindEnv("r2.access_key_id", "R2_ACCESS_KEY_ID")
	_ = viper.BindEnv("r2.secret_access_key", "R2_SECRET_ACCESS_KEY")
	_ = viper.BindEnv("r2.bucket_name", "R2_BUCKET_NAME")
	_ = viper.BindEnv("r2.public_url", "R2_PUBLIC_URL")
	_ = viper.BindEnv("zitadel.domain", "ZITADEL_DOMAIN")
	_ = viper.BindEnv("zitadel.client_id", "ZITADEL_CLIENT_ID")
	_ = viper.BindEnv("zitadel.issuer", "ZITADEL_ISSUER")
	_ = viper.BindEnv("gateway.enabled", "GATEWAY_ENABLED")
	_ = viper.BindEnv("worker.analyze_url", "WORKER_ANALYZE_URL")
	_ = viper.BindEnv("worker.generate_url", "WORKER_GENERATE_URL")
	_ = viper.BindEnv("worker.timeout", "WORKER_TIMEOUT")
	_ = viper.BindEnv("worker.job_timeout", "WORKER_JOB_TIMEOUT")
	_ = viper.BindEnv("worker.sweep_interval", "WORKER_SWEEP_INTERVAL")
	_ = viper.BindEnv("webhook.secret", "WEBHOOK_SECRET")
	_ = viper.BindEnv("engine.max_tempo_pct", "ENGINE_MAX_TEMPO_PCT")
	_ = viper.BindEnv("engine.crossfade_beats", "ENGINE_CROSSFADE_BEATS")
	_ = viper.BindEnv("engine.floor_beats", "ENGINE_FLOOR_BEATS")
	_ = viper.BindEnv("engine.min_crossfade", "ENGINE_MIN_CROSSFADE")
	_ = viper.BindEnv("engine.max_crossfade", "ENGINE_MAX_CROSSFADE")
	_ = viper.BindEnv("preview.cache_ttl", "PREVIEW_CACHE_TTL")

	// Defaults
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expiration", 24)
	viper.SetDefault("ratelimit.upload_per_hour", 50)
	viper.SetDefault("ratelimit.analyze_per_hour", 20)
	viper.SetDefault("ratelimit.generate_per_hour", 30)
	viper.SetDefault("ratelimit.preview_per_min", 60)

	// Gateway defaults
	viper.SetDefault("gateway.enabled", false)

	// Worker defaults
	viper.SetDefault("worker.analyze_url", "http://localhost:8084/analyze")
	viper.SetDefault("worker.generate_url", "http://localhost:8084/generate")
	viper.SetDefault("worker.timeout", "15s")
	viper.SetDefault("worker.job_timeout", "15m")
	viper.SetDefault("worker.sweep_interval", "1m")

	// Engine defaults
	viper.SetDefault("engine.max_tempo_pct", 8.0)
	viper.SetDefault("engine.crossfade_beats", 2.0)
	viper.SetDefault("engine.floor_beats", 2.0)
	viper.SetDefault("engine.min_crossfade", 0.3)
	viper.SetDefault("engine.max_crossfade", 2.0)

	viper.SetDefault("preview.cache_ttl", "10m")

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetString("server.port"),
			Env:       viper.GetString("server.env"),
			LogLevel:  viper.GetString("server.log_level"),
			ApiDomain: viper.GetString("server.api_domain"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("jwt.secret"),
			Expiration: viper.GetInt("jwt.expiration"),
		},
		RateLimit: RateLimitConfig{
			UploadPerHour:   viper.GetInt("ratelimit.upload_per_hour"),
			AnalyzePerHour:  viper.GetInt("ratelimit.analyze_per_hour"),
			GeneratePerHour: viper.GetInt("ratelimit.generate_per_hour"),
			PreviewPerMin:   viper.GetInt("ratelimit.preview_per_min"),
		},
		R2: R2Config{
			AccountID:       viper.GetString("r2.account_id"),
			AccessKeyID:     viper.GetString("r2.access_key_id"),
			SecretAccessKey: viper.GetString("r2.secret_access_key"),
			BucketName:      viper.GetString("r2.bucket_name"),
			PublicURL:       viper.GetString("r2.public_url"),
		},
		Zitadel: ZitadelConfig{
			Domain:   viper.GetString("zitadel.domain"),
			ClientID: viper.GetString("zitadel.client_id"),
			Issuer:   viper.GetString("zitadel.issuer"),
		},
		Gateway: GatewayConfig{
			Enabled: viper.GetBool("gateway.enabled"),
		},
		Worker: WorkerConfig{
			AnalyzeURL:    viper.GetString("worker.analyze_url"),
			GenerateURL:   viper.GetString("worker.generate_url"),
			Timeout:       viper.GetDuration("worker.timeout"),
			JobTimeout:    viper.GetDuration("worker.job_timeout"),
			SweepInterval: viper.GetDuration("worker.sweep_interval"),
		},
		Webhook: WebhookConfig{
			Secret: viper.GetString("webhook.secret"),
		},
		Engine: EngineConfig{
			MaxTempoPct:    viper.GetFloat64("engine.max_tempo_pct"),
			CrossfadeBeats: viper.GetFloat64("engine.crossfade_beats"),
			FloorBeats:     viper.GetFloat64("engine.floor_beats"),
			MinCrossfade:   viper.GetFloat64("engine.min_crossfade"),
			MaxCrossfade:   viper.GetFloat64("engine.max_crossfade"),
		},
		Preview: PreviewConfig{
			CacheTTL: viper.GetDuration("preview.cache_ttl"),
		},
	}

	return cfg, nil
}
