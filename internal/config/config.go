package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is read from the environment; a .env file is loaded first when
// present so local runs need no exported shell state.
type Config struct {
	HTTPAddr    string        `env:"HTTP_ADDR" env-default:":8080"`
	DatabaseURL string        `env:"DATABASE_URL" env-default:"peerconnect.db"`
	JWTSecret   string        `env:"JWT_SECRET" env-required:"true"`
	JWTTTL      time.Duration `env:"JWT_TTL" env-default:"24h"`

	BlobDir     string `env:"BLOB_DIR" env-default:"./blobs"`
	BlobBaseURL string `env:"BLOB_BASE_URL" env-default:"http://localhost:8080/blobs"`

	PushEndpoint string `env:"PUSH_ENDPOINT" env-default:"https://exp.host/--/api/v2/push/send"`
	PushEnabled  bool   `env:"PUSH_ENABLED" env-default:"false"`

	PaymentDelay       time.Duration `env:"PAYMENT_DELAY" env-default:"1500ms"`
	PaymentSuccessRate float64       `env:"PAYMENT_SUCCESS_RATE" env-default:"0.9"`

	CacheSweepMaxAge time.Duration `env:"CACHE_SWEEP_MAX_AGE" env-default:"720h"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:""`
}

func Load() (*Config, error) {
	// Missing .env is fine; env vars may come from the shell.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
