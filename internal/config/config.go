package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" env-default:":8080"`
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL" env-required:"true"`
	SessionSecret   string        `env:"SESSION_SECRET" env-required:"true"`
	SessionTTL      time.Duration `env:"SESSION_TTL" env-default:"24h"`
	Redis           Redis
}

type Redis struct {
	Addr        string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password    string        `env:"REDIS_PASSWORD" env-default:""`
	DB          int           `env:"REDIS_DB" env-default:"0"`
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	Timeout     time.Duration `env:"REDIS_TIMEOUT" env-default:"3s"`
}

// MustLoad reads configuration from the environment, with a .env file as
// a convenience for local runs. Exits on missing required values.
func MustLoad() *Config {
	_ = godotenv.Load()
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
