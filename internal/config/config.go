package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env             string        `env:"ENV"`
	Message         string        `env:"MESSAGE" envDefault:"Bill Payment Due"`
	CustomersFile   string        `env:"CUSTOMERS_FILE"`
	RemindSchedule  string        `env:"REMIND_SCHEDULE" envDefault:"@every 1m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	Telegram        Telegram      `envPrefix:"TELEGRAM_"`
}

// Telegram configures the optional telegram channel. It is registered only
// when a token is present.
type Telegram struct {
	Token       string        `env:"TOKEN"`
	ChatID      int64         `env:"CHAT_ID"`
	APIEndpoint string        `env:"API_ENDPOINT"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"10s"`
	DailyLimit  int           `env:"DAILY_LIMIT"`
}

func (t Telegram) Enabled() bool {
	return t.Token != ""
}

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}
