package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Mongo struct {
	URI      string `env:"MONGO_URI,required"`
	Database string `env:"MONGO_DATABASE" envDefault:"dashboard"`
}

type Kafka struct {
	BootstrapServers string `env:"KAFKA_BOOTSTRAP_SERVERS"`
	AuditTopic       string `env:"KAFKA_AUDIT_TOPIC" envDefault:"dashboard.history-events"`
}

type BrowserUse struct {
	BaseURL       string `env:"BROWSER_USE_API_URL" envDefault:"https://api.browser-use.com"`
	APIKey        string `env:"BROWSER_USE_API_KEY"`
	WebhookSecret string `env:"BROWSER_USE_WEBHOOK_SECRET"`
}

type History struct {
	EventTTL time.Duration `env:"HISTORY_EVENT_TTL" envDefault:"8760h"`
}

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// DefaultUserID/Name identify the single dashboard user; there is no
	// real authentication in this system.
	DefaultUserID   string `env:"DEFAULT_USER_ID" envDefault:"default-user"`
	DefaultUserName string `env:"DEFAULT_USER_NAME" envDefault:"Dashboard User"`

	Mongo      Mongo
	Kafka      Kafka
	BrowserUse BrowserUse
	History    History
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
