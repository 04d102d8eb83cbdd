package cfg

import (
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	FirebaseDatabaseURL string `env:"FIREBASE_DATABASE_URL,required"`
	FirebaseCredentials string `env:"FIREBASE_CREDENTIALS"`

	TonnelBaseURL    string `env:"TONNEL_BASE_URL" envDefault:"https://gifts.tonnel.network"`
	GetgemsBaseURL   string `env:"GETGEMS_BASE_URL" envDefault:"https://api.getgems.io"`
	ToncenterBaseURL string `env:"TONCENTER_BASE_URL" envDefault:"https://toncenter.com/api/v3"`
	ToncenterAPIKey  string `env:"TONCENTER_API_KEY"`

	DepositAddress string        `env:"DEPOSIT_ADDRESS,required"`
	ScanInterval   time.Duration `env:"SCAN_INTERVAL" envDefault:"15s"`
	ScanTxLimit    int           `env:"SCAN_TX_LIMIT" envDefault:"50"`

	TelegramBotToken string        `env:"TELEGRAM_BOT_TOKEN"`
	InitDataMaxAge   time.Duration `env:"INITDATA_MAX_AGE" envDefault:"24h"`

	RedisAddr string `env:"REDIS_ADDR"`
}

//
// ListenAddr method - address for the HTTP listener
//
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

//
// ConfigFromEnv func - reads env by struct's fields 'env' annotation
//
func ConfigFromEnv() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}
