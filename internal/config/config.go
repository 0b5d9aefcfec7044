package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"SpendLens"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"spendlens"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Analytics struct {
		// SizeThreshold splits transactions into small/large for the
		// composition chart. Minor currency units.
		SizeThreshold int64 `envconfig:"ANALYTICS_SIZE_THRESHOLD" default:"100000"`

		// TransferCategories lists category IDs treated as capital
		// transfers between own accounts. Such transactions are excluded
		// from aggregates unless the caller opts in.
		TransferCategories []string `envconfig:"ANALYTICS_TRANSFER_CATEGORIES"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// TransferCategorySet parses the configured transfer category IDs into a set.
func (c *Config) TransferCategorySet() (map[uuid.UUID]struct{}, error) {
	set := make(map[uuid.UUID]struct{}, len(c.Analytics.TransferCategories))

	for _, raw := range c.Analytics.TransferCategories {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid transfer category id %q: %w", raw, err)
		}

		set[id] = struct{}{}
	}

	return set, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
