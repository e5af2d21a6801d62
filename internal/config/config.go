package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server struct {
		Port         string        `default:"8080" envconfig:"PORT"`
		ReadTimeout  time.Duration `default:"30s" envconfig:"READ_TIMEOUT"`
		WriteTimeout time.Duration `default:"30s" envconfig:"WRITE_TIMEOUT"`
	}

	Database struct {
		URL string `required:"true" envconfig:"DATABASE_URL"`
	}

	PrestaShop struct {
		URL     string        `required:"true" envconfig:"PRESTASHOP_URL"`
		APIKey  string        `required:"true" envconfig:"PRESTASHOP_API_KEY"`
		Timeout time.Duration `default:"30s" envconfig:"PRESTASHOP_TIMEOUT"`
	}

	OpenAI struct {
		APIKey string `required:"true" envconfig:"OPENAI_API_KEY"`
		Model  string `default:"gpt-4o-mini" envconfig:"OPENAI_MODEL"`
	}

	Rewrite struct {
		// Pause after each product, courtesy to the generation API.
		Pacing time.Duration `default:"500ms" envconfig:"REWRITE_PACING"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	return &cfg, nil
}
