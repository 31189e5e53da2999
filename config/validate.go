package config

import (
	"errors"
	"fmt"
)

// Validate checks that required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTPPort)
	}

	if err := c.Stock.validate(); err != nil {
		return err
	}

	if c.LLM.Enabled {
		if c.LLM.Endpoint == "" {
			return errors.New("LLM_ENDPOINT is required when LLM_ENABLED=true")
		}
		if c.LLM.Model == "" {
			return errors.New("LLM_MODEL is required when LLM_ENABLED=true")
		}
	}

	if c.Database.Enabled {
		if c.Database.Host == "" {
			return errors.New("DB_HOST is required when DB_ENABLED=true")
		}
		if c.Database.Name == "" {
			return errors.New("DB_NAME is required when DB_ENABLED=true")
		}
		if c.Database.User == "" {
			return errors.New("DB_USER is required when DB_ENABLED=true")
		}
	}

	if c.QACacheTTL <= 0 {
		return errors.New("QA_CACHE_TTL_HOURS must be >= 1")
	}

	return nil
}

func (s *StockConfig) validate() error {
	if s.Symbol == "" {
		return errors.New("STOCK_SYMBOL is required")
	}
	if !s.Start.Before(s.End) {
		return fmt.Errorf("STOCK_START (%s) must be before STOCK_END (%s)",
			s.Start.Format(DateLayout), s.End.Format(DateLayout))
	}
	if s.CacheFile == "" {
		return errors.New("STOCK_CACHE_FILE is required")
	}
	if s.YahooBaseURL == "" {
		return errors.New("YAHOO_BASE_URL is required")
	}
	if s.Timeout <= 0 {
		return errors.New("YAHOO_TIMEOUT_SECONDS must be >= 1")
	}
	return nil
}
