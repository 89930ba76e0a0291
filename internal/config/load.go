package config

import (
	"github.com/Skotchmaster/ecommerce/pkg/config"
	pkgdb "github.com/Skotchmaster/ecommerce/pkg/db"
)

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustOneOf(cfg.DatabaseDriver, "DATABASE_DRIVER", pkgdb.DriverPostgres, pkgdb.DriverSQLite)
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.OrderTopic, "ORDER_TOPIC")

	return ServiceConfig{Config: cfg}
}

func (c ServiceConfig) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func (c ServiceConfig) SearchEnabled() bool { return c.ElasticURL != "" }
