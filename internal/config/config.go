// Package config has a configuration structure
package config

import "time"

// Config contains configuration data
type Config struct {
	UsernamePostgres string `env:"POSTGRES_USER" envDefault:"postgres"`
	PasswordPostgres string `env:"POSTGRES_PASSWORD" envDefault:"testpassword"`
	HostPostgres     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PortPostgres     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBNamePostgres   string `env:"POSTGRES_DB" envDefault:"postgres"`

	ServerRedisCache string `env:"SERVER" envDefault:"server1"`
	HostRedisCache   string `env:"HOST" envDefault:"localhost"`
	PortRedisCache   string `env:"PORT" envDefault:"6379"`

	HostHTTP string `env:"HOST_HTTP" envDefault:"localhost"`
	PortHTTP string `env:"PORT_HTTP" envDefault:"8080"`

	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5s"`
	OrderDelay      time.Duration `env:"ORDER_DELAY" envDefault:"1s"`
	StartingBalance float64       `env:"STARTING_BALANCE" envDefault:"10000"`
}
