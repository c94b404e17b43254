package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Mongo
		Timeouts
	}

	Mongo struct {
		URI      string
		Database string
	}

	Timeouts struct {
		Connect time.Duration // Dial + ping budget per connection attempt
		Query   time.Duration // Budget for a single store round trip
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("mongo_uri", DefaultMongoURI)
	v.SetDefault("mongo_database", DefaultDatabaseName)
	v.SetDefault("connect_timeout", "10s")
	v.SetDefault("query_timeout", "15s")

	return &Config{
		Mongo: Mongo{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Timeouts: Timeouts{
			Connect: v.GetDuration("CONNECT_TIMEOUT"),
			Query:   v.GetDuration("QUERY_TIMEOUT"),
		},
	}
}
