package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, e.g. THEGAME_SERVER_ADDR.
const EnvPrefix = "THEGAME"

type Config struct {
	App     AppConf     `mapstructure:"app"`
	Log     LogConf     `mapstructure:"log"`
	Server  ServerConf  `mapstructure:"server"`
	Metrics MetricsConf `mapstructure:"metrics"`
	Nats    NatsConf    `mapstructure:"nats"`
	Mongo   MongoConf   `mapstructure:"mongo"`
}

type AppConf struct {
	Name string `mapstructure:"name"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type ServerConf struct {
	Addr string `mapstructure:"addr"`
	// ReadLimit caps a single inbound WebSocket frame in bytes.
	ReadLimit      int64    `mapstructure:"readLimit"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// MetricsConf serves statsviz when Addr is set.
type MetricsConf struct {
	Addr string `mapstructure:"addr"`
}

// NatsConf enables room event fan-out when URL is set.
type NatsConf struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subjectPrefix"`
}

// MongoConf enables the game archive when URL is set.
type MongoConf struct {
	URL         string `mapstructure:"url"`
	Database    string `mapstructure:"database"`
	Collection  string `mapstructure:"collection"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "thegame")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", ":3001")
	v.SetDefault("server.readLimit", 4096)
	v.SetDefault("server.allowedOrigins", []string{})
	v.SetDefault("metrics.addr", "")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subjectPrefix", "thegame")
	v.SetDefault("mongo.url", "")
	v.SetDefault("mongo.database", "thegame")
	v.SetDefault("mongo.collection", "games")
	v.SetDefault("mongo.maxPoolSize", 10)
}

// Load reads configFile (YAML, JSON or TOML) if given, then applies
// THEGAME_* environment overrides on top of the defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadLimit <= 0 {
		return fmt.Errorf("server.readLimit must be positive, got %d", c.Server.ReadLimit)
	}
	if c.Mongo.URL != "" && (c.Mongo.Database == "" || c.Mongo.Collection == "") {
		return fmt.Errorf("mongo.database and mongo.collection are required with mongo.url")
	}
	return nil
}
