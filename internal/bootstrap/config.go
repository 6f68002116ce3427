package bootstrap

import (
	"github.com/jt828/log-metrics/pkg/metrics"
	"github.com/spf13/viper"
)

const EnvPrefix = "LOG_METRICS"

// Config is read from LOG_METRICS_* environment variables.
type Config struct {
	Source       string `mapstructure:"source"`
	Prefix       string `mapstructure:"prefix"`
	LogLevel     string `mapstructure:"log_level"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	MetricsAddr  string `mapstructure:"metrics_addr"`
}

func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetDefault("source", "")
	v.SetDefault("prefix", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("metrics_addr", "")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Metrics(mode metrics.Mode) metrics.Config {
	return metrics.Config{
		Source: c.Source,
		Prefix: c.Prefix,
		Mode:   mode,
	}
}
