package config

import "time"

type configDefinition struct {
	Port       int        `koanf:"port"`
	ApiSecret  string     `koanf:"api_secret"`
	Logging    logging    `koanf:"logging"`
	Geocoding  geocoding  `koanf:"geocoding"`
	Refresh    refresh    `koanf:"refresh"`
	Prometheus Prometheus `koanf:"prometheus"`
	Sentry     sentry     `koanf:"sentry"`
	Pyroscope  pyroscope  `koanf:"pyroscope"`
}

func (configDefinition configDefinition) GetPrometheus() Prometheus {
	return configDefinition.Prometheus
}

type geocoding struct {
	Url       string        `koanf:"url"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
	// CacheTtl is how long a city name keeps its resolved zone. Zero disables the cache.
	CacheTtl time.Duration `koanf:"cache_ttl"`
}

type refresh struct {
	Interval time.Duration `koanf:"interval"`
}

type Prometheus struct {
	Enabled    bool      `koanf:"enabled"`
	Token      string    `koanf:"token"`
	BucketSize []float64 `koanf:"bucket_size"`
}

type sentry struct {
	DSN              string  `koanf:"dsn"`
	SampleRate       float64 `koanf:"sample_rate"`
	EnableTracing    bool    `koanf:"enable_tracing"`
	TracesSampleRate float64 `koanf:"traces_sample_rate"`
}

type pyroscope struct {
	ApplicationName      string `koanf:"application_name"`
	ServerAddress        string `koanf:"server_address"`
	ApiKey               string `koanf:"api_key"`
	BasicAuthUser        string `koanf:"basic_auth_user"`
	BasicAuthPassword    string `koanf:"basic_auth_password"`
	Logger               bool   `koanf:"logger"`
	MutexProfileFraction int    `koanf:"mutex_profile_fraction"`
	BlockProfileRate     int    `koanf:"block_profile_rate"`
}

type logging struct {
	Debug      bool `koanf:"debug"`
	SaveLogs   bool `koanf:"save_logs"`
	MaxSize    int  `koanf:"max_size"`
	MaxBackups int  `koanf:"max_backups"`
	MaxAge     int  `koanf:"max_age"`
	Compress   bool `koanf:"compress"`
}

// Config holds the active configuration once ReadConfig has run.
var Config = defaultConfig()

func defaultConfig() configDefinition {
	return configDefinition{
		Port: 9080,
		Logging: logging{
			SaveLogs:   true,
			MaxSize:    50,
			MaxBackups: 10,
			MaxAge:     30,
		},
		Geocoding: geocoding{
			Url:       "https://nominatim.openstreetmap.org",
			UserAgent: "worldclock",
			Timeout:   10 * time.Second,
			CacheTtl:  24 * time.Hour,
		},
		Refresh: refresh{
			Interval: time.Minute,
		},
		Prometheus: Prometheus{
			BucketSize: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		Sentry: sentry{
			SampleRate:       1.0,
			TracesSampleRate: 1.0,
		},
		Pyroscope: pyroscope{
			ApplicationName:      "worldclock",
			MutexProfileFraction: 5,
			BlockProfileRate:     5,
		},
	}
}
