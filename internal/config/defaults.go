package config

const (
	defaultConfigPath            = "~/.config/platter/config.toml"
	projectConfigName            = "platter.toml"
	defaultDotEnvPath            = ".env"
	tokenEnvVar                  = "DISCOGS_TOKEN"
	defaultDiscogsBaseURL        = "https://api.discogs.com"
	defaultDiscogsUserAgent      = "platter/dev +https://github.com/platter/platter"
	defaultDiscogsTimeoutSeconds = 10
	defaultRequestsPerMinute     = 60
	defaultRetryAttempts         = 3
	defaultRetryDelayMillis      = 500
	defaultSearchCacheTTLSeconds = 600
	defaultConcurrency           = 4
	defaultItemTimeoutSeconds    = 60
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Discogs: Discogs{
			BaseURL:               defaultDiscogsBaseURL,
			UserAgent:             defaultDiscogsUserAgent,
			TimeoutSeconds:        defaultDiscogsTimeoutSeconds,
			RequestsPerMinute:     defaultRequestsPerMinute,
			RetryAttempts:         defaultRetryAttempts,
			RetryDelayMillis:      defaultRetryDelayMillis,
			SearchCacheTTLSeconds: defaultSearchCacheTTLSeconds,
		},
		Resolution: Resolution{
			Concurrency:        defaultConcurrency,
			ItemTimeoutSeconds: defaultItemTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
