package opensearch

// Config holds OpenSearch connection settings. The search mirror is optional:
// leave OPENSEARCH_ADDRESSES empty to disable it.
type Config struct {
	Addresses    []string `env:"OPENSEARCH_ADDRESSES" envSeparator:","`
	Username     string   `env:"OPENSEARCH_USERNAME"`
	Password     string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries   int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
}

// Enabled reports whether any address is configured.
func (c Config) Enabled() bool {
	return len(c.Addresses) > 0
}
