package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/config"
)

type defaultsConfig struct {
	Name    string        `env:"CFG_TEST_DEFAULT_NAME" envDefault:"rentadmin"`
	Port    int           `env:"CFG_TEST_DEFAULT_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"CFG_TEST_DEFAULT_TIMEOUT" envDefault:"3s"`
	Hosts   []string      `env:"CFG_TEST_DEFAULT_HOSTS" envSeparator:"," envDefault:"a,b"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED"`
}

type requiredConfig struct {
	Value string `env:"CFG_TEST_REQUIRED,required"`
}

type overrideConfig struct {
	Value string `env:"CFG_TEST_OVERRIDE" envDefault:"default"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "rentadmin", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"a", "b"}, cfg.Hosts)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("CFG_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFG_TEST_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	fresh, err := config.Parse[cachedConfig]()
	require.NoError(t, err)
	assert.Equal(t, "second", fresh.Value)
}

func TestLoad_Errors(t *testing.T) {
	require.NoError(t, os.Unsetenv("CFG_TEST_REQUIRED"))

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.ErrorIs(t, config.Load[requiredConfig](nil), config.ErrNilPointer)
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestParse_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFG_TEST_OVERRIDE=from-file\n"), 0o600))
	t.Setenv("CFG_TEST_OVERRIDE", "from-env")

	// LoadEnvFiles may already have run through Load; godotenv never overrides either way.
	config.LoadEnvFiles(path)

	cfg, err := config.Parse[overrideConfig]()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Value)
}
