package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"brewshare/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"mongo": map[string]any{
			"connectTimeout": "10s",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "MONGO_CONNECTTIMEOUT", want: "mongo.connectTimeout"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

const sampleYAML = `
env:
  env: development
  serviceName: brewshare
  log:
    level: info
http:
  port: 8080
storage:
  driver: memory
secretKey:
  access: from-yaml
auth:
  tokenTTL: 2h
`

func TestLoadWithEnv_OverlaysEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(sampleYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "brewshare", cfg.Env.ServiceName)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.ErrorContains(t, err, "not found")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BREWSHARE_DOTENV_PROBE=loaded\n"), 0o600))
	t.Setenv("BREWSHARE_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("BREWSHARE_DOTENV_PROBE"))

	require.NoError(t, loadDotEnv(filepath.Join(dir, "missing"), dir))
	assert.Equal(t, "loaded", os.Getenv("BREWSHARE_DOTENV_PROBE"))
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, constants.StorageDriverMemory, cfg.Storage.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, constants.HasherBcrypt, cfg.Auth.Hasher)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "postgres without section",
			mutate:  func(c *Config) { c.Storage.Driver = constants.StorageDriverPostgres },
			wantErr: "postgres section is missing",
		},
		{
			name:    "mongo without uri",
			mutate:  func(c *Config) { c.Storage.Driver = constants.StorageDriverMongo; c.Mongo = &MongoConfig{Database: "brew"} },
			wantErr: "mongo.uri",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "sqlite" },
			wantErr: "unknown storage.driver",
		},
		{
			name:    "unknown hasher",
			mutate:  func(c *Config) { c.Auth.Hasher = "md5" },
			wantErr: "unknown auth.hasher",
		},
		{
			name:    "memory in production",
			mutate:  func(c *Config) { c.Env.Env = constants.EnvProduction; c.SecretKey.Access = strings.Repeat("k", 32) },
			wantErr: "not allowed in production",
		},
		{
			name: "short secret in production",
			mutate: func(c *Config) {
				c.Env.Env = constants.EnvProduction
				c.Storage.Driver = constants.StorageDriverMongo
				c.Mongo = &MongoConfig{URI: "mongodb://db:27017", Database: "brew"}
				c.SecretKey.Access = "change-me"
			},
			wantErr: "secretKey.access",
		},
		{
			name: "mongo configured",
			mutate: func(c *Config) {
				c.Storage.Driver = constants.StorageDriverMongo
				c.Mongo = &MongoConfig{URI: "mongodb://localhost:27017", Database: "brew"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
