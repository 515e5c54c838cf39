package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
driver = "sqlite"
path = "file:calendar.db"

[auth]
jwt_secret = "from-file"

[booking]
conflict_policy = "warn"

[[seed.markets]]
id = "market1"
city = "彰化縣"
name = "和美市場"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:calendar.db", cfg.Database.DSN())
	assert.Equal(t, ConflictPolicyWarn, cfg.Booking.ConflictPolicy)
	assert.Equal(t, 14, cfg.Recommendations.RecencyDays)
	assert.True(t, cfg.Auth.AllowPasswordless)
	require.Len(t, cfg.Seed.Markets, 1)
	assert.Equal(t, "和美市場", cfg.Seed.Markets[0].Name)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("TEXTGEN_API_KEY", "key-1")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "key-1", cfg.TextGen.APIKey)
}

func TestLoad_RejectsUnknownPolicy(t *testing.T) {
	body := `
[database]
driver = "sqlite"
path = "x.db"

[auth]
jwt_secret = "s"

[booking]
conflict_policy = "lenient"
`
	_, err := Load(writeConfig(t, body))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_PostgresDSN(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", DBName: "cal", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cal sslmode=disable", d.DSN())
}
