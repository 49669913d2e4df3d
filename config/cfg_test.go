package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apexhome/products-manager/internal/allocator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[mysql]
dsn = "user:pass@tcp(localhost:3306)/products?parseTime=true"
automigrate = true

[http]
port = "9000"
allowed_origins = ["https://admin.apexhome.example"]

[sequence]
backend = "redis"
alert_ratio = 0.8

[registry.cache]
ttl = "2m"

[mailer]
alert_recipients = ["ops@apexhome.example"]
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	c, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, c.DB.Automigrate)
	assert.Equal(t, "9000", c.HTTP.Port)
	assert.Equal(t, []string{"https://admin.apexhome.example"}, c.HTTP.AllowedOrigins)
	assert.Equal(t, allocator.BackendRedis, c.Sequence.Backend)
	assert.Equal(t, 0.8, c.Sequence.AlertRatio)
	assert.Equal(t, "seq", c.Sequence.RedisKeyPrefix)
	assert.False(t, c.Sequence.AllowVolatile)
	assert.Equal(t, 2*time.Minute, c.Registry.Cache.TTL)
	assert.Equal(t, []string{"ops@apexhome.example"}, c.Mailer.AlertRecipients)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", c.Auth.JWTSecret)
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
}

func TestDSNFromEnv(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_USER", "u")
	t.Setenv("MYSQL_PASSWORD", "p")
	t.Setenv("MYSQL_DATABASE", "products")
	t.Setenv("MYSQL_PORT", "")
	assert.Equal(t, "u:p@tcp(db:3306)/products?charset=utf8mb4&parseTime=true", dsnFromEnv())

	t.Setenv("MYSQL_PASSWORD", "")
	assert.Empty(t, dsnFromEnv())
}
