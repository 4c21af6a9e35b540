package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644)
	require.NoError(t, err, "写入配置文件失败")
	return dir
}

// TestLoadFrom_Defaults 没有配置文件时使用默认值
func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "bookstore.db", cfg.Database.DSN())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.AllowOrigin)
	assert.Equal(t, 7*24*time.Hour, cfg.Cart.SessionTTL)
}

// TestLoadFrom_FileAndEnvOverride 文件值可被BOOKSTORE_前缀的环境变量覆盖
func TestLoadFrom_FileAndEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 8081
  mode: debug
database:
  driver: mysql
  host: db.local
  port: 3307
  user: shop
  password: secret
  dbname: books
  charset: utf8mb4
  parse_time: true
  loc: Asia/Shanghai
cart:
  session_ttl: 2h
`)
	t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKSTORE_CORS_ALLOW_ORIGIN", "http://shop.example.com")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "http://shop.example.com", cfg.CORS.AllowOrigin)
	assert.Equal(t, 2*time.Hour, cfg.Cart.SessionTTL)
	assert.Equal(t,
		"shop:from-env@tcp(db.local:3307)/books?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		cfg.Database.DSN())
}

func TestLoadFrom_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"非法端口", "server:\n  port: 70000\n"},
		{"未知驱动", "database:\n  driver: oracle\n"},
		{"缓存依赖Redis", "cache:\n  enabled: true\nredis:\n  enabled: false\n"},
		{"生产环境默认密钥", "server:\n  mode: release\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_PostgresDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:   "postgres",
		Host:     "pg",
		Port:     5432,
		User:     "u",
		Password: "p",
		DBName:   "books",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=pg port=5432 user=u password=p dbname=books sslmode=disable", d.DSN())
}
