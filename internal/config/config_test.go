package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017/ecosnap", cfg.MongoURI)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017/prod")
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "Production")
	t.Setenv("ALLOWED_ORIGINS", "https://ecosnap.app, https://www.ecosnap.app")

	cfg := Load()

	assert.Equal(t, "mongodb://db:27017/prod", cfg.MongoURI)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://ecosnap.app", "https://www.ecosnap.app"}, cfg.AllowedOrigins)
}

func TestLoadMongoURIFallback(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://legacy:27017/ecosnap")

	cfg := Load()
	assert.Equal(t, "mongodb://legacy:27017/ecosnap", cfg.MongoURI)
}
