package env_test

import (
	"testing"
	"time"

	"go-backoffice/internal/shared/env"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	t.Setenv("LIST_NAME", "")
	assert.Equal(t, "BackOfficeV1", env.String("LIST_NAME", "BackOfficeV1"))

	t.Setenv("LIST_NAME", "BackOfficeV2")
	assert.Equal(t, "BackOfficeV2", env.String("LIST_NAME", "BackOfficeV1"))
}

func TestInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "lots")
	assert.Equal(t, 10, env.Int("RATE_LIMIT_BURST", 10))

	t.Setenv("RATE_LIMIT_BURST", "3")
	assert.Equal(t, 3, env.Int("RATE_LIMIT_BURST", 10))
}

func TestDuration(t *testing.T) {
	t.Setenv("POSTINGS_CACHE_TTL", "90s")
	assert.Equal(t, 90*time.Second, env.Duration("POSTINGS_CACHE_TTL", time.Minute))

	t.Setenv("POSTINGS_CACHE_TTL", "soon")
	assert.Equal(t, time.Minute, env.Duration("POSTINGS_CACHE_TTL", time.Minute))
}

func TestLoadDB_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	cfg := env.LoadDB()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
}
