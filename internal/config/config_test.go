package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_BASE_URL", "https://jobs.example")
	t.Setenv("ZARINPAL_MERCHANT_ID", "merchant-xyz")

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "merchant-xyz", cfg.Zarinpal.MerchantID)
	assert.True(t, cfg.Zarinpal.Sandbox)
	assert.Equal(t, 10*time.Second, cfg.Zarinpal.Timeout)
	assert.Equal(t, "https://jobs.example/api/zarinpal-verify/", cfg.Zarinpal.CallbackBaseURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ZARINPAL_SANDBOX", "false")
	t.Setenv("ZARINPAL_TIMEOUT", "3s")
	t.Setenv("PLAN_CACHE_TTL", "not-a-duration")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.False(t, cfg.Zarinpal.Sandbox)
	assert.Equal(t, 3*time.Second, cfg.Zarinpal.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.App.PlanCacheTTL)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg := Load()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg = Load()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 500*time.Millisecond, cfg.App.EventSinkTimeout)
}
