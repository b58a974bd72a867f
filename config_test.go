package linearview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "slides-prod")
	t.Setenv("PORT", "9000")
	t.Setenv("BUCKETNAME", "linear-exports")
	t.Setenv("SLIDE_SELECTOR", "div.slide")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("TRACE_FRACTION", "0.5")

	cfg := ConfigFromEnv()
	assert.Equal(t, "slides-prod", cfg.ProjectID)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "linear-exports", cfg.Bucket)
	assert.Equal(t, "div.slide", cfg.SlideSelector)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0.5, cfg.TraceFraction)
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "p")
	t.Setenv("PORT", "")
	t.Setenv("BUCKETNAME", "")
	t.Setenv("SLIDE_SELECTOR", "")
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("TRACE_FRACTION", "")

	cfg := ConfigFromEnv()
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.Bucket)
	assert.Equal(t, "section", cfg.SlideSelector)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0.1, cfg.TraceFraction)
}
