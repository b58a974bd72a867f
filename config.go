package linearview

import (
	"os"
	"strconv"
	"time"

	"cloud.google.com/go/compute/metadata"

	"github.com/monmaru/linearview/service"
)

// Config is read from the environment; the CLI overrides fields from flags.
type Config struct {
	Port          string
	Bucket        string
	ProjectID     string
	SlideSelector string
	FetchTimeout  time.Duration
	TraceFraction float64
}

// ConfigFromEnv ...
func ConfigFromEnv() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		Bucket:        os.Getenv("BUCKETNAME"),
		ProjectID:     projectID(),
		SlideSelector: getenv("SLIDE_SELECTOR", service.DefaultSlideSelector),
		FetchTimeout:  60 * time.Second,
		TraceFraction: 0.1,
	}
	if d, err := time.ParseDuration(os.Getenv("FETCH_TIMEOUT")); err == nil && d > 0 {
		cfg.FetchTimeout = d
	}
	if f, err := strconv.ParseFloat(os.Getenv("TRACE_FRACTION"), 64); err == nil {
		cfg.TraceFraction = f
	}
	return cfg
}

// Addr ...
func (c Config) Addr() string {
	return ":" + c.Port
}

func projectID() string {
	if id := os.Getenv("GOOGLE_CLOUD_PROJECT"); id != "" {
		return id
	}
	if metadata.OnGCE() {
		if id, err := metadata.ProjectID(); err == nil {
			return id
		}
	}
	return ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
