package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings for the image generation server.
// Values are read from the environment; the entrypoint may seed the
// environment from a .env file first.
type Config struct {
	// ReplicateAPIToken authenticates against the Replicate API.
	// The server refuses to serve without it.
	ReplicateAPIToken string `envconfig:"REPLICATE_API_TOKEN"`

	// ReplicateBaseURL points at the Replicate API root. Overridable
	// for tests.
	ReplicateBaseURL string `envconfig:"REPLICATE_BASE_URL" default:"https://api.replicate.com"`

	// ModelVersion is the model reference to run, either a bare version
	// hash or the full "owner/model:hash" form.
	ModelVersion string `envconfig:"MODEL_VERSION" default:"stability-ai/sdxl:c221b2b8ef527988fb59bf24a8b97c4561f1c671f73bd389f866bfb27c061316"`

	// ImagesDir is the default directory for saved images. Created at
	// startup if absent.
	ImagesDir string `envconfig:"IMAGES_DIR" default:"generated_images"`

	// PollInterval is the delay between prediction status polls.
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`

	// LogLevel sets the zerolog level: debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load builds a Config from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
