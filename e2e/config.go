package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// SERVER_ADDR points at a running instance, e.g. "localhost:8080".
	// When empty, the end-to-end suite is skipped.
	ServerAddr string `envconfig:"SERVER_ADDR"`
	// TOKEN_SECRET must match the secret of the instance under test
	TokenSecret string `envconfig:"TOKEN_SECRET" default:"local-dev-secret"`
	// E2E_DEBUG_JSON allows dumping full websocket frames as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
