package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level settings read from the environment.
type Env struct {
	DataDir   string `env:"DYNSTEP_DATA_DIR" envDefault:".dynstep"`
	LogLevel  string `env:"DYNSTEP_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"DYNSTEP_LOG_FORMAT" envDefault:"text"`
	Workers   int    `env:"DYNSTEP_WORKERS" envDefault:"0"`
}

// LoadEnv loads Env from environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
