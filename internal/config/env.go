package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvFiles are loaded, in order, from the working directory.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads every existing file of EnvFiles. Variables already set
// in the environment are not overwritten.
func LoadEnvFiles() {
	for _, name := range EnvFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", slog.String("path", name), slog.String("error", err.Error()))
			continue
		}
		slog.Debug("Loaded environment variables", slog.String("path", name))
	}
}
