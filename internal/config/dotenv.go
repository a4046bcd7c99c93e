package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the env file for the current APP_ENV first, then the
// shared .env. godotenv.Load never overwrites variables that are already
// set, so precedence is: OS environment > .env.<APP_ENV> > .env.
// Returns the files that were actually read.
func LoadDotEnv() []string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}

	loaded := make([]string, 0, 2)
	for _, name := range []string{".env." + env, ".env"} {
		if err := godotenv.Load(name); err == nil {
			loaded = append(loaded, name)
		}
	}
	return loaded
}
