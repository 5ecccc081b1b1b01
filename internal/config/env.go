package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first existing .env file. Variables already set in the
// process environment win.
func loadEnvFile() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", name)
		return nil
	}
	return fmt.Errorf("no .env file found")
}
