package config

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFile loads a .env file from the working directory when present.
// Absence is not an error; the caller only logs a note.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
