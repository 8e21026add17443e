package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// InitConfig loads the .env file if present. Missing files are fine; the
// process falls back to real environment variables and defaults.
func InitConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment and defaults")
		return
	}
	log.Println("loaded environment variables from .env")
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}
	return b, nil
}

// GetString returns the variable or def when unset.
func GetString(v, def string) string {
	if s, err := GetEnvVariable(v); err == nil {
		return s
	}
	return def
}

// GetFloat returns the variable parsed as float64 or def when unset/invalid.
func GetFloat(v string, def float64) float64 {
	s, err := GetEnvVariable(v)
	if err != nil {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %v", v, s, def)
		return def
	}
	return f
}

// GetBool returns the variable parsed as bool or def when unset/invalid.
func GetBool(v string, def bool) bool {
	s, err := GetEnvVariable(v)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("config: %s=%q is not a bool, using %v", v, s, def)
		return def
	}
	return b
}
