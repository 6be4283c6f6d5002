package commons

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var envLoaded = false

// LoadEnvFile loads variables from the file named by a --env-file argument,
// if one was given. Variables already present in the environment win.
func LoadEnvFile() {
	if envLoaded {
		return
	}
	envLoaded = true
	args := os.Args[1:]
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			envFile := args[i+1]
			if err := godotenv.Load(envFile); err != nil {
				Logger.Errorf("Failed to load env file %s: %v", envFile, err)
				return
			}
			Logger.Debugf("Loaded environment variables from %s", envFile)
			return
		}
	}
}

func GetEnv(key string, fallback ...string) string {
	LoadEnvFile()
	if value := os.Getenv(key); value != "" {
		return value
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// GetEnvInt parses an integer environment variable, returning fallback when
// the variable is unset or not a number.
func GetEnvInt(key string, fallback int) int {
	if v := GetEnv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
