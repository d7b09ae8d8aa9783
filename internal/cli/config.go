package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Username  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("GHOSTGAME_SERVER", "http://localhost:8080"),
		Username:  os.Getenv("GHOSTGAME_USERNAME"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
