// internal/config/config.go
//
// Environment-driven configuration for the server.
// Every value has a development default so the server runs with no .env file.

package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full set of runtime settings.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	JWTSecret    string
	CookieName   string
	ClientOrigin string
	Production   bool

	RoundDuration time.Duration // word-search round length
	HiscoreKeep   int           // scores retained per board fingerprint
	DailySalt     string

	// Optional word list overrides; empty means the embedded list.
	ScrambleWordsFile  string
	CrosswordWordsFile string
	TeamGuessWordsFile string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:               getEnv("PORT", "5175"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBPath:             getEnv("DB_PATH", "./data/wordparty.db"),
		JWTSecret:          getEnv("JWT_SECRET", "dev_secret_change_me"),
		CookieName:         getEnv("COOKIE_NAME", "wordparty_player"),
		ClientOrigin:       getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:         os.Getenv("APP_ENV") == "production",
		RoundDuration:      time.Duration(getenvInt("ROUND_SECONDS", 60)) * time.Second,
		HiscoreKeep:        getenvInt("HISCORE_KEEP", 5),
		DailySalt:          getEnv("DAILY_SALT", "local_dev_salt"),
		ScrambleWordsFile:  os.Getenv("WORDS_SCRAMBLE_FILE"),
		CrosswordWordsFile: os.Getenv("WORDS_CROSSWORD_FILE"),
		TeamGuessWordsFile: os.Getenv("WORDS_TEAMGUESS_FILE"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}
