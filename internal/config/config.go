package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"maichat/internal/domain"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string
	LogDir      string
	// LLM Configuration
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	ChatModel      string
	EmbeddingModel string
	// Menu index (pgvector) connection parts
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	MenuCollection string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "7800"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		TablePrefix: getTablePrefix(env),
		LogDir:      getEnv("LOG_DIR", ""),
		// LLM Configuration
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		ChatModel:      getEnv("CHAT_MODEL", "gpt-5-mini"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		// Menu index connection parts
		DBUser:         getEnv("DB_USER", ""),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBHost:         getEnv("DB_HOST", ""),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", ""),
		MenuCollection: getEnv("MENU_COLLECTION", "menu"),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// DatabaseURL assembles the postgres connection URL from the DB_* parts.
// Incomplete configuration fails with ConfigurationError naming every
// missing variable, before any connection attempt.
func (c *Config) DatabaseURL() (string, error) {
	var missing []string
	for name, value := range map[string]string{
		"DB_USER": c.DBUser,
		"DB_HOST": c.DBHost,
		"DB_PORT": c.DBPort,
		"DB_NAME": c.DBName,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", &domain.ConfigurationError{
			Message: "missing database settings: " + strings.Join(missing, ", "),
		}
	}

	auth := url.User(c.DBUser)
	if c.DBPassword != "" {
		auth = url.UserPassword(c.DBUser, c.DBPassword)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   auth,
		Host:   fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return u.String(), nil
}

// ValidateLLM checks the model gateway credentials are present.
func (c *Config) ValidateLLM() error {
	if c.OpenAIAPIKey == "" {
		return &domain.ConfigurationError{Message: "OPENAI_API_KEY is required"}
	}
	return nil
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
