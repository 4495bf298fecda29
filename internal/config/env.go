package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	environment := os.Getenv("ENVIRONMENT")

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		OpenAIKey:       openaiKey,
		DatabaseURL:     databaseURL,
		JWTSecret:       jwtSecret,
		Environment:     environment,
		Port:            port,
		ChromePath:      os.Getenv("CHROME_EXECUTABLE_PATH"),
		ScraperHeadless: os.Getenv("SCRAPER_HEADLESS") != "false",
		ScheduleEnabled: os.Getenv("SCRAPE_SCHEDULE_ENABLED") == "true",
	}, nil
}
