package config

// holds all configuration loaded from environment variables
type Config struct {
	OpenAIKey       string
	DatabaseURL     string
	JWTSecret       string
	Environment     string
	Port            string
	ChromePath      string
	ScraperHeadless bool
	ScheduleEnabled bool
}
