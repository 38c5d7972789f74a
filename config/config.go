package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	SMTPHost  string `mapstructure:"SMTP_HOST"`
	SMTPPort  int    `mapstructure:"SMTP_PORT"`
	EmailUser string `mapstructure:"EMAIL_USER"`
	EmailPass string `mapstructure:"EMAIL_PASS"`

	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// AvailabilityCacheTTL is the lifetime in seconds of cached slot
	// responses; bookings invalidate the affected keys eagerly.
	AvailabilityCacheTTL int `mapstructure:"AVAILABILITY_CACHE_TTL"`
}

var AppConfig Config

// LoadConfig reads configuration from the environment with sensible defaults.
// A .env file, if present, is loaded by main before this runs.
func LoadConfig() {
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("AVAILABILITY_CACHE_TTL", 60)

	// AutomaticEnv alone does not populate Unmarshal; bind the keys we use.
	for _, key := range []string{
		"APP_PORT", "ENV", "DATABASE_URL", "JWT_SECRET",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"SMTP_HOST", "SMTP_PORT", "EMAIL_USER", "EMAIL_PASS",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"AVAILABILITY_CACHE_TTL",
	} {
		if err := viper.BindEnv(key); err != nil {
			log.Fatalf("Failed to bind %s: %v", key, err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func IsProduction() bool {
	return AppConfig.Env == "production"
}
