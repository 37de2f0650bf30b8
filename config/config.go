package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// AdminEmails is a comma-separated list of addresses that register as admins.
	AdminEmails string `mapstructure:"ADMIN_EMAILS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// ServiceCacheTTL is in seconds; zero disables the service cache.
	ServiceCacheTTL int `mapstructure:"SERVICE_CACHE_TTL"`

	// PermanentDeleteToken must be echoed in X-Confirm-Delete to hard-delete a
	// service. Empty disables permanent deletion.
	PermanentDeleteToken string `mapstructure:"PERMANENT_DELETE_TOKEN"`

	// Fee adjustment knobs.
	FeeLowIncomeThreshold   float64 `mapstructure:"FEE_LOW_INCOME_THRESHOLD"`
	FeeHighIncomeThreshold  float64 `mapstructure:"FEE_HIGH_INCOME_THRESHOLD"`
	FeeLowIncomeMultiplier  float64 `mapstructure:"FEE_LOW_INCOME_MULTIPLIER"`
	FeeHighIncomeMultiplier float64 `mapstructure:"FEE_HIGH_INCOME_MULTIPLIER"`
	FeeMinorAge             int     `mapstructure:"FEE_MINOR_AGE"`
	FeeSeniorAge            int     `mapstructure:"FEE_SENIOR_AGE"`
	FeeMinorMultiplier      float64 `mapstructure:"FEE_MINOR_MULTIPLIER"`
	FeeSeniorMultiplier     float64 `mapstructure:"FEE_SENIOR_MULTIPLIER"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "citizenhub")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ADMIN_EMAILS", "")
	viper.SetDefault("SERVICE_CACHE_TTL", 300)
	viper.SetDefault("PERMANENT_DELETE_TOKEN", "")

	viper.SetDefault("FEE_LOW_INCOME_THRESHOLD", 300000)
	viper.SetDefault("FEE_HIGH_INCOME_THRESHOLD", 1000000)
	viper.SetDefault("FEE_LOW_INCOME_MULTIPLIER", 0.5)
	viper.SetDefault("FEE_HIGH_INCOME_MULTIPLIER", 1.5)
	viper.SetDefault("FEE_MINOR_AGE", 18)
	viper.SetDefault("FEE_SENIOR_AGE", 60)
	viper.SetDefault("FEE_MINOR_MULTIPLIER", 0.5)
	viper.SetDefault("FEE_SENIOR_MULTIPLIER", 0.75)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
