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

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB    int    `mapstructure:"REDIS_SESSION_DB"`
	RedisPaymentDB    int    `mapstructure:"REDIS_PAYMENT_DB"`
	RedisReconcileDB  int    `mapstructure:"REDIS_RECONCILE_DB"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Stripe configuration.
	StripeKey string `mapstructure:"STRIPE_KEY"`
	Currency  string `mapstructure:"CURRENCY"`

	// Pricing knobs. Product treats these as configuration, not invariants.
	SUVSurchargeRate  float64 `mapstructure:"SUV_SURCHARGE_RATE"`
	ExpressServiceFee float64 `mapstructure:"EXPRESS_SERVICE_FEE"`

	// Slot generation.
	SlotGranularityMinutes int `mapstructure:"SLOT_GRANULARITY_MINUTES"`

	// Payment confirmation polling.
	ConfirmPollIntervalMS int `mapstructure:"CONFIRM_POLL_INTERVAL_MS"`
	ConfirmMaxWaitSeconds int `mapstructure:"CONFIRM_MAX_WAIT_SECONDS"`

	// Firebase service account for push notifications.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_PAYMENT_DB", 1)
	viper.SetDefault("REDIS_RECONCILE_DB", 2)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "glimra")
	viper.SetDefault("CURRENCY", "eur")
	viper.SetDefault("SUV_SURCHARGE_RATE", 0.10)
	viper.SetDefault("EXPRESS_SERVICE_FEE", 30.0)
	viper.SetDefault("SLOT_GRANULARITY_MINUTES", 30)
	viper.SetDefault("CONFIRM_POLL_INTERVAL_MS", 2500)
	viper.SetDefault("CONFIRM_MAX_WAIT_SECONDS", 60)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")

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
