package config

import (
	"time"

	"auction-rooms/utils"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort uint16 `env:"HTTP_PORT" envDefault:"8080" validate:"min=1000,max=65535"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error"`

	JWTSecret string `env:"JWT_SECRET" validate:"required,min=16"`

	// MongoURI selects the Mongo store. Empty keeps everything in memory.
	MongoURI      string `env:"MONGO_URI"      validate:"omitempty,uri"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"auction" validate:"required"`

	// RedisAddr enables event fan-out. Empty disables it.
	RedisAddr string `env:"REDIS_ADDR" validate:"omitempty,hostname_port"`

	DefaultDuration int           `env:"DEFAULT_DURATION" envDefault:"300"   validate:"min=1"`
	SnipeWindow     time.Duration `env:"SNIPE_WINDOW"     envDefault:"30s"   validate:"min=0"`
	BidLockTimeout  time.Duration `env:"BID_LOCK_TIMEOUT" envDefault:"2s"    validate:"gt=0"`
	SettlementGrace time.Duration `env:"SETTLEMENT_GRACE" envDefault:"1m"    validate:"min=0"`
	ScanInterval    time.Duration `env:"SCAN_INTERVAL"    envDefault:"1s"    validate:"gt=0"`
	RetryDelay      time.Duration `env:"RETRY_DELAY"      envDefault:"100ms" validate:"gt=0"`

	StorageMaxRetries    uint64        `env:"STORAGE_MAX_RETRIES"    envDefault:"3"     validate:"max=20"`
	StorageRetryInterval time.Duration `env:"STORAGE_RETRY_INTERVAL" envDefault:"100ms" validate:"gt=0"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(".env"); err != nil {
		utils.Debug(".env file not found", map[string]any{"error": err.Error()})
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	// Parse config from environment variables
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		utils.Error("config_load_failed", map[string]any{"error": err.Error()})
		return nil, err
	}

	// Validate the config
	if err := validator.New().Struct(cfg); err != nil {
		utils.Error("config_validation_failed", map[string]any{"error": err.Error()})
		return nil, err
	}
	return cfg, nil
}
