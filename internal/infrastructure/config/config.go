package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/marzgate/marzgate/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Marzban   sharedConfig.MarzbanConfig   `mapstructure:"marzban"`
	Zarinpal  sharedConfig.ZarinpalConfig  `mapstructure:"zarinpal"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Bootstrap sharedConfig.BootstrapConfig `mapstructure:"bootstrap"`
	Migration sharedConfig.MigrationConfig `mapstructure:"migration"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("MARZGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.frontend_url", "http://localhost:3000")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "marzgate_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.password.bcrypt_cost", 12)
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.access_exp_minutes", 60)

	// Marzban defaults
	viper.SetDefault("marzban.base_url", "http://localhost:8000")
	viper.SetDefault("marzban.username", "")
	viper.SetDefault("marzban.password", "")
	viper.SetDefault("marzban.timeout_seconds", 15)
	viper.SetDefault("marzban.token_ttl_minutes", 55)

	// Zarinpal defaults
	viper.SetDefault("zarinpal.merchant_id", "")
	viper.SetDefault("zarinpal.callback_url", "http://localhost:8080/api/v1/payment/callback")
	viper.SetDefault("zarinpal.base_url", "https://api.zarinpal.com/pg/v4")
	viper.SetDefault("zarinpal.startpay_url", "https://www.zarinpal.com/pg/StartPay")
	viper.SetDefault("zarinpal.min_amount", 10000)
	viper.SetDefault("zarinpal.timeout_seconds", 15)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.enabled", false)

	// Bootstrap defaults
	viper.SetDefault("bootstrap.super_admin_username", "")
	viper.SetDefault("bootstrap.super_admin_email", "")
	viper.SetDefault("bootstrap.super_admin_password", "")

	// Migration defaults
	viper.SetDefault("migration.strategy", "auto")
	viper.SetDefault("migration.scripts_path", "./scripts/migrations")
}
