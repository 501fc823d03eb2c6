package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// FrontendURL is the base URL payment callbacks redirect the browser to.
	FrontendURL string `mapstructure:"frontend_url"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

// MarzbanConfig holds the remote provisioning panel credentials.
type MarzbanConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// TimeoutSeconds bounds every outbound call to the panel.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// TokenTTLMinutes is the conservative lifetime assumed for cached
	// bearer tokens since the panel does not report expiry.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes"`
}

// ZarinpalConfig holds the payment gateway settings.
type ZarinpalConfig struct {
	MerchantID  string `mapstructure:"merchant_id"`
	CallbackURL string `mapstructure:"callback_url"`
	BaseURL     string `mapstructure:"base_url"`
	StartPayURL string `mapstructure:"startpay_url"`
	// MinAmount is the lowest accepted charge in smallest currency units.
	MinAmount      int64 `mapstructure:"min_amount"`
	TimeoutSeconds int   `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BootstrapConfig seeds the initial super admin account on first start.
type BootstrapConfig struct {
	SuperAdminUsername string `mapstructure:"super_admin_username"`
	SuperAdminEmail    string `mapstructure:"super_admin_email"`
	SuperAdminPassword string `mapstructure:"super_admin_password"`
}

type MigrationConfig struct {
	Strategy    string `mapstructure:"strategy"`
	ScriptsPath string `mapstructure:"scripts_path"`
}
