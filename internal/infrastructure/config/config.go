package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Session     SessionConfig  `mapstructure:"session"`
	Wallet      WalletConfig   `mapstructure:"wallet"`
	Catalog     CatalogConfig  `mapstructure:"catalog"`
	Telegram    TelegramConfig `mapstructure:"telegram"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// RedisConfig contains the handshake token store settings. When Addr is
// empty the in-memory store is used instead, which is fine for a single
// instance but loses pending handshakes on restart.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// SessionConfig contains identity and session settings
type SessionConfig struct {
	JWTSecret         string        `mapstructure:"jwtSecret"`
	SessionTTL        time.Duration `mapstructure:"sessionTTL"` // hours
	AdminEmail        string        `mapstructure:"adminEmail"`
	WelcomeBonus      string        `mapstructure:"welcomeBonus"`      // e.g. "25.00"
	StandInBalance    string        `mapstructure:"standInBalance"`    // e.g. "50.00"
	StandInEnabled    bool          `mapstructure:"standInEnabled"`    // allow the degraded auth path
	HandshakeTokenTTL time.Duration `mapstructure:"handshakeTokenTTL"` // minutes
}

// WalletConfig contains deposit bounds
type WalletConfig struct {
	MinDeposit string `mapstructure:"minDeposit"` // e.g. "10.00"
	MaxDeposit string `mapstructure:"maxDeposit"` // e.g. "50000.00"
}

// CatalogConfig contains catalog behavior settings
type CatalogConfig struct {
	CascadeResults bool `mapstructure:"cascadeResults"`
	SeedSamples    bool `mapstructure:"seedSamples"`
}

// TelegramConfig contains bot settings. An empty BotToken disables the bot
// integration; the webhook still answers but sends nothing.
type TelegramConfig struct {
	BotToken     string `mapstructure:"botToken"`
	APIBase      string `mapstructure:"apiBase"`
	AuthLinkBase string `mapstructure:"authLinkBase"`
}

// MetricsConfig contains the side server settings for /metrics and /healthz
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}
