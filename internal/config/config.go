package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Printer   PrinterConfig
	Shop      ShopConfig
	Auth      AuthConfig
	Retention RetentionConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver        string // "sqlite" or "postgres"
	URL           string // full postgres URL; overrides the discrete fields
	Host          string
	Port          string
	Name          string
	User          string
	Password      string
	SSLMode       string
	Timezone      string
	SQLitePath    string
	MaxIdleConns  int
	MaxOpenConns  int
	SlowThreshold time.Duration
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type PrinterConfig struct {
	Type    string // usb, network or none
	USBPath string
	Address string
	Width   int
}

type ShopConfig struct {
	Name     string
	Address  string
	Phone    string
	Timezone string
}

// AuthConfig holds the credentials of the two seeded shop users
type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	StaffUsername string
	StaffPassword string
}

type RetentionConfig struct {
	BillingDays    int
	SupplierDays   int
	ExpenseDays    int
	IdempotencyTTL time.Duration
}

// shopZoneFallback is India Standard Time, used when the tz database is missing
var shopZoneFallback = time.FixedZone("IST", 5*60*60+30*60)

func setDefaults() {
	viper.SetDefault("APP_NAME", "shopkeeper-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)

	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "shopkeeper")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_SQLITE_PATH", "shop_billing.db")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 50)
	viper.SetDefault("DB_SLOW_THRESHOLD_MS", 200)

	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("LOG_OUTPUT", "stdout")

	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)

	viper.SetDefault("SHOP_NAME", "My Shop")
	viper.SetDefault("SHOP_ADDRESS", "")
	viper.SetDefault("SHOP_PHONE", "")
	viper.SetDefault("SHOP_TIMEZONE", "Asia/Kolkata")

	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("STAFF_USERNAME", "staff")
	viper.SetDefault("STAFF_PASSWORD", "staff123")

	viper.SetDefault("RETENTION_BILLING_DAYS", 45)
	viper.SetDefault("RETENTION_SUPPLIER_DAYS", 60)
	viper.SetDefault("RETENTION_EXPENSE_DAYS", 7)
	viper.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(viper.GetString("DB_DRIVER")),
			URL:           viper.GetString("DATABASE_URL"),
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			Name:          viper.GetString("DB_NAME"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			SSLMode:       viper.GetString("DB_SSL_MODE"),
			Timezone:      viper.GetString("DB_TIMEZONE"),
			SQLitePath:    viper.GetString("DB_SQLITE_PATH"),
			MaxIdleConns:  viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:  viper.GetInt("DB_MAX_OPEN_CONNS"),
			SlowThreshold: time.Duration(viper.GetInt("DB_SLOW_THRESHOLD_MS")) * time.Millisecond,
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Shop: ShopConfig{
			Name:     viper.GetString("SHOP_NAME"),
			Address:  viper.GetString("SHOP_ADDRESS"),
			Phone:    viper.GetString("SHOP_PHONE"),
			Timezone: viper.GetString("SHOP_TIMEZONE"),
		},
		Auth: AuthConfig{
			AdminUsername: viper.GetString("ADMIN_USERNAME"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
			StaffUsername: viper.GetString("STAFF_USERNAME"),
			StaffPassword: viper.GetString("STAFF_PASSWORD"),
		},
		Retention: RetentionConfig{
			BillingDays:    viper.GetInt("RETENTION_BILLING_DAYS"),
			SupplierDays:   viper.GetInt("RETENTION_SUPPLIER_DAYS"),
			ExpenseDays:    viper.GetInt("RETENTION_EXPENSE_DAYS"),
			IdempotencyTTL: time.Duration(viper.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
	}
}

// splitList turns a comma separated setting into a slice, dropping blanks
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// IsPostgres reports whether the configured driver is PostgreSQL. A
// DATABASE_URL with a postgres scheme selects it regardless of DB_DRIVER.
func (c *DatabaseConfig) IsPostgres() bool {
	if strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://") {
		return true
	}
	return c.Driver == "postgres" || c.Driver == "postgresql"
}

// Location returns the shop's time zone, falling back to a fixed +05:30 zone
func (c *ShopConfig) Location() *time.Location {
	if c.Timezone == "" {
		return shopZoneFallback
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return shopZoneFallback
	}
	return loc
}
