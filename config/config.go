package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBName     string `envconfig:"DB_NAME" default:"ecommerce"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	AdminUserID   string `envconfig:"ADMIN_USER_ID"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	RazorpayKeyID     string `envconfig:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `envconfig:"RAZORPAY_KEY_SECRET"`

	RabbitMQURL   string `envconfig:"RABBITMQ_URL"`
	OrderExchange string `envconfig:"ORDER_EXCHANGE" default:"orders_exchange"`
	OrderQueue    string `envconfig:"ORDER_QUEUE" default:"orders_queue"`
	DeadLetter    string `envconfig:"DEAD_LETTER_QUEUE" default:"dead_letter_queue"`
	MaxPriority   int    `envconfig:"ORDER_QUEUE_MAX_PRIORITY" default:"10"`

	CookieSecure bool `envconfig:"COOKIE_SECURE" default:"false"`
}

// Load reads .env when present, then the environment. Secrets may be
// supplied indirectly via *_FILE variables pointing at mounted files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if v := fromFile("DB_PASSWORD_FILE"); v != "" {
		cfg.DBPassword = v
	}
	if v := fromFile("JWT_SECRET_FILE"); v != "" {
		cfg.JWTSecret = v
	}
	if v := fromFile("RAZORPAY_KEY_SECRET_FILE"); v != "" {
		cfg.RazorpayKeySecret = v
	}

	return &cfg, nil
}

// DSN builds the MySQL connection string. clientFoundRows makes UPDATE
// report matched rows instead of changed rows, so rewriting an order's
// current status still counts as hitting the row.
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4&clientFoundRows=true"
}

func (c *Config) RazorpayConfigured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

func fromFile(fileKey string) string {
	path := os.Getenv(fileKey)
	if path == "" {
		return ""
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
