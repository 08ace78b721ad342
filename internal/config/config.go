package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
)

// Drivers de armazenamento suportados
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config reúne a configuração da aplicação
type Config struct {
	Port           string
	GinMode        string
	DBDriver       string
	Database       *database.PostgresConfig
	TaxRate        decimal.Decimal
	LockTimeout    time.Duration
	RequestTimeout time.Duration
	ReportLocation *time.Location
	AllowedOrigins []string
	AutoMigrate    bool
	JWTSecret      string
}

// Load lê a configuração das variáveis de ambiente
func Load() (*Config, error) {
	port := getEnv("PORT", "8000")
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return nil, fmt.Errorf("PORT inválida: %q", port)
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverPostgres))
	if driver != DriverPostgres && driver != DriverMemory {
		return nil, fmt.Errorf("DB_DRIVER desconhecido: %q", driver)
	}

	dbConfig, err := database.NewPostgresConfigFromEnv()
	if err != nil {
		return nil, err
	}

	taxRate, err := decimal.NewFromString(getEnv("TAX_RATE", "0.08"))
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE inválida: %w", err)
	}
	if taxRate.IsNegative() || taxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("TAX_RATE deve estar em [0, 1): %s", taxRate)
	}

	lockTimeoutMS, err := strconv.Atoi(getEnv("LOCK_TIMEOUT_MS", "5000"))
	if err != nil || lockTimeoutMS < 0 {
		return nil, fmt.Errorf("LOCK_TIMEOUT_MS inválido")
	}

	requestTimeout, err := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "15"))
	if err != nil || requestTimeout < 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS inválido")
	}

	loc, err := time.LoadLocation(getEnv("REPORT_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE inválido: %w", err)
	}

	autoMigrate, err := strconv.ParseBool(getEnv("AUTO_MIGRATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("AUTO_MIGRATE inválido: %w", err)
	}

	return &Config{
		Port:           port,
		GinMode:        getEnv("GIN_MODE", "debug"),
		DBDriver:       driver,
		Database:       dbConfig,
		TaxRate:        taxRate,
		LockTimeout:    time.Duration(lockTimeoutMS) * time.Millisecond,
		RequestTimeout: time.Duration(requestTimeout) * time.Second,
		ReportLocation: loc,
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AutoMigrate:    autoMigrate,
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}, nil
}

// AllowAllOrigins indica se o CORS aceita qualquer origem
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
