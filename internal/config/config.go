package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config concentra toda la superficie de configuración de la app.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Auth      AuthConfig
	Log       LogConfig
	Reminders RemindersConfig
}

// ServerConfig: opciones del servidor HTTP.
type ServerConfig struct {
	Port string
}

// DBConfig: conexión a Postgres. DSN vacío => repos in-memory (dev/tests).
type DBConfig struct {
	DSN string
}

// AuthConfig: verificación de tokens contra el servicio de identidad.
// BaseURL vacío => modo dev (header X-Debug-User-ID).
type AuthConfig struct {
	BaseURL string
	APIKey  string
}

// LogConfig: nivel del logger estructurado.
type LogConfig struct {
	Level string
}

// RemindersConfig: barrido programado de recordatorios.
type RemindersConfig struct {
	CronSchedule string
	WindowDays   int
}

// Load lee variables de entorno (opcionalmente desde un archivo .env)
// y materializa la Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Un .env ausente no es error; la config puede venir del entorno directo.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		DB: DBConfig{
			DSN: os.Getenv("DB_DSN"),
		},
		Auth: AuthConfig{
			BaseURL: os.Getenv("AUTH_BASE_URL"),
			APIKey:  os.Getenv("AUTH_API_KEY"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Reminders: RemindersConfig{
			// Por defecto: barrido diario 06:00.
			CronSchedule: getenvWithDefault("REMINDERS_CRON", "0 6 * * *"),
			WindowDays:   7,
		},
	}

	return cfg, nil
}

func getenvWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
