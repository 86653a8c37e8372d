// Package config lee la configuración del motor vía Viper (env y
// opcionalmente archivo .env). Las variables de entorno tienen prioridad.
package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación.
type Config struct {
	App     AppConfig
	DB      DBConfig
	Planner PlannerConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL. Si DatabaseURL no está vacío se usa
// como connection string completo; si está vacío (modo demo) el CLI trabaja
// con los repositorios en memoria.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// PlannerConfig parámetros del motor de producción.
type PlannerConfig struct {
	BulkWorkers int // tamaño del pool para BulkCalculateAvailability
	HorizonDays int // horizonte por defecto del scheduler
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si
// no el construido con los campos sueltos.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno y opcionalmente desde
// un archivo .env en el directorio actual.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // el archivo es opcional

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "bom-engine")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "bom_engine")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PLANNER_BULK_WORKERS", 4)
	v.SetDefault("PLANNER_HORIZON_DAYS", 30)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		Planner: PlannerConfig{
			BulkWorkers: v.GetInt("PLANNER_BULK_WORKERS"),
			HorizonDays: v.GetInt("PLANNER_HORIZON_DAYS"),
		},
	}
	if cfg.Planner.BulkWorkers <= 0 {
		return nil, fmt.Errorf("PLANNER_BULK_WORKERS debe ser positivo")
	}
	return cfg, nil
}
