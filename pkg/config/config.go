package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	AI      AIConfig
	Form    FormConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	SeedFile string // YAML opcional con la colección semilla
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Drivers de almacenamiento soportados.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// StorageConfig dónde vive el blob de la colección.
type StorageConfig struct {
	Driver  string // file, memory, postgres, redis
	Key     string // clave fija del blob
	FileDir string // directorio del driver file
	Watch   bool   // recargar el store cuando otro proceso reescribe el archivo
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig configuración del cliente Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Proveedores de IA soportados.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// AIConfig configuración del servicio de enriquecimiento.
type AIConfig struct {
	Provider        string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	Timeout         time.Duration // acotado a [10s, 30s]
}

// FormConfig parámetros de los flujos de formulario.
type FormConfig struct {
	DeleteConfirmTTL time.Duration
	IdleTTL          time.Duration // formularios sin cambios se descartan pasado este tiempo
}

const (
	minAITimeout = 10 * time.Second
	maxAITimeout = 30 * time.Second
)

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_DRIVER, GEMINI_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-pro"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			SeedFile: getString(v, "SEED_FILE", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Driver:  strings.ToLower(getString(v, "STORAGE_DRIVER", DriverFile)),
			Key:     getString(v, "STORAGE_KEY", "inventory_items"),
			FileDir: getString(v, "STORAGE_FILE_DIR", "./data"),
			Watch:   getBool(v, "STORAGE_WATCH", false),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getString(v, "AI_PROVIDER", ProviderGemini)),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", getString(v, "API_KEY", "")),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-2.5-flash"),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			Timeout:         clampDuration(time.Duration(getInt(v, "AI_TIMEOUT_SECONDS", 15))*time.Second, minAITimeout, maxAITimeout),
		},
		Form: FormConfig{
			DeleteConfirmTTL: time.Duration(getInt(v, "DELETE_CONFIRM_TTL_SECONDS", 120)) * time.Second,
			IdleTTL:          time.Duration(getInt(v, "FORM_IDLE_TTL_SECONDS", 1800)) * time.Second,
		},
	}

	switch cfg.Storage.Driver {
	case DriverFile, DriverMemory, DriverPostgres, DriverRedis:
	default:
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido %q", cfg.Storage.Driver)
	}
	switch cfg.AI.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return nil, fmt.Errorf("config: AI_PROVIDER desconocido %q", cfg.AI.Provider)
	}
	if cfg.Form.DeleteConfirmTTL <= 0 {
		cfg.Form.DeleteConfirmTTL = 120 * time.Second
	}

	return cfg, nil
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
