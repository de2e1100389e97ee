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
	App   AppConfig
	Log   LogConfig
	Store StoreConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	BFF   BFFConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env          string // development, staging, production
	Name         string
	ExposeErrors bool // incluir el detalle de errores internos en la respuesta
}

// LogConfig nivel de log: trace, debug, info, warn, error.
type LogConfig struct {
	Level string
}

// Drivers de almacenamiento.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// StoreConfig selecciona el backend de persistencia.
type StoreConfig struct {
	Driver string // postgres | memory
	Seed   bool   // cargar datos de demostración (solo memory)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ConnectTimeout time.Duration
	MaxConns       int
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

// JWTConfig configuración de JWT. Secret vacío = API anónima.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor de funciones.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Modos del gateway.
const (
	BFFModeProxy  = "proxy"
	BFFModeDirect = "direct"
)

// BFFConfig configuración del gateway.
type BFFConfig struct {
	Host             string
	Port             int
	Mode             string // proxy | direct
	ProductBaseURL   string
	WarehouseBaseURL string
	Timeout          time.Duration
}

// Addr devuelve la dirección de escucha del gateway.
func (c BFFConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, BFF_MODE, FUNC_PRODUCT_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	funcBase := strings.TrimRight(getString(v, "FUNC_BASE_URL", "http://localhost:8080/api"), "/")

	cfg := &Config{
		App: AppConfig{
			Env:          getString(v, "APP_ENV", "development"),
			Name:         getString(v, "APP_NAME", "inventario-serverless"),
			ExposeErrors: getBool(v, "APP_EXPOSE_ERRORS", false),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverPostgres)),
			Seed:   getBool(v, "STORE_SEED", true),
		},
		DB: DBConfig{
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "inventario"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			ConnectTimeout: time.Duration(getInt(v, "DB_CONNECT_TIMEOUT_SECONDS", 15)) * time.Second,
			MaxConns:       getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "inventario-serverless"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		BFF: BFFConfig{
			Host:             getString(v, "BFF_HOST", "0.0.0.0"),
			Port:             getInt(v, "BFF_PORT", 8090),
			Mode:             strings.ToLower(getString(v, "BFF_MODE", BFFModeProxy)),
			ProductBaseURL:   strings.TrimRight(getString(v, "FUNC_PRODUCT_BASE_URL", funcBase), "/"),
			WarehouseBaseURL: strings.TrimRight(getString(v, "FUNC_WAREHOUSE_BASE_URL", funcBase), "/"),
			Timeout:          time.Duration(getInt(v, "FUNC_TIMEOUT_SECONDS", 30)) * time.Second,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("config: STORE_DRIVER inválido %q (postgres|memory)", c.Store.Driver)
	}
	switch c.BFF.Mode {
	case BFFModeProxy, BFFModeDirect:
	default:
		return fmt.Errorf("config: BFF_MODE inválido %q (proxy|direct)", c.BFF.Mode)
	}
	if c.DB.ConnectTimeout <= 0 {
		return fmt.Errorf("config: DB_CONNECT_TIMEOUT_SECONDS debe ser positivo")
	}
	return nil
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
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
