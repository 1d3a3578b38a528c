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
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	HTTP         HTTPConfig
	Redis        RedisConfig
	WorkingHours WorkingHoursConfig
	ActivityLog  ActivityLogConfig
	Metrics      MetricsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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
	AutoMigrate bool // aplica las migraciones embebidas al arrancar el API
	MaxConns    int
	MinConns    int
	SlowQuery   time.Duration // consultas más lentas se registran en warn; 0 = sin registro
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché opcional. Addr vacío deshabilita la caché.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// Enabled indica si hay un servidor Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// WorkingHoursConfig parámetros del control de horario laboral.
type WorkingHoursConfig struct {
	Timezone  string
	SkipPaths []string // rutas adicionales que no pasan por el control
}

// Location resuelve la zona horaria configurada; ante error usa la local.
func (c WorkingHoursConfig) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ActivityLogConfig retención de la bitácora de actividad.
type ActivityLogConfig struct {
	RetentionDays int
	CleanupCron   string
}

// MetricsConfig exposición de métricas Prometheus.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "warehousing-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "warehousing"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			MinConns:    getInt(v, "DB_MIN_CONNS", 2),
			SlowQuery:   time.Duration(getInt(v, "DB_SLOW_QUERY_MS", 500)) * time.Millisecond,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "warehousing-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			CacheTTL: time.Duration(getInt(v, "WORKING_HOURS_CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		WorkingHours: WorkingHoursConfig{
			Timezone:  getString(v, "WORKING_HOURS_TIMEZONE", "Local"),
			SkipPaths: splitList(getString(v, "WORKING_HOURS_SKIP_PATHS", "")),
		},
		ActivityLog: ActivityLogConfig{
			RetentionDays: getInt(v, "ACTIVITY_LOG_RETENTION_DAYS", 90),
			CleanupCron:   getString(v, "ACTIVITY_LOG_CLEANUP_CRON", "0 3 * * *"),
		},
		Metrics: MetricsConfig{
			Enabled:   getBool(v, "METRICS_ENABLED", true),
			Namespace: getString(v, "METRICS_NAMESPACE", "warehousing"),
		},
	}

	if cfg.App.Env == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return cfg, nil
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
			n, err := strconv.Atoi(v.GetString(key))
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
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
