package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo .env).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	JWT        JWTConfig
	Operator   OperatorConfig
	Catalog    CatalogConfig
	DB         DBConfig
	Deliverect DeliverectConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
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

// JWTConfig configuración de JWT para la sesión del operador.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// OperatorConfig credenciales del operador de la herramienta. El password se
// guarda como hash bcrypt; si está vacío el login queda deshabilitado.
type OperatorConfig struct {
	Username     string
	PasswordHash string
}

// CatalogConfig fuente y parámetros del catálogo.
type CatalogConfig struct {
	Source   string // "csv" | "postgres"
	CSVPath  string // ruta al CSV cuando Source == "csv"
	Location string // nombre de la ubicación que se envía en cada registro de carga
}

// DBConfig configuración de PostgreSQL (solo si CATALOG_SOURCE=postgres).
// Si DatabaseURL no está vacío se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	userInfo := url.UserPassword(c.User, c.Password)
	u := &url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// DeliverectConfig parámetros de la integración con el servicio de catálogo.
type DeliverectConfig struct {
	APIBaseURL  string
	AccountID   string // puede venir vacío y pasarse por request
	CallbackURL string
	Token       string // credencial bearer para el HeaderProvider estático
	// Presupuestos de timeout: la solicitud de URL firmada es corta; el PUT
	// del CSV puede tardar más según el tamaño del lote.
	SlotTimeoutSeconds   int
	UploadTimeoutSeconds int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "inventario-sync"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "inventario-sync"),
		},
		Operator: OperatorConfig{
			Username:     getString(v, "OPERATOR_USERNAME", "operator"),
			PasswordHash: getString(v, "OPERATOR_PASSWORD_HASH", ""),
		},
		Catalog: CatalogConfig{
			Source:   getString(v, "CATALOG_SOURCE", "csv"),
			CSVPath:  getString(v, "CATALOG_CSV_PATH", "itemCsv/DemoItems.csv"),
			Location: getString(v, "CATALOG_LOCATION", "Times Square"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario_sync"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Deliverect: DeliverectConfig{
			APIBaseURL:           getString(v, "DELIVERECT_API_BASE_URL", "https://api.deliverect.io"),
			AccountID:            getString(v, "DELIVERECT_ACCOUNT_ID", ""),
			CallbackURL:          getString(v, "DELIVERECT_CALLBACK_URL", "https://example.com/callback"),
			Token:                getString(v, "DELIVERECT_TOKEN", ""),
			SlotTimeoutSeconds:   getInt(v, "DELIVERECT_SLOT_TIMEOUT_SECONDS", 60),
			UploadTimeoutSeconds: getInt(v, "DELIVERECT_UPLOAD_TIMEOUT_SECONDS", 300),
		},
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
