package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Domenick1991/hackportal/internal/domain"
)

type Config struct {
	HTTP           HTTPConfig           `yaml:"http"`
	Database       DatabaseConfig       `yaml:"database"`
	Redis          RedisConfig          `yaml:"redis"`
	Kafka          KafkaConfig          `yaml:"kafka"`
	Admin          AdminConfig          `yaml:"admin"`
	Hacks          HacksConfig          `yaml:"hacks"`
	Transportation TransportationConfig `yaml:"transportation"`
	Log            LogConfig            `yaml:"log"`
}

type HTTPConfig struct {
	Address     string   `yaml:"address" validate:"required"`
	SwaggerDir  string   `yaml:"swagger_dir"`
	GinMode     string   `yaml:"gin_mode" validate:"omitempty,oneof=debug release test"`
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,url"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required,min=1,max=65535"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Name     string `yaml:"name" validate:"required"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, sslMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
}

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	EventsTopic string   `yaml:"events_topic"`
	GroupID     string   `yaml:"group_id"`
}

type AdminConfig struct {
	Credentials []string `yaml:"credentials" validate:"required,min=1,dive,required"`
	NotifyEmail string   `yaml:"notify_email" validate:"omitempty,email"`
}

type HacksConfig struct {
	ListCacheTTLSeconds int `yaml:"list_cache_ttl_seconds" validate:"min=0"`
	ImportLockSeconds   int `yaml:"import_lock_seconds" validate:"min=0"`
	ImportLockTries     int `yaml:"import_lock_tries" validate:"min=0,max=1000"`
}

func (h HacksConfig) ListCacheTTL() time.Duration {
	return time.Duration(h.ListCacheTTLSeconds) * time.Second
}

func (h HacksConfig) ImportLockExpiry() time.Duration {
	if h.ImportLockSeconds == 0 {
		return 30 * time.Second
	}
	return time.Duration(h.ImportLockSeconds) * time.Second
}

type BusRouteConfig struct {
	ID               string `yaml:"id" validate:"required"`
	CoordinatorName  string `yaml:"coordinator_name"`
	CoordinatorEmail string `yaml:"coordinator_email" validate:"omitempty,email"`
	Meeting          string `yaml:"meeting"`
	Location         string `yaml:"location"`
}

type TransportationConfig struct {
	BusRoutes []BusRouteConfig `yaml:"bus_routes" validate:"dive"`
}

// RouteTable converts the configured routes into the read-only lookup used by
// the transportation resolver.
func (t TransportationConfig) RouteTable() domain.BusRouteTable {
	routes := make([]domain.BusRoute, 0, len(t.BusRoutes))
	for _, r := range t.BusRoutes {
		routes = append(routes, domain.BusRoute{
			ID:               r.ID,
			CoordinatorName:  r.CoordinatorName,
			CoordinatorEmail: r.CoordinatorEmail,
			Meeting:          r.Meeting,
			Location:         r.Location,
		})
	}
	return domain.NewBusRouteTable(routes)
}

type LogConfig struct {
	Environment string `yaml:"environment" validate:"omitempty,oneof=development production"`
	Level       string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct validation and checks that bus route ids are unique.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	seen := make(map[string]struct{}, len(cfg.Transportation.BusRoutes))
	for i, r := range cfg.Transportation.BusRoutes {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate bus route id %q in transportation.bus_routes[%d]", r.ID, i)
		}
		seen[r.ID] = struct{}{}
	}

	return nil
}
