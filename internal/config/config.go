package config

import "time"

// Storage drivers understood by the server.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// EnvironmentDevelopment is the only environment in which the built-in
// development JWT secret is acceptable.
const EnvironmentDevelopment = "development"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	Environment     string        `mapstructure:"environment"      validate:"required"`
	DebugRoutes     bool          `mapstructure:"debug_routes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects and configures the persistence backend.
// URL is required for every driver except memory.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres mongo"`
	URL    string `mapstructure:"url"    validate:"required_unless=Driver memory"`
	Name   string `mapstructure:"name"`
}

// AuthConfig contains all authentication and authorization settings.
// An empty JWTSecret selects the development secret.
type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	BcryptCost int    `mapstructure:"bcrypt_cost" validate:"gte=10,lte=31"`
}

// IsDevelopment reports whether the server runs in the development environment.
func (c ServerConfig) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}
