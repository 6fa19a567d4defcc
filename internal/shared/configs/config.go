package configs

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Probes  ProbesConfig  `mapstructure:"probes" validate:"required"`
	Stream  StreamConfig  `mapstructure:"stream" validate:"required"`
	Sampler SamplerConfig `mapstructure:"sampler"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

const (
	StorageBackendFile     = "file"
	StorageBackendPostgres = "postgres"
)

// StorageConfig selects where flushed measures are persisted. Index is the
// storage location every probe collection lives under.
type StorageConfig struct {
	Backend                string `mapstructure:"backend" validate:"required,oneof=file postgres"`
	Index                  string `mapstructure:"index" validate:"required"`
	RootDir                string `mapstructure:"root_dir" validate:"required_if=Backend file"`
	PostgresDSN            string `mapstructure:"postgres_dsn" validate:"required_if=Backend postgres"`
	PostgresMaxConnections int32  `mapstructure:"postgres_max_connections" validate:"omitempty,min=1"`
}

const (
	ProbePolicyDrop   = "drop"
	ProbePolicyStrict = "strict"
)

// ProbesConfig points at the probe definitions file and picks what happens to
// an invalid probe: drop it and keep the others, or refuse to start.
type ProbesConfig struct {
	DefinitionsFile string `mapstructure:"definitions_file" validate:"required"`
	Policy          string `mapstructure:"policy" validate:"required,oneof=drop strict"`
}

// StreamConfig sizes the in-process queue between ingestion and the engine.
type StreamConfig struct {
	Partitions int `mapstructure:"partitions" validate:"required,min=1,max=64"`
	Buffer     int `mapstructure:"buffer" validate:"required,min=1"`
}

// SamplerConfig seeds the reservoir sampler random source. Zero means seed from
// the process start time.
type SamplerConfig struct {
	Seed uint64 `mapstructure:"seed"`
}
