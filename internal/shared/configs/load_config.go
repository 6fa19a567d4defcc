package configs

import (
	"fmt"
	"strings"

	"probe-metrics/internal/shared/validators"

	"github.com/spf13/viper"
)

const envPrefix = "PROBES"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.backend", StorageBackendFile)
	v.SetDefault("storage.index", "")
	v.SetDefault("storage.root_dir", "")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.postgres_max_connections", 10)
	v.SetDefault("probes.definitions_file", "")
	v.SetDefault("probes.policy", ProbePolicyDrop)
	v.SetDefault("stream.partitions", 1)
	v.SetDefault("stream.buffer", 1024)
	v.SetDefault("sampler.seed", 0)
}

// LoadConfig reads configuration from file and validates it. Keys with a
// default can be overridden from the environment, e.g. PROBES_STORAGE_POSTGRES_DSN.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Namespace uses mapstructure keys: "Config.storage.root_dir" -> "storage.root_dir"
	if parts := strings.Split(e.Namespace(), "."); len(parts) >= 2 {
		field = strings.Join(parts[1:], ".")
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "required_if":
		msg = fmt.Sprintf("%s (required when %s)", field, e.Param())
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
