package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ArowuTest/voting-whitelist-loader/pkg/mongodb"
)

const (
	// DefaultMongoURI is used when neither --db nor MONGODB_URI is given.
	DefaultMongoURI = "mongodb://localhost:27017/voting-app"
	// DefaultDatabase is used when the connection string names no database.
	DefaultDatabase = "voting-app"
	// DefaultCollection matches the collection the voting application reads.
	DefaultCollection = "aadhaarwhitelists"
	// DefaultColumn is the CSV header holding the Aadhaar numbers.
	DefaultColumn = "aadhaar_number"
)

// Config holds all configuration for the uploader
type Config struct {
	MongoDB   MongoDBConfig
	Whitelist WhitelistConfig
	LogLevel  string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI              string
	Database         string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
}

// WhitelistConfig holds the import source and target
type WhitelistConfig struct {
	File       string
	Collection string
	Column     string
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"MongoDB.URI":              "MONGODB_URI",
	"MongoDB.Database":         "MONGODB_DATABASE",
	"MongoDB.ConnectTimeout":   "MONGODB_CONNECT_TIMEOUT",
	"MongoDB.OperationTimeout": "MONGODB_OPERATION_TIMEOUT",
	"Whitelist.Collection":     "WHITELIST_COLLECTION",
	"Whitelist.Column":         "WHITELIST_COLUMN",
	"LogLevel":                 "LOG_LEVEL",
}

// GetEnv retrieves an environment variable or returns a default value if not found
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Load builds the configuration from defaults, an optional config file,
// the environment and finally the command line flags "file" and "db".
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "bind %s", env)
		}
	}

	if flags != nil {
		if f := flags.Lookup("db"); f != nil {
			if err := v.BindPFlag("MongoDB.URI", f); err != nil {
				return nil, errors.Wrap(err, "bind --db")
			}
		}
		if f := flags.Lookup("file"); f != nil {
			if err := v.BindPFlag("Whitelist.File", f); err != nil {
				return nil, errors.Wrap(err, "bind --file")
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if cfg.MongoDB.Database == "" {
		cfg.MongoDB.Database = mongodb.DatabaseFromURI(cfg.MongoDB.URI, DefaultDatabase)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Whitelist.File == "":
		return errors.New("a CSV file is required")
	case c.MongoDB.URI == "":
		return errors.New("a MongoDB connection string is required")
	case c.Whitelist.Column == "":
		return errors.New("the Aadhaar column name must not be empty")
	case c.Whitelist.Collection == "":
		return errors.New("the whitelist collection name must not be empty")
	case c.MongoDB.ConnectTimeout <= 0 || c.MongoDB.OperationTimeout <= 0:
		return errors.New("MongoDB timeouts must be positive")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("MongoDB.URI", DefaultMongoURI)
	v.SetDefault("MongoDB.Database", "")
	v.SetDefault("MongoDB.ConnectTimeout", 10*time.Second)
	v.SetDefault("MongoDB.OperationTimeout", 5*time.Second)
	v.SetDefault("Whitelist.Collection", DefaultCollection)
	v.SetDefault("Whitelist.Column", DefaultColumn)
	v.SetDefault("LogLevel", "info")
}
