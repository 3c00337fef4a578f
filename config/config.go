package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/brettbedarf/nsfs/internal/util"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Log verbosity as exposed to users: 1 (error) .. 5 (trace)
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultCapacity is the maximum number of children per directory
	DefaultCapacity = 10

	// DefaultMaxNameLength is the maximum length of a single name in bytes
	DefaultMaxNameLength = 255

	DefaultTruncateNames = false

	// DefaultRootName is the name reported for "/"
	DefaultRootName = "root"

	DefaultFsName = "nsfs"
	DefaultName   = "nsfs"

	// DefaultAttrTimeout is the FUSE attribute cache timeout in seconds
	DefaultAttrTimeout = 1.0

	// DefaultEntryTimeout is the FUSE directory entry cache timeout in seconds
	DefaultEntryTimeout = 1.0

	DefaultListenAddr = ":8080"
)

// Environment variables read by [LoadEnvOverride]
const (
	EnvLogVerbose    = "NSFS_LOG_VERBOSE"
	EnvCapacity      = "NSFS_CAPACITY"
	EnvMaxNameLength = "NSFS_MAX_NAME_LENGTH"
	EnvTruncateNames = "NSFS_TRUNCATE_NAMES"
	EnvRootName      = "NSFS_ROOT_NAME"
	EnvListenAddr    = "NSFS_LISTEN_ADDR"
)

// Config contains runtime configuration values for the namespace.
type Config struct {
	MountOptions
	LogLvl        util.LogLevel // Internal log level (Default Info)
	Capacity      int           // Maximum children per directory; 0 means unbounded (Default 10)
	MaxNameLength int           // Maximum name length in bytes (Default 255)
	TruncateNames bool          // Truncate over-long names instead of rejecting them; needs MaxNameLength >= utf8.UTFMax (Default false)
	RootName      string        // Name reported for the root directory (Default "root")
	AttrTimeout   float64       // FUSE attribute cache timeout in seconds (Default 1.0)
	EntryTimeout  float64       // FUSE directory entry cache timeout in seconds (Default 1.0)
	ListenAddr    string        // HTTP API listen address (Default ":8080")
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	LogLvl        *int     `yaml:"log_verbose,omitempty" json:"log_verbose,omitempty"` // User verbosity 1..5, see [VerboseToLogLevel]
	Capacity      *int     `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	MaxNameLength *int     `yaml:"max_name_length,omitempty" json:"max_name_length,omitempty"`
	TruncateNames *bool    `yaml:"truncate_names,omitempty" json:"truncate_names,omitempty"`
	RootName      *string  `yaml:"root_name,omitempty" json:"root_name,omitempty"`
	AttrTimeout   *float64 `yaml:"attr_timeout,omitempty" json:"attr_timeout,omitempty"`
	EntryTimeout  *float64 `yaml:"entry_timeout,omitempty" json:"entry_timeout,omitempty"`
	ListenAddr    *string  `yaml:"listen_addr,omitempty" json:"listen_addr,omitempty"`
	FsName        *string  `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	Name          *string  `yaml:"name,omitempty" json:"name,omitempty"`
	Debug         *bool    `yaml:"debug,omitempty" json:"debug,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		LogLvl:        DefaultLogLvl,
		Capacity:      DefaultCapacity,
		MaxNameLength: DefaultMaxNameLength,
		TruncateNames: DefaultTruncateNames,
		RootName:      DefaultRootName,
		AttrTimeout:   DefaultAttrTimeout,
		EntryTimeout:  DefaultEntryTimeout,
		ListenAddr:    DefaultListenAddr,
	}
}

// NewConfig creates a default Config with override applied; override may be nil.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// VerboseToLogLevel converts user verbosity (1 error .. 5 trace) to an internal
// log level, clamping out of range values.
func VerboseToLogLevel(verbose int) util.LogLevel {
	verbose = min(max(verbose, ErrorVerbose), TraceVerbose)
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLevel(*override.LogLvl)
	}
	if override.Capacity != nil {
		c.Capacity = *override.Capacity
	}
	if override.MaxNameLength != nil {
		c.MaxNameLength = *override.MaxNameLength
	}
	if override.TruncateNames != nil {
		c.TruncateNames = *override.TruncateNames
	}
	if override.RootName != nil {
		c.RootName = *override.RootName
	}
	if override.AttrTimeout != nil {
		c.AttrTimeout = *override.AttrTimeout
	}
	if override.EntryTimeout != nil {
		c.EntryTimeout = *override.EntryTimeout
	}
	if override.ListenAddr != nil {
		c.ListenAddr = *override.ListenAddr
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
	if override.Debug != nil {
		c.Debug = *override.Debug
	}
}

// Validate reports configuration values the namespace cannot work with
func (c *Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must be >= 0, got %d", c.Capacity)
	}
	if c.MaxNameLength < 1 {
		return fmt.Errorf("max name length must be >= 1, got %d", c.MaxNameLength)
	}
	// truncation cuts on rune boundaries, so a shorter limit can empty a name
	if c.TruncateNames && c.MaxNameLength < utf8.UTFMax {
		return fmt.Errorf("max name length must be >= %d when truncating names, got %d",
			utf8.UTFMax, c.MaxNameLength)
	}
	if c.RootName == "" {
		return fmt.Errorf("root name must not be empty")
	}
	return nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}

// LoadEnvOverride loads the given dotenv files (".env" when none are given) into
// the process environment and reads NSFS_* variables into a ConfigOverride.
// Missing dotenv files are not an error; variables already set in the
// environment take precedence over file values.
func LoadEnvOverride(files ...string) (*ConfigOverride, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	var override ConfigOverride
	var err error
	if override.LogLvl, err = envInt(EnvLogVerbose); err != nil {
		return nil, err
	}
	if override.Capacity, err = envInt(EnvCapacity); err != nil {
		return nil, err
	}
	if override.MaxNameLength, err = envInt(EnvMaxNameLength); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(EnvTruncateNames); ok {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTruncateNames, perr)
		}
		override.TruncateNames = &b
	}
	if v, ok := os.LookupEnv(EnvRootName); ok {
		override.RootName = util.Pointer(v)
	}
	if v, ok := os.LookupEnv(EnvListenAddr); ok {
		override.ListenAddr = util.Pointer(v)
	}
	return &override, nil
}

func envInt(key string) (*int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &i, nil
}
