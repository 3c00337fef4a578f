package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/nsfs/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestNewConfig_WithNilOverride tests that NewConfig creates a config with all default values
// when no override is provided.
func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values when no config provided")
	assert.NoError(t, cfg.Validate())
}

// TestNewConfig_WithAllOverride tests that NewConfig applies every provided override.
func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	override := createOverride()
	override.LogLvl = util.Pointer(TraceVerbose)
	cfg := NewConfig(override)

	expCfg := &Config{
		MountOptions: MountOptions{
			FsName: "test_fs",
			Name:   "test_name",
			Debug:  true,
		},
		LogLvl:        util.TraceLevel,
		Capacity:      *override.Capacity,
		MaxNameLength: *override.MaxNameLength,
		TruncateNames: *override.TruncateNames,
		RootName:      *override.RootName,
		AttrTimeout:   *override.AttrTimeout,
		EntryTimeout:  *override.EntryTimeout,
		ListenAddr:    *override.ListenAddr,
	}
	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields")
}

func TestConfig_Merge_LogLvlConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verboseValue  int
		expectedLevel util.LogLevel
	}{
		{"verbose_1_error", 1, util.ErrorLevel},
		{"verbose_2_warn", 2, util.WarnLevel},
		{"verbose_3_info", 3, util.InfoLevel},
		{"verbose_4_debug", 4, util.DebugLevel},
		{"verbose_5_trace", 5, util.TraceLevel},
		{"verbose_0_clamped_to_1", 0, util.ErrorLevel},
		{"verbose_100_clamped_to_5", 100, util.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override := &ConfigOverride{
				LogLvl: &tt.verboseValue,
			}

			cfg := NewConfig(override)

			assert.Equal(t, tt.expectedLevel, cfg.LogLvl,
				"CLI verbose %d should map to util.LogLevel %v", tt.verboseValue, tt.expectedLevel)
		})
	}
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{
		FsName:   util.Pointer("test_fs"),
		Capacity: util.Pointer(0),
	}
	cfg := NewConfig(override)

	expCfg := createDefaultCfg()
	expCfg.FsName = "test_fs"
	expCfg.Capacity = 0

	assert.Equal(t, expCfg, cfg, "must override all provided fields and leave rest default")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"negative_capacity", func(c *Config) { c.Capacity = -1 }, "capacity"},
		{"zero_name_length", func(c *Config) { c.MaxNameLength = 0 }, "max name length"},
		{"empty_root_name", func(c *Config) { c.RootName = "" }, "root name"},
		{"truncate_below_rune_width", func(c *Config) {
			c.TruncateNames = true
			c.MaxNameLength = 1
		}, "when truncating names"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Validate_TruncateMinimum(t *testing.T) {
	t.Parallel()
	cfg := NewDefaultConfig()
	cfg.TruncateNames = true
	cfg.MaxNameLength = 4
	assert.NoError(t, cfg.Validate())

	cfg.TruncateNames = false
	cfg.MaxNameLength = 1
	assert.NoError(t, cfg.Validate(), "short limits are fine without truncation")
}

func TestLoadConfigOverrideFile_Valid(t *testing.T) {
	t.Parallel()

	marshalers := map[string]func(v any) ([]byte, error){
		".yaml": yaml.Marshal,
		".yml":  yaml.Marshal,
		".json": json.Marshal,
	}

	for ext, marshal := range marshalers {
		t.Run("valid"+ext, func(t *testing.T) {
			t.Parallel()
			override := createOverride()
			data, err := marshal(override)
			require.NoError(t, err)
			path := filepath.Join(t.TempDir(), "override"+ext)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			loaded, err := LoadConfigOverrideFile(path)

			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, *override, *loaded)
		})
	}
}

func TestLoadConfigOverrideFile_InvalidContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.json")
	require.NoError(t, os.WriteFile(path, []byte("{capacity: "), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config file")
}

// TestLoadConfigOverrideFile_NonExistentFile tests error handling
// when trying to load a file that doesn't exist.
func TestLoadConfigOverrideFile_NonExistentFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does_not_exist.yaml")

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
}

// TestLoadConfigOverrideFile_UnsupportedExtension tests error handling
// for file extensions that aren't supported (.txt, .xml, etc).
func TestLoadConfigOverrideFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.txt")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 1"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config file extension")
}

func TestNewConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nsfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 3\nroot_name: campus\n"), 0o600))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	expCfg := createDefaultCfg()
	expCfg.Capacity = 3
	expCfg.RootName = "campus"
	assert.Equal(t, expCfg, cfg)

	_, err = NewConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

// Not parallel: t.Setenv
func TestLoadEnvOverride(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NSFS_CAPACITY=4\nNSFS_TRUNCATE_NAMES=true\n"), 0o600))
	t.Setenv(EnvRootName, "campus")
	t.Setenv(EnvCapacity, "7") // process env wins over the file
	t.Setenv(EnvTruncateNames, "")
	os.Unsetenv(EnvTruncateNames)

	override, err := LoadEnvOverride(envFile)
	require.NoError(t, err)

	require.NotNil(t, override.Capacity)
	assert.Equal(t, 7, *override.Capacity)
	require.NotNil(t, override.TruncateNames)
	assert.True(t, *override.TruncateNames)
	require.NotNil(t, override.RootName)
	assert.Equal(t, "campus", *override.RootName)
	assert.Nil(t, override.MaxNameLength)
}

func TestLoadEnvOverride_MissingFileAndBadValue(t *testing.T) {
	t.Setenv(EnvMaxNameLength, "lots")

	_, err := LoadEnvOverride(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxNameLength)
}

func createDefaultCfg() *Config {
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

// createOverride makes a ConfigOverride with all non-default values
func createOverride() *ConfigOverride {
	testLogVerbose := TraceVerbose
	if DefaultLogLvl == util.TraceLevel {
		testLogVerbose = DebugVerbose
	}
	return &ConfigOverride{
		LogLvl:        util.Pointer(testLogVerbose),
		Capacity:      util.Pointer(DefaultCapacity + 1),
		MaxNameLength: util.Pointer(DefaultMaxNameLength + 1),
		TruncateNames: util.Pointer(!DefaultTruncateNames),
		RootName:      util.Pointer("campus"),
		AttrTimeout:   util.Pointer(float64(DefaultAttrTimeout + 1)),
		EntryTimeout:  util.Pointer(float64(DefaultEntryTimeout + 1)),
		ListenAddr:    util.Pointer(":9090"),
		FsName:        util.Pointer("test_fs"),
		Name:          util.Pointer("test_name"),
		Debug:         util.Pointer(true),
	}
}
