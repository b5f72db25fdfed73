package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// EnvPrefix prefixes environment variables read as configuration.
const EnvPrefix = "SQLEQUIV_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// flagKeys maps flag names whose config key is not the snake_case form of
// the flag name.
var flagKeys = map[string]string{
	"mapping": "mapping_file",
	"history": "history_path",
	"format":  "output",
}

// invertedFlags hold the negation of a config key.
var invertedFlags = map[string]string{
	"no-cnf":     "cnf",
	"no-history": "record_history",
}

// ignoredFlags are read by commands directly.
var ignoredFlags = map[string]bool{
	"config":  true,
	"map":     true,
	"watch":   true,
	"dump":    true,
	"limit":   true,
	"pretty":  true,
	"dialect": true,
}

func defaults() map[string]any {
	return map[string]any{
		"source_dialect":    DefaultSourceDialect,
		"target_dialect":    DefaultTargetDialect,
		"mode":              DefaultMode,
		"unwrap_date_parse": false,
		"cnf":               true,
		"max_iterations":    DefaultMaxIterations,
		"history_path":      DefaultHistoryFile,
		"record_history":    true,
		"verbose":           false,
		"output":            DefaultOutput,
	}
}

// configIn returns the config file in dir, if any.
func configIn(dir string) string {
	for _, name := range configNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a config file.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// An explicit cfgFile must exist; otherwise sqlequiv.yaml is searched for
// from the working directory upward.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	if cfgFile != "" {
		configFileUsed = cfgFile
	} else {
		configFileUsed = findConfigUpward(cwd)
	}
	configDir := cwd
	fk := koanf.New(".")
	if configFileUsed != "" {
		if err := fk.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			configDir = filepath.Dir(abs)
		}
	}

	// 3. Load environment variables: SQLEQUIV_SOURCE_DIALECT -> source_dialect
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagValue(flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigDir = configDir

	// Paths from the file are relative to the file; flags and env vars
	// are relative to the working directory.
	cfg.MappingFile = expandEnvVars(cfg.MappingFile)
	if fk.Exists("mapping_file") && !overridden("mapping_file", flags, "mapping") {
		cfg.MappingFile = resolvePathRelativeTo(cfg.MappingFile, configDir)
	}
	cfg.HistoryPath = expandEnvVars(cfg.HistoryPath)
	if fk.Exists("history_path") && !overridden("history_path", flags, "history") {
		cfg.HistoryPath = resolvePathRelativeTo(cfg.HistoryPath, configDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// flagValue returns the posflag callback: only changed flags are loaded,
// kebab-case names become snake_case keys.
func flagValue(flags *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed || ignoredFlags[f.Name] {
			return "", nil
		}
		if key, ok := invertedFlags[f.Name]; ok {
			on, _ := flags.GetBool(f.Name)
			return key, !on
		}
		if f.Name == "collect-all" {
			on, _ := flags.GetBool(f.Name)
			if on {
				return "mode", "collect-all"
			}
			return "mode", DefaultMode
		}
		if key, ok := flagKeys[f.Name]; ok {
			return key, posflag.FlagVal(flags, f)
		}
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	}
}

// overridden reports whether key was set by an env var or flag.
func overridden(key string, flags *pflag.FlagSet, flagName string) bool {
	if _, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(key)); ok {
		return true
	}
	return flags != nil && flags.Lookup(flagName) != nil && flags.Changed(flagName)
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns. Unset variables are left as is.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := os.LookupEnv(match[2 : len(match)-1]); ok {
			return val
		}
		return match
	})
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the configuration loaded by the last LoadConfig call.
func GetCurrentConfig() *Config {
	return currentConfig
}

// Defaults returns a configuration holding only default values.
func Defaults() *Config {
	cwd, _ := os.Getwd()
	return &Config{
		SourceDialect: DefaultSourceDialect,
		TargetDialect: DefaultTargetDialect,
		Mode:          DefaultMode,
		CNF:           true,
		MaxIterations: DefaultMaxIterations,
		HistoryPath:   DefaultHistoryFile,
		RecordHistory: true,
		OutputFormat:  DefaultOutput,
		ConfigDir:     cwd,
	}
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
