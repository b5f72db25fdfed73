// Package config provides configuration management for the sqlequiv CLI.
//
// Values are layered from defaults, a sqlequiv.yaml file, SQLEQUIV_*
// environment variables and command-line flags, in increasing order of
// precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	SourceDialect   string         `koanf:"source_dialect"`
	TargetDialect   string         `koanf:"target_dialect"`
	MappingFile     string         `koanf:"mapping_file"`
	Mapping         map[string]any `koanf:"mapping"`
	Mode            string         `koanf:"mode"`
	UnwrapDateParse bool           `koanf:"unwrap_date_parse"`
	CNF             bool           `koanf:"cnf"`
	MaxIterations   int            `koanf:"max_iterations"`
	HistoryPath     string         `koanf:"history_path"`
	RecordHistory   bool           `koanf:"record_history"`
	Verbose         bool           `koanf:"verbose"`
	OutputFormat    string         `koanf:"output"`

	// ConfigDir is the directory of the loaded config file, or the
	// working directory when none was found. Relative paths in the file
	// resolve against it.
	ConfigDir string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultSourceDialect = "oracle"
	DefaultTargetDialect = "trino"
	DefaultMode          = "short-circuit"
	DefaultMaxIterations = 8
	DefaultHistoryFile   = ".sqlequiv/history.db"
	DefaultOutput        = "auto" // TTY=text, non-TTY=markdown
)

// configNames are the file names searched for, in order.
var configNames = []string{"sqlequiv.yaml", "sqlequiv.yml"}
