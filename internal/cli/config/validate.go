package config

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlequiv/internal/cli/output"
	"github.com/leapstack-labs/sqlequiv/internal/loader"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/equiv"
	"github.com/leapstack-labs/sqlequiv/pkg/normalize"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if _, err := dialect.Lookup(c.SourceDialect); err != nil {
		errs = append(errs, fmt.Errorf("source_dialect: %w", err))
	}
	if _, err := dialect.Lookup(c.TargetDialect); err != nil {
		errs = append(errs, fmt.Errorf("target_dialect: %w", err))
	}
	if _, err := equiv.ParseMode(c.Mode); err != nil {
		errs = append(errs, fmt.Errorf("mode: %w", err))
	}
	if c.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations))
	}
	if !output.ValidMode(c.OutputFormat) {
		errs = append(errs, fmt.Errorf("output: unknown format %q (valid: %v)", c.OutputFormat, output.Modes()))
	}
	if c.RecordHistory && c.HistoryPath == "" {
		errs = append(errs, errors.New("history_path is required when record_history is enabled"))
	}
	return errors.Join(errs...)
}

// LoadMapping builds the table name mapping from mapping_file and the
// inline mapping table. Inline entries win over file entries.
func (c *Config) LoadMapping() (*normalize.Mapping, error) {
	m := normalize.NewMapping()
	if c.MappingFile != "" {
		fromFile, err := loader.LoadMappingFile(c.MappingFile)
		if err != nil {
			return nil, err
		}
		m = fromFile
	}
	if len(c.Mapping) > 0 {
		inline, err := loader.FromMap(c.Mapping)
		if err != nil {
			return nil, fmt.Errorf("invalid inline mapping: %w", err)
		}
		m = loader.Merge(m, inline)
	}
	return m, nil
}

// EquivOptions converts the configuration into comparator options. The
// mapping is left for the caller to attach.
func (c *Config) EquivOptions() (equiv.Options, error) {
	mode, err := equiv.ParseMode(c.Mode)
	if err != nil {
		return equiv.Options{}, err
	}
	return equiv.Options{
		SourceDialect:   c.SourceDialect,
		TargetDialect:   c.TargetDialect,
		Mode:            mode,
		UnwrapDateParse: c.UnwrapDateParse,
		CNF:             c.CNF,
		MaxIterations:   c.MaxIterations,
	}, nil
}
