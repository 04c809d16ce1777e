package config

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/bacman-dev/bacman/internal/models"
)

// Loader runs the full configuration pipeline: locate, read, parse,
// validate, resolve. Each stage fails with its own error kind; see
// errors.go. A Loader keeps no state between calls; every load builds a
// fresh document and result list.
type Loader struct {
	parser    *Parser
	validator *Validator
	logger    zerolog.Logger
}

// NewLoader creates a loader backed by the real filesystem.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		parser:    NewParser(),
		validator: NewValidator(logger),
		logger:    logger,
	}
}

// NewLoaderWithValidator creates a loader with a custom validator (for
// testing with a simulated filesystem).
func NewLoaderWithValidator(logger zerolog.Logger, validator *Validator) *Loader {
	return &Loader{
		parser:    NewParser(),
		validator: validator,
		logger:    logger,
	}
}

// Load locates the configuration file by platform convention and runs the
// pipeline on it.
func (l *Loader) Load() ([]models.ResolvedBackupPath, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// LoadFile runs the pipeline on an explicit configuration file. The
// returned list is ordered like the document and independently owned;
// callers treat a reload as a whole-list swap, never a patch.
func (l *Loader) LoadFile(path string) ([]models.ResolvedBackupPath, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	cfg, err := l.parser.Parse(data)
	if err != nil {
		return nil, err
	}

	if err := l.validator.Validate(cfg); err != nil {
		return nil, err
	}

	resolved := Resolve(cfg)
	l.logger.Info().
		Str("file", path).
		Int("profiles", len(cfg.Profiles)).
		Int("paths", len(resolved)).
		Msg("configuration loaded")
	return resolved, nil
}
