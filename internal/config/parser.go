// Package config loads, validates and resolves the bacman configuration.
//
// The pipeline is: locate the configuration file, read it, parse it into
// the document model, validate the document exhaustively, then resolve the
// effective settings for every declared backup path. Parsing is a faithful
// structural decode; every semantic rule lives in the validator.
package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bacman-dev/bacman/internal/models"
)

// Parser decodes configuration documents into the in-memory model.
type Parser struct{}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a TOML document. It applies no defaults and checks no
// semantics; absent keys stay nil, distinguishing "unset" from
// "explicitly zero".
func (p *Parser) Parse(data []byte) (*models.Config, error) {
	var cfg models.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &cfg, nil
}

// ParseString decodes a TOML document from a string (useful for testing).
func (p *Parser) ParseString(content string) (*models.Config, error) {
	return p.Parse([]byte(content))
}
