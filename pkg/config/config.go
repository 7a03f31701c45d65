// Copyright 2025 catpack authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔧 ExcludeSettings holds the host-level exclude maps. Each key is a glob;
// the flag says whether the entry is active. Mirrors the editor-wide and
// search-wide exclude settings the selection honors by default.
type ExcludeSettings struct {
	Files  map[string]bool `json:"files,omitempty" yaml:"files,omitempty"`
	Search map[string]bool `json:"search,omitempty" yaml:"search,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	// Patterns is the comma-separated allow-pattern set applied to file names
	Patterns string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	// RespectIgnoreFiles gates the hierarchical ignore-file pass
	RespectIgnoreFiles bool `json:"respect_ignore_files" yaml:"respect_ignore_files"`
	// RespectHostExcludes gates the host-exclude settings source
	RespectHostExcludes bool `json:"respect_host_excludes" yaml:"respect_host_excludes"`
	// CustomExcludes is a comma-separated list of extra exclude patterns
	CustomExcludes string `json:"custom_excludes,omitempty" yaml:"custom_excludes,omitempty"`
	// Excludes are the host-level exclude maps
	Excludes ExcludeSettings `json:"excludes,omitempty" yaml:"excludes,omitempty"`
}

// 🏭 Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Patterns:            "*",
		RespectIgnoreFiles:  true,
		RespectHostExcludes: true,
		Excludes: ExcludeSettings{
			Files: map[string]bool{
				"**/.git": true,
			},
		},
	}
}

// 🎯 Load loads the configuration from a file. A missing file is not an
// error: the tool must work with zero configuration, so defaults are
// returned instead.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate normalizes the configuration and applies defaults
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Patterns) == "" {
		cfg.Patterns = "*"
	}
	return nil
}

// 📋 PatternList splits the comma-separated allow-pattern string
func (cfg *Config) PatternList() []string {
	return splitList(cfg.Patterns)
}

// 📋 CustomExcludeList splits the comma-separated custom exclude string
func (cfg *Config) CustomExcludeList() []string {
	return splitList(cfg.CustomExcludes)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
