package app

import "errors"

// Config holds everything a generation run needs.
type Config struct {
	BlueprintPath string // option schema + artifact index, .hcl files
	TemplateRoot  string // opaque template bodies referenced by artifacts
	OutputPath    string // target directory for the generated tree
	AnswersPath   string // optional answers document (YAML/JSON/TOML)
	SetPairs      []string

	LogFormat string
	LogLevel  string
	Workers   int
}

// NewConfig validates a Config and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BlueprintPath == "" {
		return nil, errors.New("a blueprint path is required")
	}
	if cfg.TemplateRoot == "" {
		return nil, errors.New("a template root is required")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("an output path is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &cfg, nil
}
