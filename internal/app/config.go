package app

import "errors"

// Config holds everything an App instance needs to run one build.
type Config struct {
	ProjectPath string // flat project document (.json)
	BlocksPath  string // catalog document (.hcl, .json or .yaml)
	BoardsPath  string // board profiles document (.hcl, .json or .yaml)

	BoardID   string // overrides the board recorded in the project
	OutPath   string // sketch output file; empty writes to stdout
	EditorURL string // optional socket.io endpoint for live updates
	CheckOnly bool   // validate without generating

	LogFormat string
	LogLevel  string
}

// NewConfig validates a raw config into a usable one.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	if cfg.BlocksPath == "" {
		return nil, errors.New("BlocksPath is a required configuration field and cannot be empty")
	}
	if cfg.BoardsPath == "" {
		return nil, errors.New("BoardsPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
