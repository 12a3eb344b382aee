package types

import (
	"github.com/pablor21/boollike/annotations"
	"github.com/pablor21/boollike/config"
	"github.com/pablor21/boollike/logger"
)

type ProcessContext struct {
	Config      *config.Config
	Logger      logger.Logger
	Definitions annotations.Definitions
	ModulePath  string // The module path of the project being scanned
}

// NewProcessContext builds a context for cfg, deriving the annotation definitions from it
func NewProcessContext(cfg *config.Config, l logger.Logger) *ProcessContext {
	if l == nil {
		l = logger.NewDefaultLogger()
	}
	return &ProcessContext{
		Config:      cfg,
		Logger:      l,
		Definitions: annotations.NewDefinitions(cfg.Annotations.Prefix, cfg.Annotations.Type, cfg.Annotations.FalseMarker),
	}
}
