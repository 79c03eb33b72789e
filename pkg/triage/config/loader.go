// Package config loads configuration files and builds the analysis engine
// they describe.
package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/triage/pkg/triage"
	"github.com/cognicore/triage/pkg/triage/lexicon"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	LexiconPath string
	TagLimit    int
	Logger      *zap.Logger
}

// Components holds all loaded configuration components
type Components struct {
	Lexicon *lexicon.Lexicon
	Engine  *triage.Engine
}

// FromConfig returns a loader for cfg.
func FromConfig(cfg Config, logger *zap.Logger) *Loader {
	return &Loader{
		LexiconPath: cfg.Lexicon,
		TagLimit:    cfg.TagLimit,
		Logger:      logger,
	}
}

// Load reads the lexicon, built-in when LexiconPath is empty, and returns an
// engine over it.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = lexicon.Default()
	}

	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}
	st := comp.Lexicon.Stats()
	log.Debug("lexicon loaded",
		zap.String("path", l.LexiconPath),
		zap.Int("categories", st.Categories),
		zap.Int("keywords", st.Keywords),
		zap.Int("phrases", st.Phrases),
	)

	comp.Engine = triage.New(triage.Options{
		Lexicon:  comp.Lexicon,
		TagLimit: l.TagLimit,
		Logger:   log,
	})
	return comp, nil
}
