// Package dispatch runs a language parser over a query and converts what it
// finds into slot values.
package dispatch

import (
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/slotparse/internal/ontology"
	"github.com/ppiankov/slotparse/internal/rules"
	"github.com/ppiankov/slotparse/internal/slot"
)

// Builder constructs the parser of a language
type Builder func(lang ontology.Lang) (ontology.Parser, error)

// RulesBuilder builds the built-in rule parser
func RulesBuilder(opts ...rules.Option) Builder {
	return func(lang ontology.Lang) (ontology.Parser, error) {
		return rules.Build(lang, opts...)
	}
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithBuilder replaces the built-in rule parser
func WithBuilder(b Builder) Option {
	return func(d *Dispatcher) { d.build = b }
}

// WithLogger sets the logger, zap.NewNop by default
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithClock sets the source of the reference time used by Parse
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// Dispatcher binds one language to its parser. It is read-only after New and
// safe for concurrent use.
type Dispatcher struct {
	lang   ontology.Lang
	parser ontology.Parser
	build  Builder
	logger *zap.Logger
	now    func() time.Time
}

// New resolves a language code and builds its parser
func New(langCode string, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		build:  RulesBuilder(),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	lang, err := ontology.ParseLang(langCode)
	if err != nil {
		return nil, &ConfigurationError{Code: langCode, Err: err}
	}
	parser, err := d.build(lang)
	if err != nil {
		return nil, &ConfigurationError{Code: langCode, Err: err}
	}

	d.lang = lang
	d.parser = parser
	d.logger = d.logger.With(zap.String("lang", string(lang)))
	return d, nil
}

// Lang returns the language the dispatcher was built for
func (d *Dispatcher) Lang() ontology.Lang {
	return d.lang
}

// Parse extracts slot values from query relative to the current time. With no
// kinds every recognizable entity is returned; otherwise only the requested
// kinds, earlier ones taking precedence on overlapping spans.
func (d *Dispatcher) Parse(query string, kinds ...string) ([]slot.Value, error) {
	return d.ParseAt(query, d.now(), kinds)
}

// ParseAt is Parse with an explicit reference time
func (d *Dispatcher) ParseAt(query string, ref time.Time, kinds []string) ([]slot.Value, error) {
	order, err := resolveKinds(kinds)
	if err != nil {
		return nil, err
	}

	ctx := ontology.ResolverContext{ReferenceTime: ref}
	var entities []ontology.Entity
	if len(order) == 0 {
		entities, err = d.parser.Parse(query, ctx)
	} else {
		entities, err = d.parser.ParseWithKindOrder(query, ctx, order)
	}
	if err != nil {
		d.logger.Debug("parse failed", zap.Error(err))
		return nil, &ParseFailure{Query: query, Err: err}
	}

	values := slot.FromEntities(entities)
	d.logger.Debug("parsed",
		zap.Int("entities", len(entities)),
		zap.Strings("kinds", kinds),
	)
	return values, nil
}

func resolveKinds(kinds []string) ([]ontology.OutputKind, error) {
	if len(kinds) == 0 {
		return nil, nil
	}
	order := make([]ontology.OutputKind, 0, len(kinds))
	for _, name := range kinds {
		k, err := ontology.ParseOutputKind(name)
		if err != nil {
			return nil, &InvalidKindError{Kind: name, Err: err}
		}
		order = append(order, k)
	}
	return order, nil
}
