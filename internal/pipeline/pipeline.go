package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/slotparse/internal/cache"
	"github.com/ppiankov/slotparse/internal/dispatch"
	"github.com/ppiankov/slotparse/internal/model"
	"github.com/ppiankov/slotparse/internal/rules"
	"github.com/ppiankov/slotparse/internal/slot"
)

// Pipeline answers wire requests: it picks the dispatcher of the request
// language, consults the cache and shapes the response
type Pipeline struct {
	config *model.Config
	cache  cache.Cache // nil when caching is disabled
	logger *zap.Logger
	build  dispatch.Builder
	now    func() time.Time
	newID  func() string

	mu          sync.RWMutex
	dispatchers map[string]*dispatch.Dispatcher
}

// Option configures a Pipeline
type Option func(*Pipeline)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithCache replaces the cache built from the configuration; nil disables caching
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

func WithBuilder(b dispatch.Builder) Option {
	return func(p *Pipeline) { p.build = b }
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		config:      cfg,
		logger:      zap.NewNop(),
		build:       dispatch.RulesBuilder(rules.MaxQueryBytes(cfg.Parser.MaxQueryBytes)),
		now:         time.Now,
		newID:       uuid.NewString,
		dispatchers: make(map[string]*dispatch.Dispatcher),
	}
	if cfg.Cache.Enabled {
		p.cache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process answers one request. Failures are reported in the response, never
// alongside values.
func (p *Pipeline) Process(ctx context.Context, req model.Request) model.Response {
	resp := model.Response{
		ID:    req.ID,
		Lang:  req.Lang,
		Query: req.Query,
	}
	if resp.ID == "" {
		resp.ID = p.newID()
	}
	if resp.Lang == "" {
		resp.Lang = p.config.Parser.Lang
	}
	kinds := req.Kinds
	if len(kinds) == 0 {
		kinds = p.config.Parser.Kinds
	}

	// rules never look below the second
	ref := p.now().Truncate(time.Second)
	if req.ReferenceTime != nil {
		ref = *req.ReferenceTime
	}

	if err := ctx.Err(); err != nil {
		resp.Error = &model.ErrorInfo{Type: model.ErrorCanceled, Message: err.Error()}
		return resp
	}

	d, err := p.dispatcher(resp.Lang)
	if err != nil {
		resp.Error = errorInfo(err)
		return resp
	}

	key := cache.Key(string(d.Lang()), kinds, ref, req.Query)
	if p.cache != nil {
		if values, ok := p.cache.Get(key); ok {
			p.logger.Debug("cache hit", zap.String("id", resp.ID))
			resp.Values = nonNil(values)
			return resp
		}
	}

	values, err := d.ParseAt(req.Query, ref, kinds)
	if err != nil {
		p.logger.Warn("request failed", zap.String("id", resp.ID), zap.Error(err))
		resp.Error = errorInfo(err)
		return resp
	}

	if p.cache != nil {
		p.cache.Set(key, values, p.config.Cache.TTL)
	}
	resp.Values = nonNil(values)
	return resp
}

// dispatcher returns the shared dispatcher of a language, building it once
func (p *Pipeline) dispatcher(lang string) (*dispatch.Dispatcher, error) {
	key := strings.ToLower(strings.TrimSpace(lang))

	p.mu.RLock()
	d, ok := p.dispatchers[key]
	p.mu.RUnlock()
	if ok {
		return d, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if d, ok := p.dispatchers[key]; ok {
		return d, nil
	}

	d, err := dispatch.New(lang,
		dispatch.WithBuilder(p.build),
		dispatch.WithLogger(p.logger),
		dispatch.WithClock(p.now),
	)
	if err != nil {
		return nil, err
	}
	p.dispatchers[key] = d
	p.logger.Debug("dispatcher ready", zap.String("lang", key))
	return d, nil
}

func errorInfo(err error) *model.ErrorInfo {
	var (
		cfgErr  *dispatch.ConfigurationError
		kindErr *dispatch.InvalidKindError
	)
	switch {
	case errors.As(err, &cfgErr):
		return &model.ErrorInfo{Type: model.ErrorConfiguration, Message: err.Error()}
	case errors.As(err, &kindErr):
		return &model.ErrorInfo{Type: model.ErrorInvalidKind, Message: err.Error()}
	default:
		return &model.ErrorInfo{Type: model.ErrorParseFailure, Message: err.Error()}
	}
}

func nonNil(values []slot.Value) []slot.Value {
	if values == nil {
		return []slot.Value{}
	}
	return values
}
