package app

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"scholarship-go/internal/config"
	"scholarship-go/internal/httpapi"
	"scholarship-go/internal/providers/firecrawl"
	"scholarship-go/internal/providers/serper"
	"scholarship-go/internal/services/scholarship"
)

type Builder struct {
	cfg    *config.Config
	logger *zap.Logger

	client    *http.Client
	searcher  scholarship.Searcher
	extractor scholarship.Extractor

	server *http.Server
}

type BuilderOption func(*Builder)

func NewBuilder(cfg *config.Config, options ...BuilderOption) *Builder {
	builder := &Builder{cfg: cfg}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

func WithHTTPClient(client *http.Client) BuilderOption {
	return func(b *Builder) {
		b.client = client
	}
}

func WithSearcher(searcher scholarship.Searcher) BuilderOption {
	return func(b *Builder) {
		b.searcher = searcher
	}
}

func WithExtractor(extractor scholarship.Extractor) BuilderOption {
	return func(b *Builder) {
		b.extractor = extractor
	}
}

func WithHTTPServer(server *http.Server) BuilderOption {
	return func(b *Builder) {
		b.server = server
	}
}

func (b *Builder) Build() (*App, error) {
	if b.cfg == nil {
		return nil, errors.New("config is required")
	}

	variant, err := scholarship.ParseVariant(b.cfg.SchemaVariant)
	if err != nil {
		return nil, err
	}

	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	app := &App{Config: b.cfg, Logger: b.logger}

	if b.client == nil {
		b.client = &http.Client{Timeout: b.cfg.HTTPClientTimeout}
	}

	if b.searcher == nil {
		b.searcher = serper.NewClient(b.client, b.cfg.SerperAPIKey,
			serper.WithBaseURL(b.cfg.SerperURL),
			serper.WithCountry(b.cfg.SerperCountry),
			serper.WithLogger(b.logger.Named("serper")),
		)
	}

	if b.extractor == nil {
		b.extractor = firecrawl.NewClient(b.client, b.cfg.FirecrawlAPIKey,
			firecrawl.WithBaseURL(b.cfg.FirecrawlURL),
			firecrawl.WithPollInterval(b.cfg.FirecrawlPollInterval),
			firecrawl.WithPollTimeout(b.cfg.FirecrawlPollTimeout),
			firecrawl.WithLogger(b.logger.Named("firecrawl")),
		)
	}

	app.Service = scholarship.NewService(
		scholarship.Credentials{SearchKey: b.cfg.SerperAPIKey, ExtractionKey: b.cfg.FirecrawlAPIKey},
		b.searcher,
		b.extractor,
		variant,
		b.logger.Named("scholarship"),
	)

	if b.server == nil {
		handler := httpapi.NewHandler(app.Service, b.cfg.UpstreamFailurePolicy, b.cfg.CORSAllowedOrigins, b.logger.Named("http"))
		b.server = &http.Server{
			Addr:              ":" + b.cfg.HTTPPort,
			Handler:           handler.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	app.Server = b.server

	return app, nil
}
