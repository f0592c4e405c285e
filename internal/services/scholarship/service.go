package scholarship

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"scholarship-go/internal/model"
	"scholarship-go/internal/providers/firecrawl"
	"scholarship-go/internal/query"
)

type Credentials struct {
	SearchKey     string
	ExtractionKey string
}

type Service struct {
	credentials Credentials
	searcher    Searcher
	extractor   Extractor
	variant     Variant
	logger      *zap.Logger
}

func NewService(credentials Credentials, searcher Searcher, extractor Extractor, variant Variant, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if variant == "" {
		variant = VariantExtended
	}
	return &Service{
		credentials: credentials,
		searcher:    searcher,
		extractor:   extractor,
		variant:     variant,
		logger:      logger,
	}
}

// Search renders the query, searches, and extracts scholarships from the
// result pages. Search provider errors are returned unchanged so the caller
// can tell an unavailable upstream from an empty result.
func (s *Service) Search(ctx context.Context, base string, filters query.Filters) (model.SearchResponse, error) {
	if s.credentials.SearchKey == "" {
		return model.SearchResponse{}, &CredentialError{Name: "SERPER_API_KEY"}
	}
	if s.credentials.ExtractionKey == "" {
		return model.SearchResponse{}, &CredentialError{Name: "FIRECRAWL_API_KEY"}
	}

	q := query.Build(base, filters)

	urls, err := s.searcher.Search(ctx, q)
	if err != nil {
		return model.SearchResponse{}, err
	}
	if len(urls) == 0 {
		return model.SearchResponse{}, ErrNoResults
	}
	s.logger.Info("search results", zap.String("query", q), zap.Int("urls", len(urls)))

	payload, err := s.extractor.Extract(ctx, firecrawl.Request{
		URLs:   urls,
		Prompt: s.variant.Prompt(),
		Schema: s.variant.Schema(),
	})
	if err != nil {
		return model.SearchResponse{}, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	if result, ok := model.DecodeExtractResult(payload); ok {
		s.logger.Info("scholarships extracted", zap.String("query", q), zap.Int("count", len(result.Scholarships)))
	} else {
		s.logger.Warn("extraction payload has no scholarships list", zap.String("query", q))
	}

	return model.SearchResponse{Query: q, Results: payload}, nil
}
