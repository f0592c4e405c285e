package scholarship

import (
	"context"
	"encoding/json"

	"scholarship-go/internal/providers/firecrawl"
)

type Searcher interface {
	Search(ctx context.Context, query string) ([]*string, error)
}

type Extractor interface {
	Extract(ctx context.Context, input firecrawl.Request) (json.RawMessage, error)
}
