package websearch

import (
	"context"

	"go.uber.org/zap"

	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
	"github.com/jerewitdashifts/chat-platform/pkg/metrics"
)

// Result is the normalized outcome of a web context fetch. Callers cannot
// distinguish "nothing found" from "fetch failed"; both are the zero value.
type Result struct {
	Text    string            `json:"text"`
	Sources []model.WebSource `json:"sources"`
}

// Fetcher combines the search provider with the instant-answer fallback.
type Fetcher struct {
	serper *SerperClient
	ddg    *DuckDuckGoClient
	logger *logger.Logger
}

// NewFetcher creates a fetcher over the two providers.
func NewFetcher(serper *SerperClient, ddg *DuckDuckGoClient, log *logger.Logger) *Fetcher {
	return &Fetcher{
		serper: serper,
		ddg:    ddg,
		logger: log,
	}
}

// FetchFreshFact fetches web context for a query. It never returns an error:
// an unconfigured provider, a network failure or a parse failure all collapse
// into the empty Result, logged at the boundary.
func (f *Fetcher) FetchFreshFact(ctx context.Context, query string) Result {
	if f.serper.Configured() {
		text, sources, err := f.serper.Search(ctx, query)
		if err != nil {
			f.logger.Warn("search provider failed, continuing without it",
				zap.Error(err))
			metrics.RecordWebFetch("serper", "error")
		} else if text != "" {
			metrics.RecordWebFetch("serper", "success")
			return Result{Text: text, Sources: sources}
		} else {
			metrics.RecordWebFetch("serper", "empty")
		}
	} else {
		metrics.RecordWebFetch("serper", "unconfigured")
	}

	text, sourceURL, err := f.ddg.InstantAnswer(ctx, query)
	if err != nil {
		f.logger.Warn("instant-answer provider failed, returning empty context",
			zap.Error(err))
		metrics.RecordWebFetch("duckduckgo", "error")
		return Result{}
	}

	metrics.RecordWebFetch("duckduckgo", "success")

	var sources []model.WebSource
	if sourceURL != "" {
		sources = []model.WebSource{{Link: sourceURL}}
	}
	return Result{Text: text, Sources: sources}
}
