package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerewitdashifts/chat-platform/pkg/logger"
)

func serperServer(t *testing.T, organic []serperOrganic) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NotEmpty(t, r.Header.Get("X-API-KEY"))
		json.NewEncoder(w).Encode(serperResponse{Organic: organic})
	}))
}

func ddgServer(t *testing.T, resp instantAnswerResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "json", r.URL.Query().Get("format"))
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestFetcher(serperURL, ddgURL, apiKey string) *Fetcher {
	serper := NewSerperClient(apiKey, nil)
	if serperURL != "" {
		serper.baseURL = serperURL
	}
	ddg := NewDuckDuckGoClient(nil)
	if ddgURL != "" {
		ddg.baseURL = ddgURL
	}
	return NewFetcher(serper, ddg, logger.NewNop())
}

func TestFetchFreshFact_PrimaryPath(t *testing.T) {
	srv := serperServer(t, []serperOrganic{
		{Title: "A", Link: "https://a.example", Snippet: "alpha"},
		{Title: "B", Link: "https://b.example", Snippet: "beta"},
	})
	defer srv.Close()

	f := newTestFetcher(srv.URL, "", "key")
	got := f.FetchFreshFact(context.Background(), "alpha beta")

	assert.Equal(t, "alpha\n\nbeta", got.Text)
	require.Len(t, got.Sources, 2)
	assert.Equal(t, "https://a.example", got.Sources[0].Link)
	assert.Equal(t, "A", got.Sources[0].Title)
}

func TestFetchFreshFact_CapsResultsAndChars(t *testing.T) {
	long := strings.Repeat("x", 700)
	organic := make([]serperOrganic, 8)
	for i := range organic {
		organic[i] = serperOrganic{Title: "t", Link: "https://l.example", Snippet: long}
	}
	srv := serperServer(t, organic)
	defer srv.Close()

	f := newTestFetcher(srv.URL, "", "key")
	got := f.FetchFreshFact(context.Background(), "query")

	assert.LessOrEqual(t, utf8.RuneCountInString(got.Text), 2500)
	assert.LessOrEqual(t, len(got.Sources), 5)
}

func TestFetchFreshFact_UnconfiguredFallsBack(t *testing.T) {
	ddg := ddgServer(t, instantAnswerResponse{
		Answer:      "42",
		AbstractURL: "https://answers.example",
	})
	defer ddg.Close()

	f := newTestFetcher("", ddg.URL, "")
	got := f.FetchFreshFact(context.Background(), "meaning of life")

	assert.Equal(t, "42", got.Text)
	require.Len(t, got.Sources, 1)
	assert.Equal(t, "https://answers.example", got.Sources[0].Link)
}

func TestFetchFreshFact_FallbackAbstractText(t *testing.T) {
	ddg := ddgServer(t, instantAnswerResponse{AbstractText: "an abstract"})
	defer ddg.Close()

	f := newTestFetcher("", ddg.URL, "")
	got := f.FetchFreshFact(context.Background(), "query")

	assert.Equal(t, "an abstract", got.Text)
	assert.Empty(t, got.Sources, "no source URL means no sources")
}

func TestFetchFreshFact_EmptyPrimaryFallsBack(t *testing.T) {
	srv := serperServer(t, nil)
	defer srv.Close()
	ddg := ddgServer(t, instantAnswerResponse{Answer: "fallback answer"})
	defer ddg.Close()

	f := newTestFetcher(srv.URL, ddg.URL, "key")
	got := f.FetchFreshFact(context.Background(), "query")

	assert.Equal(t, "fallback answer", got.Text)
}

func TestFetchFreshFact_AllFailuresNormalize(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer broken.Close()

	f := newTestFetcher(broken.URL, broken.URL, "key")
	got := f.FetchFreshFact(context.Background(), "query")

	assert.Equal(t, Result{}, got)
}

func TestFetchFreshFact_MalformedResponsesNormalize(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer garbage.Close()

	f := newTestFetcher(garbage.URL, garbage.URL, "key")
	got := f.FetchFreshFact(context.Background(), "query")

	assert.Equal(t, Result{}, got)
}
