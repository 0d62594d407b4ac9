package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewsLookup_LimitsToThreeHeadlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "key-123", q.Get("apikey"))
		require.Equal(t, "space", q.Get("q"))
		require.Equal(t, "en", q.Get("language"))
		require.Equal(t, "us", q.Get("country"))
		require.Equal(t, "0", q.Get("page"))
		fmt.Fprint(w, `{"results": [
			{"title": "one", "link": "https://example.com/1"},
			{"title": "two", "link": "https://example.com/2"},
			{"title": "three", "link": "https://example.com/3"},
			{"title": "four", "link": "https://example.com/4"},
			{"title": "five", "link": "https://example.com/5"}
		]}`)
	}))
	t.Cleanup(server.Close)

	svc := &NewsService{BaseURL: server.URL, APIKey: "key-123", HTTPClient: server.Client()}
	result := svc.Lookup(context.Background(), "space")

	require.Equal(t, "space", result["topic"])
	headlines, ok := result["headlines"].([]Result)
	require.True(t, ok)
	require.Len(t, headlines, 3)
	require.Equal(t, Result{"title": "one", "link": "https://example.com/1"}, headlines[0])
}

func TestNewsLookup_SkipsEmptyTitles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [
			{"title": "one", "link": "https://example.com/1"},
			{"link": "https://example.com/no-title"},
			{"title": "three", "link": "https://example.com/3"},
			{"title": "four", "link": "https://example.com/4"}
		]}`)
	}))
	t.Cleanup(server.Close)

	svc := &NewsService{BaseURL: server.URL, HTTPClient: server.Client()}
	result := svc.Lookup(context.Background(), "anything")

	// 与上游约定一致：先截前三条，再过滤空标题
	headlines, ok := result["headlines"].([]Result)
	require.True(t, ok)
	require.Len(t, headlines, 2)
	for _, h := range headlines {
		require.NotEmpty(t, h["title"])
	}
}

func TestNewsLookup_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": []}`)
	}))
	t.Cleanup(server.Close)

	svc := &NewsService{BaseURL: server.URL, HTTPClient: server.Client()}
	result := svc.Lookup(context.Background(), "nothing")
	require.Equal(t, "nothing", result["topic"])
	require.Empty(t, result["headlines"])
}

func TestNewsLookup_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	svc := &NewsService{BaseURL: server.URL, HTTPClient: server.Client()}
	result := svc.Lookup(context.Background(), "space")
	require.Contains(t, result["error"], "Failed to fetch news:")
}
