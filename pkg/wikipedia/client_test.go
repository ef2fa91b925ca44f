package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchReturnsFirstHit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/w/api.php", r.URL.Path)
		assert.Equal(t, "Albert Einstein", r.URL.Query().Get("srsearch"))
		_, _ = w.Write([]byte(`{"query":{"search":[{"title":"Albert Einstein","snippet":"was a physicist"},{"title":"Einstein family","snippet":"other"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.Search(context.Background(), "Albert Einstein", "de")
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, "was a physicist", result.Summary)
	assert.Equal(t, srv.URL+"/wiki/Albert_Einstein", result.URL)
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.Search(context.Background(), "xyzzy", "de")
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.URL)
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Search(context.Background(), "anything", "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestPerLanguageEndpoint(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, "https://de.wikipedia.org/w/api.php", client.endpoint("de"))
	assert.Equal(t, "https://en.wikipedia.org/wiki/Main_Page", client.pageURL("en", "Main Page"))
}
