// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sefaria

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/clean-bible/pkg/types"
)

const sampleChapterJSON = `{
  "ref": "Genesis 1",
  "he": ["<b>בְּרֵאשִׁ֖ית</b> בָּרָ֣א", "וְהָאָ֗רֶץ   הָיְתָ֥ה"],
  "text": ["In the <i>beginning</i>\n God created"]
}`

const sampleBookJSON = `{
  "ref": "Genesis 1",
  "length": 50,
  "text": ["v1", "v2", "v3"]
}`

func testConfig(baseURL string) types.HTTPConfig {
	return types.HTTPConfig{
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
		UserAgent: "clean-bible-test/0.1",
	}
}

// newChapterServer serves body with status for every request and records
// the last request URL.
func newChapterServer(t *testing.T, status int, body string, lastURL *string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastURL != nil {
			*lastURL = r.URL.RequestURI()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchChapterModes(t *testing.T) {
	tests := []struct {
		name       string
		mode       types.VersionMode
		wantSource types.VerseCollection
		wantTarget types.VerseCollection
		wantQuery  string
	}{
		{
			name:       "source only",
			mode:       types.ModeSource,
			wantSource: types.VerseCollection{"בְּרֵאשִׁ֖ית בָּרָ֣א", "וְהָאָ֗רֶץ הָיְתָ֥ה"},
			wantQuery:  "/texts/Genesis.1",
		},
		{
			name:       "target only",
			mode:       types.ModeTarget,
			wantTarget: types.VerseCollection{"In the beginning God created"},
			wantQuery:  "/texts/Genesis.1",
		},
		{
			name:       "side by side",
			mode:       types.ModeBoth,
			wantSource: types.VerseCollection{"בְּרֵאשִׁ֖ית בָּרָ֣א", "וְהָאָ֗רֶץ הָיְתָ֥ה"},
			wantTarget: types.VerseCollection{"In the beginning God created"},
			wantQuery:  "/texts/Genesis.1?version=he",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastURL string
			ts := newChapterServer(t, http.StatusOK, sampleChapterJSON, &lastURL)
			c := NewClient(testConfig(ts.URL), nil)

			got, err := c.FetchChapter(context.Background(), "Genesis", 1, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantTarget, got.Target)
			assert.Equal(t, tt.wantQuery, lastURL)
		})
	}
}

func TestFetchChapterUnequalLengths(t *testing.T) {
	ts := newChapterServer(t, http.StatusOK, `{"he": ["א", "ב"], "text": ["A"]}`, nil)
	c := NewClient(testConfig(ts.URL), nil)

	got, err := c.FetchChapter(context.Background(), "Genesis", 1, types.ModeBoth)
	require.NoError(t, err)
	assert.Len(t, got.Source, 2)
	assert.Len(t, got.Target, 1)
}

func TestFetchChapterMissingKeyIsEmpty(t *testing.T) {
	ts := newChapterServer(t, http.StatusOK, `{"he": ["א"]}`, nil)
	c := NewClient(testConfig(ts.URL), nil)

	got, err := c.FetchChapter(context.Background(), "Genesis", 1, types.ModeBoth)
	require.NoError(t, err)
	assert.Equal(t, types.VerseCollection{"א"}, got.Source)
	assert.Empty(t, got.Target)
}

func TestFetchChapterVerseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want types.VerseCollection
	}{
		{"bare string", `{"text": "<b>One</b> verse"}`, types.VerseCollection{"One verse"}},
		{"null entry", `{"text": ["a", null, "c"]}`, types.VerseCollection{"a", "", "c"}},
		{"nested arrays", `{"text": [["a", "b"], ["c"]]}`, types.VerseCollection{"a", "b", "c"}},
		{"null field", `{"text": null}`, types.VerseCollection{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newChapterServer(t, http.StatusOK, tt.body, nil)
			c := NewClient(testConfig(ts.URL), nil)

			got, err := c.FetchChapter(context.Background(), "Genesis", 1, types.ModeTarget)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Target)
		})
	}
}

func TestFetchChapterIgnoresUnusedField(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mode       types.VersionMode
		wantSource types.VerseCollection
		wantTarget types.VerseCollection
	}{
		{
			name:       "target with malformed he",
			body:       `{"he": {"unexpected": 1}, "text": ["A"]}`,
			mode:       types.ModeTarget,
			wantTarget: types.VerseCollection{"A"},
		},
		{
			name:       "source with malformed text",
			body:       `{"he": ["א"], "text": 42}`,
			mode:       types.ModeSource,
			wantSource: types.VerseCollection{"א"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newChapterServer(t, http.StatusOK, tt.body, nil)
			c := NewClient(testConfig(ts.URL), nil)

			got, err := c.FetchChapter(context.Background(), "Genesis", 1, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantTarget, got.Target)
		})
	}
}

func TestFetchChapterMalformedUsedField(t *testing.T) {
	ts := newChapterServer(t, http.StatusOK, `{"he": {"unexpected": 1}, "text": ["A"]}`, nil)
	c := NewClient(testConfig(ts.URL), nil)

	got, err := c.FetchChapter(context.Background(), "Genesis", 1, types.ModeBoth)
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))
	assert.Contains(t, err.Error(), "he:")
	assert.True(t, got.Empty())
}

func TestFetchChapterFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   Kind
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, `oops`, KindRemoteStatus, http.StatusInternalServerError},
		{"not found", http.StatusNotFound, `{}`, KindRemoteStatus, http.StatusNotFound},
		{"error document", http.StatusOK, `{"error": "Could not find title in reference: Foo 1"}`, KindRemoteStatus, http.StatusOK},
		{"invalid json", http.StatusOK, `<html>not json</html>`, KindParse, 0},
		{"wrong shape", http.StatusOK, `{"he": 42}`, KindParse, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newChapterServer(t, tt.status, tt.body, nil)
			c := NewClient(testConfig(ts.URL), nil)

			got, err := c.FetchChapter(context.Background(), "Genesis", 7, types.ModeBoth)
			require.Error(t, err)
			assert.True(t, got.Empty())

			var fe *Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantKind, fe.Kind)
			assert.Equal(t, tt.wantStatus, fe.Status)
			assert.Equal(t, "Genesis", fe.Book)
			assert.Equal(t, 7, fe.Chapter)
			assert.Contains(t, err.Error(), "Genesis 7")
		})
	}
}

func TestFetchChapterTransportError(t *testing.T) {
	c := NewClient(testConfig("http://127.0.0.1:1"), nil)

	_, err := c.FetchChapter(context.Background(), "Genesis", 1, types.ModeSource)
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestFetchChapterTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.Timeout = 50 * time.Millisecond
	c := NewClient(cfg, nil)

	_, err := c.FetchChapter(context.Background(), "Genesis", 1, types.ModeSource)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestFetchChapterRejectsBadArguments(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()
	c := NewClient(testConfig(ts.URL), nil)

	// Argument errors are plain errors, not remote failures.
	_, err := c.FetchChapter(context.Background(), "Genesis", 0, types.ModeSource)
	require.Error(t, err)
	assert.Equal(t, Kind(""), KindOf(err))
	_, err = c.FetchChapter(context.Background(), "Genesis", 1, types.VersionMode("fr"))
	require.Error(t, err)
	assert.Equal(t, Kind(""), KindOf(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFetchChapterEscapesBookName(t *testing.T) {
	var rawPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		fmt.Fprint(w, `{"he": [], "text": []}`)
	}))
	defer ts.Close()
	c := NewClient(testConfig(ts.URL+"/"), nil)

	_, err := c.FetchChapter(context.Background(), "I Samuel", 3, types.ModeTarget)
	require.NoError(t, err)
	assert.Equal(t, "/texts/I%20Samuel.3", rawPath)
}

func TestFetchChapterSendsUserAgent(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()
	c := NewClient(testConfig(ts.URL), nil)

	_, err := c.FetchChapter(context.Background(), "Genesis", 1, types.ModeSource)
	require.NoError(t, err)
	assert.Equal(t, "clean-bible-test/0.1", ua)
}

func TestMetadata(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		want      int
		wantErr   bool
		wantCause Kind
	}{
		{"length field", http.StatusOK, sampleBookJSON, 50, false, ""},
		{"falls back to text size", http.StatusOK, `{"text": [["a"], ["b"], ["c"]]}`, 3, false, ""},
		{"zero chapters", http.StatusOK, `{"text": []}`, 0, true, ""},
		{"no fields", http.StatusOK, `{}`, 0, true, ""},
		{"error document", http.StatusOK, `{"error": "unknown book"}`, 0, true, KindRemoteStatus},
		{"server error", http.StatusBadGateway, `bad gateway`, 0, true, KindRemoteStatus},
		{"invalid json", http.StatusOK, `nope`, 0, true, KindParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastURL string
			ts := newChapterServer(t, tt.status, tt.body, &lastURL)
			c := NewClient(testConfig(ts.URL), nil)

			meta, err := c.Metadata(context.Background(), "Genesis")
			assert.Equal(t, "/texts/Genesis", lastURL)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, types.BookMetadata{Book: "Genesis", Chapters: tt.want}, meta)
				return
			}
			require.Error(t, err)
			assert.Equal(t, KindMetadataUnavailable, KindOf(err))
			if tt.wantCause != "" {
				var fe *Error
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, tt.wantCause, KindOf(fe.Err))
			}
		})
	}
}

func TestMetadataTransportError(t *testing.T) {
	c := NewClient(testConfig("http://127.0.0.1:1"), nil)

	_, err := c.Metadata(context.Background(), "Genesis")
	require.Error(t, err)
	assert.Equal(t, KindMetadataUnavailable, KindOf(err))

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindTransport, KindOf(fe.Err))
}

func TestRateLimiterSpacesRequests(t *testing.T) {
	ts := newChapterServer(t, http.StatusOK, `{}`, nil)
	cfg := testConfig(ts.URL)
	cfg.RequestsPerSecond = 20
	c := NewClient(cfg, nil)

	start := time.Now()
	for i := 1; i <= 3; i++ {
		_, err := c.FetchChapter(context.Background(), "Genesis", i, types.ModeSource)
		require.NoError(t, err)
	}
	// Burst of one: the second and third requests each wait ~50ms.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimiterHonoursContext(t *testing.T) {
	ts := newChapterServer(t, http.StatusOK, `{}`, nil)
	cfg := testConfig(ts.URL)
	cfg.RequestsPerSecond = 0.01
	c := NewClient(cfg, nil)

	_, err := c.FetchChapter(context.Background(), "Genesis", 1, types.ModeSource)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.FetchChapter(ctx, "Genesis", 2, types.ModeSource)
	require.Error(t, err)
	assert.NotEmpty(t, KindOf(err))
}
