// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sefaria fetches chapter text and book metadata from the Sefaria
// texts API and returns cleaned verse collections.
package sefaria

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/clean-bible/internal/clean"
	"github.com/pdiddy/clean-bible/internal/httputil"
	"github.com/pdiddy/clean-bible/pkg/types"
)

// sourceVersionParam is sent in side-by-side mode so the response carries
// the Hebrew text alongside the default English translation.
const sourceVersionParam = "he"

// Client talks to one Sefaria API base URL. It is safe for sequential use
// by a single caller; the pipeline never shares one across goroutines.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	log       *slog.Logger
}

// NewClient builds a Client from cfg. The HTTP client carries cfg.Timeout
// so no request can hang indefinitely. A nil logger discards diagnostics.
func NewClient(cfg types.HTTPConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		log:       logger.With("component", "sefaria"),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// textsResponse holds the fields of a chapter-level texts response.
// "he" is the Hebrew source, "text" the English translation. The verse
// fields stay raw so only the ones the mode needs are decoded.
type textsResponse struct {
	Error string          `json:"error"`
	He    json.RawMessage `json:"he"`
	Text  json.RawMessage `json:"text"`
}

// indexResponse holds the fields of a book-level texts response used to
// count chapters. Length is the number of top-level sections when the API
// reports it; otherwise the size of Text stands in.
type indexResponse struct {
	Error  string            `json:"error"`
	Length int               `json:"length"`
	Text   []json.RawMessage `json:"text"`
}

// FetchChapter downloads one chapter of book and returns its cleaned
// verses. ModeSource fills only Source, ModeTarget only Target, and
// ModeBoth fills both from whichever fields the response carries. A field
// the mode does not use is never decoded. A chapter below 1 or an unknown
// mode is rejected with a plain error before any request; every other
// failure is an *Error and comes with an empty result. There are no
// retries.
func (c *Client) FetchChapter(ctx context.Context, book string, chapter int, mode types.VersionMode) (types.BilingualResult, error) {
	if chapter < 1 {
		return types.BilingualResult{}, fmt.Errorf("invalid chapter %d: must be 1 or greater", chapter)
	}
	if _, err := types.ParseVersionMode(string(mode)); err != nil {
		return types.BilingualResult{}, err
	}

	body, err := c.get(ctx, c.chapterURL(book, chapter, mode))
	if err != nil {
		return types.BilingualResult{}, classify(err, book, chapter)
	}

	var resp textsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.BilingualResult{}, &Error{Kind: KindParse, Book: book, Chapter: chapter, Err: err}
	}
	if resp.Error != "" {
		return types.BilingualResult{}, &Error{
			Kind:    KindRemoteStatus,
			Book:    book,
			Chapter: chapter,
			Status:  http.StatusOK,
			Err:     errors.New(resp.Error),
		}
	}

	var result types.BilingualResult
	if mode.WantsSource() {
		verses, err := decodeVerses(resp.He)
		if err != nil {
			return types.BilingualResult{}, &Error{Kind: KindParse, Book: book, Chapter: chapter, Err: fmt.Errorf("he: %w", err)}
		}
		result.Source = clean.CleanAll(verses)
	}
	if mode.WantsTarget() {
		verses, err := decodeVerses(resp.Text)
		if err != nil {
			return types.BilingualResult{}, &Error{Kind: KindParse, Book: book, Chapter: chapter, Err: fmt.Errorf("text: %w", err)}
		}
		result.Target = clean.CleanAll(verses)
	}
	c.log.Debug("chapter fetched", "book", book, "chapter", chapter,
		"source_verses", len(result.Source), "target_verses", len(result.Target))
	return result, nil
}

// Metadata requests the book-level texts document and derives the chapter
// count from it. The count is not cached. Failures, including a count of
// zero, are reported as KindMetadataUnavailable with the cause attached.
func (c *Client) Metadata(ctx context.Context, book string) (types.BookMetadata, error) {
	unavailable := func(cause error) (types.BookMetadata, error) {
		return types.BookMetadata{}, &Error{Kind: KindMetadataUnavailable, Book: book, Err: cause}
	}

	body, err := c.get(ctx, c.bookURL(book))
	if err != nil {
		return unavailable(classify(err, book, 0))
	}

	var resp indexResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return unavailable(&Error{Kind: KindParse, Book: book, Err: err})
	}
	if resp.Error != "" {
		return unavailable(&Error{Kind: KindRemoteStatus, Book: book, Status: http.StatusOK, Err: errors.New(resp.Error)})
	}

	count := resp.Length
	if count <= 0 {
		count = len(resp.Text)
	}
	if count <= 0 {
		return unavailable(errors.New("response lists no chapters"))
	}
	return types.BookMetadata{Book: book, Chapters: count}, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	c.log.Debug("GET", "url", u)
	body, err := httputil.Get(ctx, c.http, u, c.userAgent)
	if err != nil {
		c.log.Debug("request failed", "url", u, "error", err)
	}
	return body, err
}

func (c *Client) bookURL(book string) string {
	return c.baseURL + "/texts/" + url.PathEscape(book)
}

func (c *Client) chapterURL(book string, chapter int, mode types.VersionMode) string {
	u := c.bookURL(book) + "." + strconv.Itoa(chapter)
	if mode == types.ModeBoth {
		u += "?" + url.Values{"version": {sourceVersionParam}}.Encode()
	}
	return u
}

// classify maps an error from the HTTP layer onto a failure kind.
func classify(err error, book string, chapter int) *Error {
	e := &Error{Book: book, Chapter: chapter, Err: err}
	var se *httputil.StatusError
	switch {
	case errors.As(err, &se):
		e.Kind = KindRemoteStatus
		e.Status = se.StatusCode
	case httputil.IsTimeout(err):
		e.Kind = KindTimeout
	default:
		e.Kind = KindTransport
	}
	return e
}
