package repo

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/contracts"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

// NewFeedSource picks a source for the location: http(s) URLs are fetched,
// anything else is read as a local file path.
func NewFeedSource(location string, timeout time.Duration) contracts.FeedSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPFeedSource(location, &http.Client{Timeout: timeout})
	}
	return NewFileFeedSource(location)
}

// FileFeedSource reads a line-delimited feed from disk.
type FileFeedSource struct {
	path string
}

// NewFileFeedSource creates a FileFeedSource.
func NewFileFeedSource(path string) *FileFeedSource {
	return &FileFeedSource{path: path}
}

// Open opens the file for reading.
func (s *FileFeedSource) Open(ctx context.Context) (contracts.FeedReader, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	return newLineReader(ctx, f), nil
}

// Location returns the file path.
func (s *FileFeedSource) Location() string {
	return s.path
}

// HTTPFeedSource downloads a line-delimited feed and streams it while decoding.
type HTTPFeedSource struct {
	url    string
	client *http.Client
}

// NewHTTPFeedSource creates an HTTPFeedSource. A nil client uses http.DefaultClient.
func NewHTTPFeedSource(url string, client *http.Client) *HTTPFeedSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFeedSource{url: url, client: client}
}

// Open issues the GET request and returns a reader over the response body.
func (s *HTTPFeedSource) Open(ctx context.Context) (contracts.FeedReader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch feed: unexpected status %s", resp.Status)
	}

	return newLineReader(ctx, resp.Body), nil
}

// Location returns the feed URL.
func (s *HTTPFeedSource) Location() string {
	return s.url
}

// lineReader decodes one RawProduct per non-blank line.
type lineReader struct {
	ctx    context.Context
	body   io.ReadCloser
	reader *bufio.Reader
	line   int
}

func newLineReader(ctx context.Context, body io.ReadCloser) *lineReader {
	return &lineReader{
		ctx:    ctx,
		body:   body,
		reader: bufio.NewReaderSize(body, 1<<20),
	}
}

// Next returns the next decoded record or iterator.Done at end of stream.
func (r *lineReader) Next() (*domain.RawProduct, error) {
	for {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}

		// Lines can be far longer than bufio.Scanner's default token size.
		data, err := r.reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read feed line %d: %w", r.line+1, err)
		}
		if len(data) == 0 && errors.Is(err, io.EOF) {
			return nil, iterator.Done
		}
		r.line++

		data = bytes.TrimSpace(data)
		if len(data) == 0 {
			if errors.Is(err, io.EOF) {
				return nil, iterator.Done
			}
			continue
		}

		raw, decodeErr := domain.DecodeRawProduct(data)
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode feed line %d: %w", r.line, decodeErr)
		}
		return raw, nil
	}
}

// Close closes the underlying stream.
func (r *lineReader) Close() error {
	return r.body.Close()
}
