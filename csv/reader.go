// Package csv loads CSV sources into frames. A source is either a local
// file path or an http(s) URL; the loader is agnostic to which, and callers
// only see the resulting frame or a typed error.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/asaidimu/go-tabula/core/frame"
	"go.uber.org/zap"
)

// SourceError reports that a source could not be opened or fetched.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q unreachable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ParseError reports that a source was reachable but held malformed data.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reader loads CSV data into frames from files or URLs.
type Reader struct {
	client *http.Client
	logger *zap.Logger
}

// NewReader creates a Reader. A nil logger falls back to a no-op logger; a
// nil client falls back to http.DefaultClient.
func NewReader(client *http.Client, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Reader{client: client, logger: logger}
}

// Load reads the CSV at source into a frame. The first record is the
// header; column types are inferred from the cells.
func (r *Reader) Load(ctx context.Context, source string) (*frame.Frame, error) {
	rc, err := r.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	f, err := Parse(rc)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	nrow, ncol := f.Dims()
	r.logger.Info("Loaded CSV source",
		zap.String("source", source),
		zap.Int("rows", nrow),
		zap.Int("cols", ncol))
	return f, nil
}

// open returns a reader over the source's bytes, fetching over HTTP for
// URLs and opening the file otherwise.
func (r *Reader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, &SourceError{Source: source, Err: err}
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return nil, &SourceError{Source: source, Err: err}
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &SourceError{Source: source, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		}
		return resp.Body, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, &SourceError{Source: source, Err: err}
	}
	return f, nil
}

// Parse reads CSV records from rd and builds a frame.
func Parse(rd io.Reader) (*frame.Frame, error) {
	records, err := stdcsv.NewReader(rd).ReadAll()
	if err != nil {
		return nil, err
	}
	return frame.LoadRecords(records)
}
