package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Source fetches the raw dataset payload.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.Path)
}

func (s FileSource) String() string {
	return s.Path
}

// HTTPSource downloads the dataset with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

func (s HTTPSource) String() string {
	return s.URL
}

// SourceFor picks an HTTP source for http(s) URLs and a file source otherwise.
func SourceFor(ref string) Source {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return HTTPSource{URL: ref}
	}
	return FileSource{Path: ref}
}

// Load fetches the dataset once and parses it. A cancelled or expired ctx
// surfaces as ErrFetch.
func Load(ctx context.Context, src Source, log logrus.FieldLogger) (*Dataset, error) {
	start := time.Now()
	log = log.WithField("source", src.String())

	rc, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrFetch, src, err)
	}
	defer rc.Close()

	ds, err := Parse(ctxReader{ctx: ctx, r: rc}, log)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"records":  ds.Len(),
		"skipped":  len(ds.skipped),
		"duration": time.Since(start),
	}).Info("dataset loaded")
	return ds, nil
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
