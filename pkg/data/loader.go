package data

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Acquisition failures. Every error returned by a Source wraps ErrAcquisition.
var (
	ErrAcquisition = errors.New("data acquisition failed")
	ErrBadStatus   = errors.New("bad status code")
	ErrContentType = errors.New("doesn't look like printable content")
)

// DefaultContentTypes are the media types the UCI archive serves the data set with.
var DefaultContentTypes = []string{"application/x-httpd-php", "text/plain", "text/html"}

// Source supplies the raw text of the data set.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

type acquisitionError struct {
	cause error
}

func (e *acquisitionError) Error() string { return e.cause.Error() }
func (e *acquisitionError) Unwrap() error { return e.cause }
func (e *acquisitionError) Is(target error) bool {
	return target == ErrAcquisition
}

func acquisition(err error) error {
	if err == nil {
		return nil
	}
	return &acquisitionError{cause: err}
}

// HTTPSource downloads the data set with a single GET. There are no retries.
type HTTPSource struct {
	URL          string
	ContentTypes []string
	Client       *http.Client
	Logger       *zap.Logger
}

// NewHTTPSource returns a source for url accepting the given media types.
// An empty allow list falls back to DefaultContentTypes.
func NewHTTPSource(url string, contentTypes []string, client *http.Client, logger *zap.Logger) *HTTPSource {
	if len(contentTypes) == 0 {
		contentTypes = DefaultContentTypes
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSource{URL: url, ContentTypes: contentTypes, Client: client, Logger: logger}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", acquisition(errors.Wrap(err, "build request"))
	}

	s.Logger.Debug("Fetching data set", zap.String("url", s.URL))
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", acquisition(errors.Wrapf(err, "get %s", s.URL))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", acquisition(errors.Wrapf(ErrBadStatus, "%d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if !s.allowed(contentType) {
		return "", acquisition(errors.Wrapf(ErrContentType, "Content-Type is %q", contentType))
	}

	body, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		return "", acquisition(errors.Wrap(err, "decode body"))
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", acquisition(errors.Wrap(err, "read body"))
	}
	s.Logger.Debug("Fetched data set",
		zap.String("content_type", contentType),
		zap.Int("bytes", len(raw)))
	return string(raw), nil
}

// allowed compares media types only, so "text/plain; charset=utf-8" matches "text/plain".
func (s *HTTPSource) allowed(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, t := range s.ContentTypes {
		if strings.EqualFold(mediaType, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

// FileSource reads the data set from a local copy, e.g. a downloaded adult.data.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", acquisition(err)
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return "", acquisition(errors.Wrap(err, "read data file"))
	}
	return string(raw), nil
}

// StringSource serves text that is already in memory.
type StringSource string

// Fetch implements Source.
func (s StringSource) Fetch(context.Context) (string, error) {
	return string(s), nil
}
