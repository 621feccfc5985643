// Package cosmic is a small client for the Cosmic headless content store
// REST API (v3). It covers the operations the storefront needs: find,
// find-one-by-slug, insert and update.
package cosmic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultAPIURL  = "https://api.cosmicjs.com/v3"
	DefaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of an error response is kept for messages.
	maxErrorBody = 2048
)

// Config identifies the bucket and credentials.
type Config struct {
	APIURL     string
	BucketSlug string
	ReadKey    string
	WriteKey   string
	Timeout    time.Duration
}

// Client talks to one content bucket. Safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	metrics *metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRegisterer registers request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) { c.metrics = newMetrics(reg) }
}

// NewClient creates a Client. BucketSlug and ReadKey are required.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BucketSlug == "" {
		return nil, Invalid("bucket_slug", "is required")
	}
	if cfg.ReadKey == "" {
		return nil, Invalid("read_key", "is required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = newMetrics(nil)
	}
	return c, nil
}

// --- Query ---

// Query selects objects of one type. Filters maps metadata field paths
// (e.g. "metadata.status") to an equality value or an In(...) membership.
type Query struct {
	Type    string
	Filters map[string]any
	Props   []string
	Depth   int
	Limit   int
}

// In builds a membership constraint for a Query filter.
func In[T any](values ...T) map[string]any {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return map[string]any{"$in": vs}
}

func (q Query) encode(readKey string) (url.Values, error) {
	if q.Type == "" {
		return nil, Invalid("type", "is required")
	}
	filter := make(map[string]any, len(q.Filters)+1)
	for k, v := range q.Filters {
		filter[k] = v
	}
	filter["type"] = q.Type

	raw, err := json.Marshal(filter)
	if err != nil {
		return nil, Invalid("query", err.Error())
	}

	params := url.Values{}
	params.Set("query", string(raw))
	params.Set("read_key", readKey)
	if len(q.Props) > 0 {
		params.Set("props", strings.Join(q.Props, ","))
	}
	if q.Depth > 0 {
		params.Set("depth", strconv.Itoa(q.Depth))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params, nil
}

// --- Operations ---

type listResponse struct {
	Objects json.RawMessage `json:"objects"`
	Total   int             `json:"total"`
}

type objectResponse struct {
	Object json.RawMessage `json:"object"`
}

// Find decodes every object matching q into out, which must be a pointer
// to a slice. Zero matches yield ErrNotFound.
func (c *Client) Find(ctx context.Context, q Query, out any) error {
	const op = "find"
	params, err := q.encode(c.cfg.ReadKey)
	if err != nil {
		return err
	}

	var resp listResponse
	if err := c.do(ctx, op, q.Type, http.MethodGet, c.objectsURL()+"?"+params.Encode(), nil, false, &resp); err != nil {
		return err
	}
	var objects []json.RawMessage
	if len(resp.Objects) > 0 {
		if err := json.Unmarshal(resp.Objects, &objects); err != nil {
			return &RetrievalError{Op: op, Type: q.Type, Err: fmt.Errorf("decode objects: %w", err)}
		}
	}
	if len(objects) == 0 {
		return ErrNotFound
	}
	if err := json.Unmarshal(resp.Objects, out); err != nil {
		return &RetrievalError{Op: op, Type: q.Type, Err: fmt.Errorf("decode objects: %w", err)}
	}
	return nil
}

// FindOne decodes the object of the given type and slug into out.
func (c *Client) FindOne(ctx context.Context, objectType, slug string, depth int, out any) error {
	const op = "find_one"
	if slug == "" {
		return Invalid("slug", "is required")
	}
	params, err := Query{
		Type:    objectType,
		Filters: map[string]any{"slug": slug},
		Depth:   depth,
		Limit:   1,
	}.encode(c.cfg.ReadKey)
	if err != nil {
		return err
	}

	var resp listResponse
	if err := c.do(ctx, op, objectType, http.MethodGet, c.objectsURL()+"?"+params.Encode(), nil, false, &resp); err != nil {
		return err
	}

	var objects []json.RawMessage
	if len(resp.Objects) > 0 {
		if err := json.Unmarshal(resp.Objects, &objects); err != nil {
			return &RetrievalError{Op: op, Type: objectType, Err: fmt.Errorf("decode objects: %w", err)}
		}
	}
	if len(objects) == 0 {
		return ErrNotFound
	}
	if err := json.Unmarshal(objects[0], out); err != nil {
		return &RetrievalError{Op: op, Type: objectType, Err: fmt.Errorf("decode object: %w", err)}
	}
	return nil
}

// InsertOne creates obj (which must carry "type", "title" and "metadata")
// and decodes the stored object into out. out may be nil.
func (c *Client) InsertOne(ctx context.Context, objectType string, obj any, out any) error {
	const op = "insert_one"
	if c.cfg.WriteKey == "" {
		return ErrWriteKeyMissing
	}
	var resp objectResponse
	if err := c.do(ctx, op, objectType, http.MethodPost, c.objectsURL(), obj, true, &resp); err != nil {
		return err
	}
	return decodeObject(op, objectType, resp, out)
}

// UpdateOne applies a partial update to the object with the given ID and
// decodes the result into out. out may be nil.
func (c *Client) UpdateOne(ctx context.Context, id string, patch any, out any) error {
	const op = "update_one"
	if c.cfg.WriteKey == "" {
		return ErrWriteKeyMissing
	}
	if id == "" {
		return Invalid("id", "is required")
	}
	var resp objectResponse
	if err := c.do(ctx, op, "", http.MethodPatch, c.objectsURL()+"/"+url.PathEscape(id), patch, true, &resp); err != nil {
		return err
	}
	return decodeObject(op, "", resp, out)
}

func decodeObject(op, objectType string, resp objectResponse, out any) error {
	if out == nil {
		return nil
	}
	if len(resp.Object) == 0 {
		return &RetrievalError{Op: op, Type: objectType, Err: errors.New("empty object in response")}
	}
	if err := json.Unmarshal(resp.Object, out); err != nil {
		return &RetrievalError{Op: op, Type: objectType, Err: fmt.Errorf("decode object: %w", err)}
	}
	return nil
}

// --- Transport ---

func (c *Client) objectsURL() string {
	return c.cfg.APIURL + "/buckets/" + url.PathEscape(c.cfg.BucketSlug) + "/objects"
}

func (c *Client) do(ctx context.Context, op, objectType, method, target string, body any, write bool, out any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.observe(op, objectType, err, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		b, merr := json.Marshal(body)
		if merr != nil {
			return Invalid("body", merr.Error())
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &RetrievalError{Op: op, Type: objectType, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if write {
		req.Header.Set("Authorization", "Bearer "+c.cfg.WriteKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RetrievalError{Op: op, Type: objectType, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, objectType, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RetrievalError{Op: op, Type: objectType, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError maps a non-2xx response onto the error taxonomy.
func statusError(op, objectType string, resp *http.Response) error {
	msg := readErrorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Reason: msg}
	}
	return &RetrievalError{Op: op, Type: objectType, StatusCode: resp.StatusCode, Err: errors.New(msg)}
}

func readErrorMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(b, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if s := strings.TrimSpace(string(b)); s != "" {
		return s
	}
	return "unexpected response"
}
