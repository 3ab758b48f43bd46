package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/agenthands/egograph/internal/cache"
	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/errs"
)

const (
	searchPath = "/dane/krs_osoby.json"
	detailPath = "/dane/krs_osoby/%s.json"

	// error bodies are truncated to this many bytes in messages
	maxErrorBody = 512
)

// Client talks to the KRS people endpoints of the mojepanstwo API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      cache.Cache

	validate *validator.Validate
}

// NewClient returns a client for baseURL. timeout 0 means requests only end
// when the server answers or ctx is cancelled.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		validate:   newValidator(),
	}
}

// newValidator reports field paths with their JSON names, which is what
// shows up in the registry payload.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Search runs one free-text person query and numbers the hits from 1.
func (c *Client) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	const op = "registry.Search"

	params := url.Values{}
	params.Set("conditions[q]", query)
	endpoint := c.BaseURL + searchPath + "?" + params.Encode()

	key := "search:" + query
	body, cached, err := c.get(ctx, key, endpoint)
	if err != nil {
		return nil, errs.Search(op, err)
	}

	var resp model.SearchResponse
	if err := c.decode(body, "search", &resp); err != nil {
		return nil, errs.Search(op, err)
	}
	if !cached {
		c.remember(ctx, key, body)
	}

	candidates := resp.Candidates()
	log.Debug().Str("query", query).Int("candidates", len(candidates)).Msg("registry search done")
	return candidates, nil
}

// Fetch downloads the graph layer of one person.
func (c *Client) Fetch(ctx context.Context, id string) (*model.Detail, error) {
	const op = "registry.Fetch"

	if id == "" {
		return nil, errs.Fetch(op, errors.New("empty person id"))
	}

	params := url.Values{}
	params.Set("layers[]", "graph")
	endpoint := c.BaseURL + fmt.Sprintf(detailPath, url.PathEscape(id)) + "?" + params.Encode()

	key := "detail:" + id
	body, cached, err := c.get(ctx, key, endpoint)
	if err != nil {
		return nil, errs.Fetch(op, err)
	}

	var detail model.Detail
	if err := c.decode(body, "detail", &detail); err != nil {
		return nil, errs.Fetch(op, err)
	}
	if !cached {
		c.remember(ctx, key, body)
	}

	log.Debug().
		Str("id", id).
		Int("nodes", len(detail.Layers.Graph.Nodes)).
		Int("relationships", len(detail.Layers.Graph.Relationships)).
		Msg("registry detail fetched")
	return &detail, nil
}

func (c *Client) get(ctx context.Context, cacheKey, endpoint string) ([]byte, bool, error) {
	if c.Cache != nil {
		data, ok, err := c.Cache.Get(ctx, cacheKey)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("cache read failed, asking the registry")
		} else if ok {
			log.Debug().Str("key", cacheKey).Msg("cache hit")
			return data, true, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, false, fmt.Errorf("registry returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return body, false, nil
}

// remember stores a response that decoded cleanly. Cache failures only cost
// a later registry round trip, so they are logged and dropped.
func (c *Client) remember(ctx context.Context, key string, body []byte) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.Set(ctx, key, body); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// decode unmarshals body into v and checks the fields the pipeline relies on.
// Missing fields come back as *errs.SchemaError.
func (c *Client) decode(body []byte, schema string, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &errs.SchemaError{Schema: schema, Field: typeErr.Field, Rule: "type " + typeErr.Value}
		}
		return fmt.Errorf("failed to decode %s response: %w", schema, err)
	}

	if c.validate == nil {
		c.validate = newValidator()
	}
	if err := c.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &errs.SchemaError{Schema: schema, Field: fe.Namespace(), Rule: fe.Tag()}
		}
		return fmt.Errorf("failed to validate %s response: %w", schema, err)
	}
	return nil
}
