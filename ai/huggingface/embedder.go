package huggingface

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/poiesic/moodshelf/ai"
)

// maxErrorBody caps how much of an error response is quoted in errors.
const maxErrorBody = 512

// Embedder implements ai.Embedder against the Hugging Face inference API.
type Embedder struct {
	url    string
	token  string
	client *http.Client
	logger *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

type request struct {
	Inputs  string  `json:"inputs"`
	Options options `json:"options"`
}

type options struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Embedder) {
		e.client = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) {
		e.logger = logger
	}
}

// NewEmbedder creates an embedder for config.Model on config.Host.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config, opts ...Option) (ai.Embedder, error) {
	e, err := newEmbedder(config, opts...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func newEmbedder(config *ai.Config, opts ...Option) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Token == "" {
		return nil, fmt.Errorf("huggingface: %w: token is required", ai.ErrProviderNotConfigured)
	}

	e := &Embedder{
		url:    config.Host + "/" + config.Model,
		token:  config.Token,
		client: &http.Client{Timeout: config.Timeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "huggingface-embedder")
	return e, nil
}

// EmbedText requests the sentence embedding of text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(request{Inputs: text, Options: options{WaitForModel: true}})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		e.logger.Debug("model is loading", "text", text)
		return nil, ai.ErrModelLoading
	case resp.StatusCode != http.StatusOK:
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, fmt.Errorf("huggingface API: status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	vec, err := decodeVector(data)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("embedded text", "text", text, "dim", len(vec))
	return vec, nil
}

// decodeVector accepts either a flat vector or a batch of one vector.
func decodeVector(data []byte) ([]float32, error) {
	var nested [][]float32
	if err := json.Unmarshal(data, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, ai.ErrEmptyEmbedding
		}
		return nested[0], nil
	}

	var flat []float32
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("decode: unexpected response shape: %w", err)
	}
	if len(flat) == 0 {
		return nil, ai.ErrEmptyEmbedding
	}
	return flat, nil
}

