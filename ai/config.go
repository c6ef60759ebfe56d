// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported embedding providers.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// Defaults for the Hugging Face inference router.
const (
	DefaultHuggingFaceHost  = "https://router.huggingface.co/hf-inference/models"
	DefaultHuggingFaceModel = "BM-K/KoSimCSE-roberta-multitask"
	DefaultTimeout          = 60 * time.Second
)

// Config holds configuration for the embedding provider.
type Config struct {
	// Provider selects the backend: "huggingface" or "openai".
	Provider string

	// Host is the base URL of the embedding service.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	Host string

	// Model is the model identifier to use for text embeddings.
	// Example: "BM-K/KoSimCSE-roberta-multitask", "text-embedding-3-small"
	Model string

	// Token is the bearer token sent to the provider. May be empty for
	// local servers.
	Token string

	// Timeout bounds a single embedding request.
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the embedding provider.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithHost sets the embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the embedding model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithToken sets the provider API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// DefaultConfig returns a Config for the Hugging Face Korean sentence
// embedding model.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderHuggingFace,
		Host:     DefaultHuggingFaceHost,
		Model:    DefaultHuggingFaceModel,
		Timeout:  DefaultTimeout,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithProvider(ProviderOpenAI),
//	    WithHost("http://localhost:11434"),
//	    WithModel("bge-m3"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// OpenAI-compatible hosts get a /v1 suffix, which is required by most
// such APIs (Ollama, LocalAI, vLLM, etc). Hugging Face hosts lose any
// trailing slash.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.Host = strings.TrimSuffix(strings.TrimSpace(c.Host), "/")
	if c.Provider == ProviderOpenAI && c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = c.Host + "/v1"
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderHuggingFace, ProviderOpenAI:
	case "":
		return errors.New("ai config: Provider is required")
	default:
		return fmt.Errorf("ai config: unknown provider %q", c.Provider)
	}
	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	return nil
}
