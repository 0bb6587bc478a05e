package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	app_errors "viz-ai/backend/internal/errors"
)

// LLMProvider defines the interface for interacting with a language model.
type LLMProvider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	ListModels(ctx context.Context) (*ListModelsResponse, error)
	PullModel(ctx context.Context, req *PullModelRequest, ch chan<- PullStatus) error
	ShowModelInfo(ctx context.Context, req *ShowModelRequest) (*ModelInfo, error)
	DeleteModel(ctx context.Context, req *DeleteModelRequest) error
	Ping(ctx context.Context) error
}

type ollamaProvider struct {
	client  *http.Client
	url     string
	limiter *rate.Limiter
}

// Option configures the Ollama provider.
type Option func(*ollamaProvider)

// WithTimeout bounds every non-streaming request. Model pulls are not bounded.
func WithTimeout(d time.Duration) Option {
	return func(p *ollamaProvider) { p.client.Timeout = d }
}

// WithRateLimit caps generation requests per second. Zero or less disables it.
func WithRateLimit(rps float64) Option {
	return func(p *ollamaProvider) {
		if rps > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func NewOllamaProvider(url string, opts ...Option) LLMProvider {
	p := &ollamaProvider{
		client: &http.Client{},
		url:    strings.TrimRight(url, "/"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GenerateRequest is a single-prompt completion request (/api/generate).
type GenerateRequest struct {
	Model   string           `json:"model"`
	Prompt  string           `json:"prompt"`
	System  string           `json:"system,omitempty"`
	Format  string           `json:"format,omitempty"`
	Stream  bool             `json:"stream"`
	Options *GenerateOptions `json:"options,omitempty"`
}

// GenerateOptions are the sampling options we set.
type GenerateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ListModelsResponse struct {
	Models []Model `json:"models"`
}

type Model struct {
	Name       string       `json:"name"`
	ModifiedAt string       `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details"`
}

type ModelDetails struct {
	Format            string   `json:"format,omitempty"`
	Family            string   `json:"family,omitempty"`
	Families          []string `json:"families,omitempty"`
	ParameterSize     string   `json:"parameter_size,omitempty"`
	QuantizationLevel string   `json:"quantization_level,omitempty"`
}

type PullModelRequest struct {
	Name   string `json:"name" validate:"required"`
	Stream bool   `json:"stream"`
}

// PullStatus is one progress line of a model pull.
type PullStatus struct {
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
	Error     string `json:"error,omitempty"`
}

type ShowModelRequest struct {
	Name string `json:"name" validate:"required"`
}

type ModelInfo struct {
	Modelfile  string       `json:"modelfile"`
	Parameters string       `json:"parameters"`
	Template   string       `json:"template"`
	Details    ModelDetails `json:"details"`
}

type DeleteModelRequest struct {
	Name string `json:"name" validate:"required"`
}

func (p *ollamaProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req.Stream = false
	resp, err := p.do(ctx, http.MethodPost, "/api/generate", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return &genResp, nil
}

func (p *ollamaProvider) ListModels(ctx context.Context) (*ListModelsResponse, error) {
	resp, err := p.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("could not decode model list: %w", err)
	}
	return &list, nil
}

// PullModel streams pull progress into ch and closes it when done.
func (p *ollamaProvider) PullModel(ctx context.Context, req *PullModelRequest, ch chan<- PullStatus) error {
	defer close(ch)
	req.Stream = true

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Pulls can take many minutes; only the context bounds them.
	streamClient := &http.Client{Transport: p.client.Transport}
	resp, err := streamClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var status PullStatus
		if err := json.Unmarshal(line, &status); err != nil {
			status = PullStatus{Error: "failed to decode pull progress"}
		}
		select {
		case ch <- status:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return scanner.Err()
}

func (p *ollamaProvider) ShowModelInfo(ctx context.Context, req *ShowModelRequest) (*ModelInfo, error) {
	resp, err := p.do(ctx, http.MethodPost, "/api/show", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info ModelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("could not decode model info: %w", err)
	}
	return &info, nil
}

func (p *ollamaProvider) DeleteModel(ctx context.Context, req *DeleteModelRequest) error {
	resp, err := p.do(ctx, http.MethodDelete, "/api/delete", req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Ping reports whether the Ollama server answers.
func (p *ollamaProvider) Ping(ctx context.Context) error {
	resp, err := p.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// do sends a JSON request and returns the response if it is a 200.
// The caller closes the body.
func (p *ollamaProvider) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, p.url+path, body)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrServiceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err := fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", app_errors.ErrNotFound, err)
	}
	return err
}
