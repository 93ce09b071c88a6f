// Package llm invokes hosted language models behind a single provider-agnostic
// surface. A Registry maps provider ids to protocol families, the per-family
// protocol tables translate one (system, user) prompt pair to and from the
// wire, and the Invoker orchestrates credential resolution, model selection,
// and rate-limit retries.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// Doer issues HTTP requests. *http.Client satisfies it; tests substitute
// recording fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is one invocation: a provider, a prompt pair, and a token budget.
// Model is optional; when empty the invoker picks one from the provider's
// catalog.
type Request struct {
	Provider     string
	Model        string
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// Response is the normalized result of a successful invocation. HasText is
// false when the provider returned 2xx but the body did not carry usable
// text; that is a degraded result, not an error.
type Response struct {
	Model   string
	Text    string
	HasText bool
	RawBody []byte
}

// Invoker executes requests against registered providers. The zero value is
// not usable; construct with NewInvoker.
type Invoker struct {
	registry *Registry
	http     Doer
	retry    RetryPolicy
	timeout  time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *log.Logger

	mu       sync.Mutex
	selected map[string]string // provider id -> auto-selected model
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithHTTPClient overrides the transport. Used by tests and by callers that
// need custom TLS or proxy settings.
func WithHTTPClient(d Doer) Option {
	return func(inv *Invoker) { inv.http = d }
}

// WithRetryPolicy overrides the rate-limit retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(inv *Invoker) { inv.retry = p }
}

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(inv *Invoker) { inv.timeout = d }
}

// WithLogger overrides the logger used for retry notices.
func WithLogger(l *log.Logger) Option {
	return func(inv *Invoker) { inv.logger = l }
}

// withSleep overrides the backoff sleep. Test hook.
func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(inv *Invoker) { inv.sleep = fn }
}

// NewInvoker builds an invoker over the given registry with a 30s per-attempt
// timeout and the default retry policy.
func NewInvoker(reg *Registry, opts ...Option) *Invoker {
	inv := &Invoker{
		registry: reg,
		http:     &http.Client{},
		retry:    DefaultRetryPolicy(),
		timeout:  30 * time.Second,
		sleep:    sleepCtx,
		logger:   log.New(io.Discard, "", 0),
		selected: make(map[string]string),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ListModels fetches the model catalog for a provider.
func (inv *Invoker) ListModels(ctx context.Context, provider string) (*ModelCatalog, error) {
	desc, err := inv.registry.Lookup(provider)
	if err != nil {
		return nil, err
	}
	cred, err := ResolveCredential(desc)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()
	return listModels(ctx, inv.http, desc, cred)
}

// ResolveModel returns the model that would serve a request with no explicit
// model: the cached auto-selection if one exists, otherwise a fresh
// catalog fetch plus heuristic pick.
func (inv *Invoker) ResolveModel(ctx context.Context, provider string) (string, error) {
	desc, err := inv.registry.Lookup(provider)
	if err != nil {
		return "", err
	}
	cred, err := ResolveCredential(desc)
	if err != nil {
		return "", err
	}
	return inv.resolveModel(ctx, desc, cred)
}

func (inv *Invoker) resolveModel(ctx context.Context, desc ProviderDescriptor, cred Credential) (string, error) {
	inv.mu.Lock()
	model, ok := inv.selected[desc.ID]
	inv.mu.Unlock()
	if ok {
		return model, nil
	}

	listCtx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()
	catalog, err := listModels(listCtx, inv.http, desc, cred)
	if err != nil {
		return "", err
	}
	model, err = SelectModel(catalog, desc.Family.protocol().preferences)
	if err != nil {
		return "", err
	}

	inv.mu.Lock()
	inv.selected[desc.ID] = model
	inv.mu.Unlock()
	return model, nil
}

// Invoke sends one prompt pair to a provider and returns the normalized
// response. Rate-limited attempts are retried per the policy; any other
// failure surfaces immediately.
func (inv *Invoker) Invoke(ctx context.Context, req Request) (*Response, error) {
	desc, err := inv.registry.Lookup(req.Provider)
	if err != nil {
		return nil, err
	}
	cred, err := ResolveCredential(desc)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model, err = inv.resolveModel(ctx, desc, cred)
		if err != nil {
			return nil, err
		}
	}

	proto := desc.Family.protocol()
	body, err := json.Marshal(proto.buildBody(model, req.SystemPrompt, req.UserPrompt, req.MaxTokens))
	if err != nil {
		return nil, &TransportError{Provider: desc.ID, Err: err}
	}
	reqURL := AuthorizeURL(proto.chatURL(desc.BaseURL, model), desc, cred)
	headers := BuildHeaders(desc, cred)

	for attempt := 1; attempt <= inv.retry.MaxAttempts; attempt++ {
		status, respBody, err := inv.post(ctx, desc, reqURL, headers, body)
		if err != nil {
			return nil, err
		}

		if status == http.StatusTooManyRequests {
			pause := inv.retry.Backoff(attempt)
			inv.logger.Printf("%s: rate limited (attempt %d/%d), backing off %s",
				desc.ID, attempt, inv.retry.MaxAttempts, pause)
			if err := inv.sleep(ctx, pause); err != nil {
				return nil, &TransportError{Provider: desc.ID, Err: err}
			}
			continue
		}

		if status < 200 || status > 299 {
			return nil, &RequestFailedError{
				Provider: desc.ID,
				Status:   status,
				Body:     truncateBody(string(respBody)),
			}
		}

		text, ok := proto.replyText(respBody)
		return &Response{Model: model, Text: text, HasText: ok, RawBody: respBody}, nil
	}

	return nil, &RateLimitError{Provider: desc.ID, Attempts: inv.retry.MaxAttempts}
}

// post issues one chat attempt with the per-attempt timeout applied.
func (inv *Invoker) post(ctx context.Context, desc ProviderDescriptor, url string, headers map[string]string, body []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, &TransportError{Provider: desc.ID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := inv.http.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Provider: desc.ID, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Provider: desc.ID, Err: err}
	}
	return resp.StatusCode, respBody, nil
}
