package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/requestid"
)

// Exchange summarizes one finished call for hooks.
type Exchange struct {
	Request   Request
	URL       string
	RequestID string
	Status    int
	Duration  time.Duration
	Err       error
}

// ExchangeHook observes finished calls. Hooks run synchronously on the
// calling goroutine.
type ExchangeHook func(ctx context.Context, ex Exchange)

// HTTPTransport implements Transport over net/http with a cookie jar.
type HTTPTransport struct {
	client    *http.Client
	jar       http.CookieJar
	base      *url.URL
	userAgent string
	maxBody   int64
	timeout   time.Duration
	headers   http.Header
	breaker   *CircuitBreaker
	hooks     []ExchangeHook
	logger    *slog.Logger
}

// New validates cfg and builds a transport.
func New(cfg Config, opts ...Option) (*HTTPTransport, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfiguration)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", ErrInvalidConfiguration, cfg.BaseURL)
	}

	t := &HTTPTransport{
		base:      base,
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodyBytes,
		timeout:   cfg.RequestTimeout,
		headers:   make(http.Header),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.jar == nil {
		if t.client != nil && t.client.Jar != nil {
			t.jar = t.client.Jar
		} else {
			jar, err := cookiejar.New(nil)
			if err != nil {
				return nil, fmt.Errorf("%w: cookie jar: %w", ErrInvalidConfiguration, err)
			}
			t.jar = jar
		}
	}
	if t.client == nil {
		t.client = &http.Client{}
	}
	t.client.Jar = t.jar
	if t.maxBody <= 0 {
		t.maxBody = DefaultConfig().MaxBodyBytes
	}
	t.logger = t.logger.With(logger.Component("transport"))

	return t, nil
}

// Jar returns the cookie jar holding the session cookie.
func (t *HTTPTransport) Jar() http.CookieJar {
	return t.jar
}

// BaseURL returns the resolved API base URL.
func (t *HTTPTransport) BaseURL() *url.URL {
	u := *t.base
	return &u
}

// Do sends req. The returned error is non-nil only when no response could be
// read; HTTP error statuses are reported through Response.
func (t *HTTPTransport) Do(ctx context.Context, req Request) (Response, error) {
	ctx, reqID := requestid.Ensure(ctx)
	start := time.Now()
	ex := Exchange{Request: req, RequestID: reqID}

	resp, err := t.do(ctx, req, reqID, &ex)
	ex.Duration = time.Since(start)
	ex.Status = resp.Status
	ex.Err = err

	t.observe(ctx, ex)
	return resp, err
}

func (t *HTTPTransport) do(ctx context.Context, req Request, reqID string, ex *Exchange) (Response, error) {
	target, err := t.resolve(req)
	if err != nil {
		return Response{}, err
	}
	ex.URL = target.String()

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return Response{}, err
	}

	if t.breaker != nil && !t.breaker.Allow() {
		return Response{}, ErrCircuitOpen
	}

	reqCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(reqCtx, req.method(), target.String(), reader)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if t.userAgent != "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}
	for k, vs := range t.headers {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	httpReq.Header.Set(requestid.Header, reqID)

	client := t.client
	if req.OmitCredentials {
		c := *t.client
		c.Jar = nil
		client = &c
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		t.recordFailure()
		return Response{}, classify(ctx, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, t.maxBody+1))
	if err != nil {
		t.recordFailure()
		return Response{}, classify(ctx, err)
	}
	if int64(len(data)) > t.maxBody {
		return Response{Status: httpResp.StatusCode, Header: httpResp.Header},
			fmt.Errorf("%w: limit is %d bytes", ErrResponseTooLarge, t.maxBody)
	}

	if httpResp.StatusCode >= http.StatusInternalServerError {
		t.recordFailure()
	} else if t.breaker != nil {
		t.breaker.RecordSuccess()
	}

	return Response{Status: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}

func (t *HTTPTransport) resolve(req Request) (*url.URL, error) {
	if strings.TrimSpace(req.Path) == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidURL)
	}
	ref, err := url.Parse(req.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	var target *url.URL
	if ref.IsAbs() {
		if ref.Scheme != "http" && ref.Scheme != "https" {
			return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, ref.Scheme)
		}
		target = ref
	} else {
		target = t.base.JoinPath(ref.Path)
		target.RawQuery = ref.RawQuery
	}

	if len(req.Query) > 0 {
		q := target.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}
	return target, nil
}

func (t *HTTPTransport) recordFailure() {
	if t.breaker != nil {
		t.breaker.RecordFailure()
	}
}

func (t *HTTPTransport) observe(ctx context.Context, ex Exchange) {
	attrs := []any{
		logger.Method(ex.Request.method()),
		logger.Path(ex.Request.Path),
		logger.Duration(ex.Duration),
	}
	if ex.Err != nil {
		t.logger.DebugContext(ctx, "request failed", append(attrs, logger.Error(ex.Err))...)
	} else {
		t.logger.DebugContext(ctx, "request completed", append(attrs, logger.Status(ex.Status))...)
	}
	for _, hook := range t.hooks {
		hook(ctx, ex)
	}
}

func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return b, "application/json", nil
	case json.RawMessage:
		return b, "application/json", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("%w: encode body: %w", ErrInvalidRequest, err)
		}
		return data, "application/json", nil
	}
}

// classify maps client errors to ErrTimeout or ErrNetwork. Cancellation by
// the caller is passed through unchanged.
func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
		return ctxErr
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
