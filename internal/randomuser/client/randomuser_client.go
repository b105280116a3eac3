package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/util"
)

const (
	DefaultBaseURL = "https://randomuser.me/api/"
	DefaultTimeout = 10 * time.Second
)

// FetchErrorKind classifies a failed fetch.
type FetchErrorKind string

const (
	KindConnection        FetchErrorKind = "connection_failure"
	KindTimeout           FetchErrorKind = "timeout_failure"
	KindRequest           FetchErrorKind = "request_failure"
	KindMalformedResponse FetchErrorKind = "malformed_response"
)

// FetchError is returned by Fetch for every failure.
type FetchError struct {
	Kind FetchErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the FetchErrorKind carried by err, or "" if there is none.
func KindOf(err error) FetchErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// RandomUserClient is the HTTP client for the random user API. It owns one
// http.Client so connections are reused across calls.
type RandomUserClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRandomUserClient creates a client with the given request timeout. A nil
// logger falls back to the process logger.
func NewRandomUserClient(baseURL string, timeout time.Duration, logger *slog.Logger) *RandomUserClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = util.GetLogger()
	}
	return &RandomUserClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type resultsResponse struct {
	Results *[]json.RawMessage `json:"results"`
	Error   string             `json:"error"`
}

// Fetch requests count users (clamped to model.MaxBatchSize) in a single GET.
func (c *RandomUserClient) Fetch(ctx context.Context, count int) ([]model.RawUser, error) {
	if count < 1 {
		return nil, c.fail(KindRequest, fmt.Errorf("results must be positive, got %d", count))
	}
	if count > model.MaxBatchSize {
		count = model.MaxBatchSize
	}

	reqURL, err := c.buildURL(count)
	if err != nil {
		return nil, c.fail(KindRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, c.fail(KindRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(classify(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, c.fail(KindRequest, fmt.Errorf("random user api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	var payload resultsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if kind := classify(err); kind == KindTimeout || kind == KindConnection {
			return nil, c.fail(kind, err)
		}
		return nil, c.fail(KindMalformedResponse, fmt.Errorf("decode body: %w", err))
	}
	if payload.Results == nil {
		if payload.Error != "" {
			return nil, c.fail(KindMalformedResponse, fmt.Errorf("missing results key, api error: %s", payload.Error))
		}
		return nil, c.fail(KindMalformedResponse, errors.New("missing results key"))
	}

	elems := *payload.Results
	if len(elems) > count {
		c.logger.Warn("API returned more users than requested, truncating", "requested", count, "returned", len(elems))
		elems = elems[:count]
	}

	// Elements are decoded one by one; one that is not an object becomes a
	// nil record so the mapper rejects it alone.
	users := make([]model.RawUser, 0, len(elems))
	for i, elem := range elems {
		var raw model.RawUser
		if err := json.Unmarshal(elem, &raw); err != nil {
			c.logger.Warn("Undecodable user record", "index", i, "error", err)
			raw = nil
		}
		users = append(users, raw)
	}
	return users, nil
}

func (c *RandomUserClient) buildURL(count int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("inc", strings.Join(model.RequiredRawFields, ","))
	q.Set("results", strconv.Itoa(count))
	q.Set("noinfo", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *RandomUserClient) fail(kind FetchErrorKind, err error) *FetchError {
	switch kind {
	case KindConnection:
		c.logger.Error("No internet connection", "error", err)
	case KindTimeout:
		c.logger.Error("Request timed out", "error", err)
	case KindMalformedResponse:
		c.logger.Error("Invalid API response", "error", err)
	default:
		c.logger.Error("API request failed", "error", err)
	}
	return &FetchError{Kind: kind, Err: err}
}

func classify(err error) FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindConnection
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return KindConnection
	}

	return KindRequest
}
