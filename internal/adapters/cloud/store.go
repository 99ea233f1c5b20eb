// Package cloud talks to the remote key-value service that holds the
// per-user preserved sessions blob.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
	"github.com/go-resty/resty/v2"
)

const (
	keyPath          = "/kv/{key}"
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 2
	retryWaitTime    = 500 * time.Millisecond
	retryMaxWaitTime = 5 * time.Second
	userAgent        = "saveslots/1"
)

var errEmptyBaseURL = errors.New("cloud base url is empty")

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Retries int
}

// Store is a BlobStore backed by the remote service. Values are sent and
// received as plain text bodies.
type Store struct {
	client *resty.Client
}

var _ ports.BlobStore = (*Store)(nil)

func NewStore(cfg Config) (*Store, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errEmptyBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	} else if retries == 0 {
		retries = defaultRetries
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		SetHeader("User-Agent", userAgent).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
			}
			return resp.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &Store{client: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	resp, err := s.request(ctx, key).Get(keyPath)
	if err != nil {
		return "", fmt.Errorf("get cloud blob %q: %w", key, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return "", fmt.Errorf("cloud blob %q: %w", key, domain.ErrKeyNotFound)
	case resp.IsError():
		return "", statusError("get", key, resp)
	}

	return resp.String(), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	resp, err := s.request(ctx, key).
		SetHeader("Content-Type", "text/plain; charset=utf-8").
		SetBody(value).
		Put(keyPath)
	if err != nil {
		return fmt.Errorf("put cloud blob %q: %w", key, err)
	}
	if resp.IsError() {
		return statusError("put", key, resp)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	resp, err := s.request(ctx, key).Delete(keyPath)
	if err != nil {
		return fmt.Errorf("delete cloud blob %q: %w", key, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	if resp.IsError() {
		return statusError("delete", key, resp)
	}

	return nil
}

func (s *Store) request(ctx context.Context, key string) *resty.Request {
	return s.client.R().
		SetContext(ctx).
		SetPathParam("key", key)
}

func statusError(op string, key string, resp *resty.Response) error {
	body := strings.TrimSpace(resp.String())
	if body == "" {
		return fmt.Errorf("%s cloud blob %q: unexpected status %d", op, key, resp.StatusCode())
	}
	return fmt.Errorf("%s cloud blob %q: unexpected status %d: %s", op, key, resp.StatusCode(), body)
}
