package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// HackathonHeader — заголовок tenant-скоупа: какой хакатон является
// контекстом запроса для мультитенантных эндпоинтов.
const HackathonHeader = "X-Hackathon-Id"

// Config хранит настройки клиента бэкенда.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000/api",
		Timeout: 15 * time.Second,
	}
}

// Scope — явный контекст вызова, заменяющий ambient-хранилище исходного
// клиента: bearer-токен и выбранный хакатон передаются по цепочке вызовов.
type Scope struct {
	Token       string
	HackathonID int
	// OmitHackathon явно отключает заголовок скоупа для вызовов,
	// которым нужен глобальный (все хакатоны) срез эндпоинта.
	OmitHackathon bool
}

// Client оборачивает HTTP-вызовы к бэкенду: подстановка авторизации и
// tenant-заголовка, нормализация ошибок. Без ретраев и backoff —
// отказ распространяется один раз в нормализованном виде.
type Client struct {
	baseURL *url.URL
	cfg     Config
	http    *http.Client
}

func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	return &Client{
		baseURL: u,
		cfg:     cfg,
		http:    httpClient,
	}, nil
}

func NewDefaultClient(cfg Config) (*Client, error) {
	defaultClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// Close закрывает неиспользуемые соединения транспорта. Идемпотентен.
func (c *Client) Close() error {
	if c == nil || c.http == nil {
		return nil
	}
	if tr, ok := c.http.Transport.(interface{ CloseIdleConnections() }); ok {
		tr.CloseIdleConnections()
	}
	return nil
}

// package-level logger; заменяется вызывающим через SetLogger.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger задаёт логгер пакета. nil игнорируется.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func (c *Client) Get(ctx context.Context, scope Scope, path string, out interface{}) error {
	return c.do(ctx, scope, http.MethodGet, path, nil, "", out)
}

func (c *Client) Post(ctx context.Context, scope Scope, path string, body, out interface{}) error {
	return c.doJSON(ctx, scope, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, scope Scope, path string, body, out interface{}) error {
	return c.doJSON(ctx, scope, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, scope Scope, path string, body, out interface{}) error {
	return c.doJSON(ctx, scope, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, scope Scope, path string, out interface{}) error {
	return c.do(ctx, scope, http.MethodDelete, path, nil, "", out)
}

func (c *Client) doJSON(ctx context.Context, scope Scope, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request body: %v", err), Code: CodeRequest}
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, scope, method, path, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, scope Scope, method, path string, body io.Reader, contentType string, out interface{}) error {
	// JoinPath экранировал бы "?", поэтому query отделяется заранее.
	path, rawQuery, _ := strings.Cut(path, "?")
	u := c.baseURL.JoinPath(path)
	u.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return &APIError{Message: err.Error(), Code: CodeRequest}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.applyScope(req, scope)

	resp, err := c.http.Do(req)
	if err != nil {
		// Ответ не получен вовсе: сетевой сбой, таймаут, отмена контекста.
		logger.Warn("upstream request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, raw)
		if resp.StatusCode == http.StatusForbidden {
			logger.Warn("upstream denied request",
				slog.String("method", method),
				slog.String("path", path),
				slog.String("message", apiErr.Message),
			)
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{
			Message: fmt.Sprintf("decode response for %s %s: %v", method, path, err),
			Status:  resp.StatusCode,
			Code:    CodeUnknown,
		}
	}
	return nil
}

func (c *Client) applyScope(req *http.Request, scope Scope) {
	if scope.Token != "" {
		req.Header.Set("Authorization", "Bearer "+scope.Token)
	}
	if scope.HackathonID > 0 && !scope.OmitHackathon {
		req.Header.Set(HackathonHeader, strconv.Itoa(scope.HackathonID))
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
}
