package infrastructure

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/krobus00/roostoo-tester/internal/config"
	"github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	requestIDHeader    = "X-Request-Id"
)

type HTTPClientConfig struct {
	Timeout   time.Duration
	UserAgent string
}

func DefaultHTTPClientConfig() HTTPClientConfig {
	cfg := HTTPClientConfig{
		Timeout:   defaultHTTPTimeout,
		UserAgent: config.ServiceName + "/" + config.ServiceVersion,
	}

	if config.Env != nil && config.Env.Exchange.Timeout > 0 {
		cfg.Timeout = config.Env.Exchange.Timeout
	}

	return cfg
}

func NewHTTPClient() *resty.Client {
	return NewHTTPClientWithConfig(DefaultHTTPClientConfig())
}

func NewHTTPClientWithConfig(cfg HTTPClientConfig) *resty.Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHTTPTimeout
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if ua := strings.TrimSpace(cfg.UserAgent); ua != "" {
		client.SetHeader("User-Agent", ua)
	}

	client.AddRequestMiddleware(httpRequestIDMiddleware)
	client.AddResponseMiddleware(httpAccessLogMiddleware)

	return client
}

func httpRequestIDMiddleware(_ *resty.Client, req *resty.Request) error {
	if strings.TrimSpace(req.Header.Get(requestIDHeader)) == "" {
		req.SetHeader(requestIDHeader, newRequestID())
	}

	return nil
}

func httpAccessLogMiddleware(_ *resty.Client, res *resty.Response) error {
	logrus.WithFields(logrus.Fields{
		"method":      res.Request.Method,
		"url":         res.Request.URL,
		"request_id":  res.Request.Header.Get(requestIDHeader),
		"status":      res.StatusCode(),
		"duration_ms": res.Duration().Milliseconds(),
	}).Debug("http request handled")

	return nil
}

func newRequestID() string {
	return uuid.NewString()
}
