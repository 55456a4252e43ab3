package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"hyperliquid-go-sdk/envelope"
	"hyperliquid-go-sdk/hlerr"
)

// Client is a pooled HTTPS client with pinned-cert verification, retry
// with exponential backoff, and atomic stats. Clients are cheap to share:
// the underlying *http.Client and its connection pool are reused by every
// caller holding a reference.
type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
	ua      string
	stats   ConnectionStats
	logger  *log.Logger
}

// NewClient builds a Client from cfg. It fails with hlerr.Config on an
// invalid base URL or proxy URL; installing the pinned-certificate
// verifier cannot fail.
func NewClient(cfg Config) (*Client, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, hlerr.Wrap(hlerr.Config, "invalid base url", err)
	}

	tlsConfig := &tls.Config{}
	if len(cfg.PinnedCertificates) > 0 {
		verifier := NewPinnedCertVerifier(cfg.PinnedCertificates)
		verifier.ApplyTo(tlsConfig)
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxConnectionsPerHost,
		MaxConnsPerHost:     cfg.MaxConnectionsPerHost,
		DisableCompression:  cfg.DisableCompression,
		DisableKeepAlives:   cfg.DisableKeepAlives,
		TLSClientConfig:     tlsConfig,
		ForceAttemptHTTP2:   cfg.PreferHTTP2,
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
	}

	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, hlerr.Wrap(hlerr.Config, "invalid proxy url", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "hyperliquid-go-sdk"
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		retry:  cfg.Retry,
		ua:     ua,
		logger: log.New(),
	}, nil
}

// SetLogger overrides the client's request/response/retry logger.
func (c *Client) SetLogger(l *log.Logger) { c.logger = l }

// Stats returns a point-in-time summary of this client's request counters.
func (c *Client) Stats() StatsSummary { return c.stats.Summary() }

// Do sends method/path with an optional JSON body, retrying per the
// client's RetryPolicy, and returns the parsed response envelope.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (envelope.Envelope, error) {
	c.stats.incTotal()

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return envelope.Envelope{}, hlerr.Wrap(hlerr.JSON, "encode request body", err)
		}
		payload = b
	}

	traceID := newTraceID()
	attempt := 0
	for {
		env, retryable, err := c.attempt(ctx, traceID, method, path, payload, attempt)
		if err == nil {
			if attempt > 0 {
				c.stats.incRetriesSucceeded()
			}
			c.stats.incSuccessful()
			return env, nil
		}

		if retryable && attempt < c.retry.MaxRetries {
			delay := backoffDelay(c.retry, attempt)
			c.logger.WithFields(log.Fields{"trace_id": traceID, "attempt": attempt, "delay": delay}).Warn("retrying request")
			c.stats.incRetriesAttempted()
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				c.stats.incFailed()
				return envelope.Envelope{}, hlerr.Wrap(hlerr.Timeout, "context cancelled during retry wait", ctx.Err())
			}
			attempt++
			continue
		}

		c.stats.incFailed()
		if attempt > 0 {
			c.stats.incRetryExhausted()
			exhausted := hlerr.Wrap(hlerr.RetryExhausted, fmt.Sprintf("exhausted after %d attempts", attempt), err)
			exhausted.Attempts = attempt
			return envelope.Envelope{}, exhausted
		}
		return envelope.Envelope{}, err
	}
}

func (c *Client) attempt(ctx context.Context, traceID, method, path string, payload []byte, attempt int) (envelope.Envelope, bool, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	traceCtx := httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			if info.Reused {
				c.stats.incReuse()
			}
		},
	})
	req, err := http.NewRequestWithContext(traceCtx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return envelope.Envelope{}, false, hlerr.Wrap(hlerr.InvalidURL, "build request", err)
	}
	req.Header.Set("User-Agent", c.ua)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.WithFields(log.Fields{"trace_id": traceID, "method": method, "path": path, "attempt": attempt}).Debug("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		classified := classifyTransportError(err)
		c.logger.WithFields(log.Fields{"trace_id": traceID, "error": err}).Warn("request error")
		return envelope.Envelope{}, hlerr.IsRetryable(classified), classified
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		classified := hlerr.Wrap(hlerr.Network, "read response body", err)
		return envelope.Envelope{}, hlerr.IsRetryable(classified), classified
	}

	c.logger.WithFields(log.Fields{"trace_id": traceID, "status": resp.StatusCode}).Debug("received response")

	return classifyResponse(resp, respBody)
}

func classifyResponse(resp *http.Response, body []byte) (envelope.Envelope, bool, error) {
	status := resp.StatusCode
	switch {
	case status >= 200 && status < 300:
		var probe interface{}
		if err := json.Unmarshal(body, &probe); err != nil {
			err := hlerr.Wrap(hlerr.JSON, "parse response body", err)
			return envelope.Envelope{}, false, err
		}
		return envelope.Parse(body), false, nil

	case status == 429:
		retryAfter := 0
		if v := resp.Header.Get("Retry-After"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				retryAfter = n
			}
		}
		err := hlerr.NewRateLimit(retryAfter)
		return envelope.Envelope{}, hlerr.IsRetryable(err), err

	case status >= 400 && status < 500:
		e := envelope.Parse(body)
		if e.IsError {
			err := hlerr.NewClient(strconv.Itoa(e.Code), e.Msg, e.Data)
			return envelope.Envelope{}, false, err
		}
		err := hlerr.NewHttp(status, string(body))
		return envelope.Envelope{}, false, err

	case status >= 500 && status < 600:
		err := hlerr.NewServer(status, string(body))
		return envelope.Envelope{}, hlerr.IsRetryable(err), err

	default:
		err := hlerr.NewHttp(status, string(body))
		return envelope.Envelope{}, false, err
	}
}

func classifyTransportError(err error) *hlerr.Error {
	if isConnectFailure(err) {
		return hlerr.New(hlerr.Timeout, "Connection timeout: "+err.Error())
	}
	var netErr net.Error
	if asNetError(err, &netErr) && netErr.Timeout() {
		return hlerr.New(hlerr.Timeout, "Request timeout: "+err.Error())
	}
	return hlerr.New(hlerr.Network, err.Error())
}

func asNetError(err error, target *net.Error) bool {
	for err != nil {
		if ne, ok := err.(net.Error); ok {
			*target = ne
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func isConnectFailure(err error) bool {
	var opErr *net.OpError
	for err != nil {
		if oe, ok := err.(*net.OpError); ok {
			opErr = oe
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return opErr != nil && opErr.Op == "dial"
}

// Shutdown closes idle connections; in-flight requests complete or time
// out on their own.
func (c *Client) Shutdown() {
	c.http.CloseIdleConnections()
	c.logger.WithField("stats", c.stats.Summary()).Info("transport client shutdown")
}

var traceCounter uint64

func newTraceID() string {
	n := atomic.AddUint64(&traceCounter, 1)
	return fmt.Sprintf("t-%d-%d", time.Now().UnixNano(), n)
}
