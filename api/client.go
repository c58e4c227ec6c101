// Package api is the client for the remote product/user API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"playbox/errs"
	"playbox/metrics"
)

const (
	DefaultBaseURL        = "https://playstationappserver.vercel.app/api/"
	DefaultAttemptTimeout = 60 * time.Second
	DefaultMaxAttempts    = 3
	DefaultBackoff        = time.Second
)

type Client struct {
	baseURL        string
	http           *http.Client
	attemptTimeout time.Duration
	maxAttempts    int
	backoff        time.Duration
	log            logrus.FieldLogger
	now            func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func WithAttemptTimeout(d time.Duration) Option { return func(c *Client) { c.attemptTimeout = d } }

func WithMaxAttempts(n int) Option { return func(c *Client) { c.maxAttempts = n } }

// WithBackoff sets the first wait between attempts; each later wait doubles.
func WithBackoff(d time.Duration) Option { return func(c *Client) { c.backoff = d } }

func WithLogger(l logrus.FieldLogger) Option { return func(c *Client) { c.log = l } }

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:        baseURL,
		http:           &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		attemptTimeout: DefaultAttemptTimeout,
		maxAttempts:    DefaultMaxAttempts,
		backoff:        DefaultBackoff,
		log:            logrus.StandardLogger(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	return c
}

type reply struct {
	status int
	body   []byte
}

// Call sends one JSON request to baseURL+route. Every failure is an *Error.
// Only attempts that hit the per-attempt timeout are retried.
func (c *Client) Call(ctx context.Context, route, method string, body interface{}) (json.RawMessage, error) {
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + route
	log := c.log.WithFields(logrus.Fields{"route": route, "method": method, "url": url})
	fail := func(kind errs.Kind, status int, msg string, cause error) *Error {
		e := &Error{
			Message: msg,
			Kind:    kind,
			Status:  status,
			Err:     cause,
			Details: Details{URL: url, Method: method, Route: route, Timestamp: c.now().UTC()},
		}
		var ne net.Error
		e.Timeout = errors.Is(cause, context.DeadlineExceeded) || (errors.As(cause, &ne) && ne.Timeout())
		log.WithFields(logrus.Fields{"status": status, "error": msg}).Error("Fetch error")
		return e
	}

	var payload []byte
	if method != http.MethodGet && body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fail(errs.KindParse, 0, "could not encode request body: "+err.Error(), err)
		}
	}

	attempt := 0
	operation := func() (reply, error) {
		attempt++
		actx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()

		var rdr io.Reader
		if payload != nil {
			rdr = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(actx, method, url, rdr)
		if err != nil {
			return reply{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err == nil {
			defer resp.Body.Close()
			var text []byte
			if text, err = io.ReadAll(resp.Body); err == nil {
				return reply{status: resp.StatusCode, body: text}, nil
			}
		}
		if ctx.Err() != nil || !isTimeout(actx, err) {
			return reply{}, backoff.Permanent(err)
		}
		if attempt < c.maxAttempts {
			metrics.RecordAPIRetry(route)
			log.WithField("attempt", attempt+1).Infof("Retrying request (attempt %d/%d)...", attempt+1, c.maxAttempts)
		}
		return reply{}, err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.backoff
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = 30 * time.Second

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(uint(c.maxAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Unwrap()
		}
		if cerr := ctx.Err(); cerr != nil {
			return nil, fail(errs.KindNetwork, 0, "request aborted by caller: "+cerr.Error(), err)
		}
		if isTimeout(ctx, err) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fail(errs.KindNetwork, 0, fmt.Sprintf("request timed out after %s: %v", c.attemptTimeout, err), err)
		}
		return nil, fail(errs.KindNetwork, 0, err.Error(), err)
	}

	log.WithField("status", res.status).Debug("Response received")

	switch res.status {
	case http.StatusNotFound:
		return nil, fail(errs.KindNetwork, res.status,
			fmt.Sprintf("Endpoint not found: %s. Please check if the API route is correct and the server is running.", route), nil)
	case http.StatusGatewayTimeout:
		return nil, fail(errs.KindNetwork, res.status,
			"Gateway timeout. The server took too long to respond. Please try again or contact support if the issue persists.", nil)
	}

	if !json.Valid(res.body) {
		return nil, fail(errs.KindParse, res.status, "Invalid JSON response from server: "+string(res.body), nil)
	}

	if res.status < 200 || res.status > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(res.body, &msg)
		if msg.Message == "" {
			msg.Message = fmt.Sprintf("HTTP error! status: %d", res.status)
		}
		return nil, fail(errs.KindNetwork, res.status, msg.Message, nil)
	}

	return json.RawMessage(res.body), nil
}

func isTimeout(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
