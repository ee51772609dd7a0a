// Package introspect verifies bearer tokens against a remote OAuth2-style introspection endpoint.
package introspect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/roadto100k/internal/domain/user"
	"github.com/riskibarqy/roadto100k/internal/platform/cache"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
	"github.com/riskibarqy/roadto100k/internal/platform/resilience"
	"github.com/riskibarqy/roadto100k/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultPrincipalTTL  = 30 * time.Second
	defaultTimeout       = 3 * time.Second
	maxResponseBodyBytes = 1 << 20
)

var errTransient = errors.New("introspection transient failure")

type Client struct {
	httpClient    *fasthttp.Client
	introspectURL string
	timeout       time.Duration
	breaker       *resilience.CircuitBreaker
	principals    *cache.Store
	logger        *logging.Logger
}

func NewClient(httpClient *fasthttp.Client, introspectURL string, timeout time.Duration, breakerCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "roadto100k-introspect",
			MaxResponseBodySize: maxResponseBodyBytes,
		}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: strings.TrimSpace(introspectURL),
		timeout:       timeout,
		breaker:       resilience.NewCircuitBreaker(breakerCfg),
		principals:    cache.NewStore(defaultPrincipalTTL),
		logger:        logger,
	}
}

// VerifyAccessToken returns usecase.ErrUnauthorized for rejected tokens and
// usecase.ErrDependencyUnavailable when the endpoint is failing or the breaker is open.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if cached, ok := c.principals.Get(ctx, key); ok {
		if principal, ok := cached.(user.Principal); ok {
			return principal, nil
		}
	}

	var (
		principal user.Principal
		rejected  error
	)
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		p, err := c.introspect(ctx, token)
		if err != nil && !errors.Is(err, errTransient) {
			rejected = err
			return nil
		}
		principal = p
		return err
	})
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return user.Principal{}, fmt.Errorf("%w: introspection circuit open", usecase.ErrDependencyUnavailable)
	case err != nil:
		c.logger.WarnContext(ctx, "token introspection failed", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	case rejected != nil:
		return user.Principal{}, rejected
	}

	c.principals.Set(ctx, key, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w", errTransient, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.introspectURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBodyRaw(encoded)

	if err := c.httpClient.DoTimeout(req, resp, c.requestTimeout(ctx)); err != nil {
		return user.Principal{}, fmt.Errorf("%w: request introspection: %w", errTransient, err)
	}

	status := resp.StatusCode()
	if status == fasthttp.StatusUnauthorized {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}
	if status != fasthttp.StatusOK {
		c.logger.WarnContext(ctx, "token introspection non-200", "status_code", status)
		return user.Principal{}, fmt.Errorf("%w: introspection failed with status %d", errTransient, status)
	}

	body := resp.Body()
	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: unmarshal introspect response: %w", errTransient, err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has empty user_id", errTransient)
	}

	return user.Principal{
		UserID:    decoded.UserID,
		Email:     decoded.Email,
		Name:      decoded.Name,
		AvatarURL: decoded.Picture,
	}, nil
}

// requestTimeout never outlives the caller's deadline.
func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active  bool   `json:"active"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
