package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/mtnworks/gt-client/internal/domain"
	"github.com/mtnworks/gt-client/internal/ports"
	"github.com/mtnworks/gt-client/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// Client issues HTTP calls against the trade server with bearer-token
// attachment and the bounded 401 re-auth-and-retry protocol. It constructs
// wire requests but never interprets success payloads; that is the codec's
// job.
type Client struct {
	rest    *resty.Client
	session ports.SessionTokens
	log     *logrus.Entry
}

// NewClient builds a client for the given base URL. Resty's built-in retry
// stays disabled: retry policy is owned by this client and the session
// manager.
func NewClient(baseURL string) *Client {
	rest := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(defaultTimeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "gt-client").
		SetHeader("Accept", "application/json")

	return &Client{
		rest: rest,
		log:  logger.WithComponent("httpapi"),
	}
}

// BindSession attaches the session manager. Construction is two-phase because
// the session manager in turn needs this client's login endpoint.
func (c *Client) BindSession(session ports.SessionTokens) {
	c.session = session
}

type loginRequest struct {
	AuthTicket string `json:"authTicket"`
	PlayerName string `json:"playerName"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login exchanges an identity ticket for a bearer token. No auth header is
// attached; this is the one unauthenticated endpoint.
func (c *Client) Login(ctx context.Context, ticketHex, playerName string) (ports.LoginResult, error) {
	var payload loginResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{AuthTicket: ticketHex, PlayerName: playerName}).
		SetResult(&payload).
		ForceContentType("application/json").
		Post("/auth/login")
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("post login: %w", err)
	}
	if !resp.IsSuccess() {
		return ports.LoginResult{}, &domain.TransportError{
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body()),
		}
	}
	return ports.LoginResult{Token: payload.Token, ExpiresIn: payload.ExpiresIn}, nil
}

// Do executes one logical request. On 2xx the raw body is returned and the
// token's expiry slides forward. A 401 triggers exactly one
// clear-reauthenticate-retry cycle; a second 401, or a re-authentication that
// yields no valid token, surfaces as ErrSessionRestartRequired. Any other
// failure is a TransportError carrying the server's detail text; no retry
// happens for those at this layer.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	resp, err := c.execute(ctx, method, path, body)
	if err != nil {
		return nil, &domain.TransportError{Detail: err.Error()}
	}

	if resp.IsSuccess() {
		c.renewExpiry(ctx)
		return resp.Body(), nil
	}

	if !isAuthFailure(resp) {
		return nil, &domain.TransportError{
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body()),
		}
	}

	c.log.WithField("path", path).Info("server rejected token, re-authenticating")
	c.session.ClearToken(ctx)
	if err := c.session.EnsureAuthenticated(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionRestartRequired, err)
	}
	if _, ok := c.session.GetToken(); !ok {
		return nil, domain.ErrSessionRestartRequired
	}

	retryResp, err := c.execute(ctx, method, path, body)
	if err != nil {
		return nil, &domain.TransportError{Detail: err.Error()}
	}
	if retryResp.IsSuccess() {
		c.renewExpiry(ctx)
		return retryResp.Body(), nil
	}
	if isAuthFailure(retryResp) {
		return nil, domain.ErrSessionRestartRequired
	}
	return nil, &domain.TransportError{
		StatusCode: retryResp.StatusCode(),
		Detail:     errorDetail(retryResp.Body()),
	}
}

func (c *Client) execute(ctx context.Context, method, path string, body []byte) (*resty.Response, error) {
	req := c.rest.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if c.session != nil {
		if token, ok := c.session.GetToken(); ok {
			req.SetHeader("Authorization", "Bearer "+token.Value)
		}
	}
	return req.Execute(method, path)
}

func (c *Client) renewExpiry(ctx context.Context) {
	if c.session != nil {
		c.session.RenewExpiry(ctx)
	}
}

// isAuthFailure recognizes authentication problems by status code or by the
// server's error text.
func isAuthFailure(resp *resty.Response) bool {
	return resp.StatusCode() == 401 || strings.Contains(string(resp.Body()), "Unauthorized")
}

// errorDetail pulls the server's detail field out of an error body, falling
// back to the raw text. The detail is surfaced verbatim, never matched on.
func errorDetail(body []byte) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	return strings.TrimSpace(string(body))
}

var _ ports.Requester = (*Client)(nil)
var _ ports.LoginAPI = (*Client)(nil)
