// Package zarinpal is a small client for the Zarinpal WebGate REST API: a
// payment request that returns an authority token, the StartPay redirect, and
// the verification call made after the user returns to the callback URL.
package zarinpal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	sandboxBaseURL    = "https://sandbox.zarinpal.com/pg"
	productionBaseURL = "https://www.zarinpal.com/pg"

	requestPath  = "/rest/WebGate/PaymentRequest.json"
	verifyPath   = "/rest/WebGate/PaymentVerification.json"
	startPayPath = "/StartPay"

	DefaultTimeout = 10 * time.Second
)

type Config struct {
	MerchantID string
	Sandbox    bool
	Timeout    time.Duration
	// BaseURL overrides the sandbox/production host, e.g. for a local stub.
	BaseURL string
}

type Client struct {
	merchantID string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = productionBaseURL
		if cfg.Sandbox {
			baseURL = sandboxBaseURL
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		merchantID: cfg.MerchantID,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// StartPayURL is where the payer is redirected after a successful request.
func (c *Client) StartPayURL(authority string) string {
	return c.baseURL + startPayPath + "/" + authority
}

func (c *Client) RequestPayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	if req.MerchantID == "" {
		req.MerchantID = c.merchantID
	}
	var resp PaymentResponse
	status, err := c.post(ctx, requestPath, req, &resp)
	if err != nil {
		return nil, err
	}
	resp.HTTPStatus = status
	return &resp, nil
}

func (c *Client) VerifyPayment(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	if req.MerchantID == "" {
		req.MerchantID = c.merchantID
	}
	var resp VerifyResponse
	status, err := c.post(ctx, verifyPath, req, &resp)
	if err != nil {
		return nil, err
	}
	resp.HTTPStatus = status
	return &resp, nil
}

// post sends body as JSON and decodes the answer into out. Only transport
// failures are returned as errors; a non-200 answer is reported through the
// returned HTTP status so callers can map it to a gateway failure.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) (int, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, fmt.Errorf("zarinpal: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return 0, fmt.Errorf("zarinpal: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, classifyTransport(err)
	}
	defer resp.Body.Close()

	// Error answers still carry a JSON Status; a body that does not decode
	// leaves the zero Status, which is never a success.
	_ = json.NewDecoder(resp.Body).Decode(out)
	return resp.StatusCode, nil
}
