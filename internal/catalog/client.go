package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bigtools/multilang-service/internal/config"
)

// restEnvMap maps deployment environments to catalog REST API bases
var restEnvMap = map[string]string{
	"production":  "https://api.bigcommerce.com/stores/%s",
	"staging":     "https://api.staging.zone/stores/%s",
	"integration": "https://api.integration.zone/stores/%s",
	"sandbox":     "https://api.bigcommerce.com/stores/%s",
}

const storefrontGQLFormat = "https://store-%s.mybigcommerce.com/graphql"

// Client talks to the catalog platform's REST and GraphQL APIs.
// One credential set per instance; the underlying http.Client pools
// connections and is safe for concurrent use.
type Client struct {
	baseURL     string
	storeHash   string
	accessToken string
	clientID    string
	channelID   int
	httpClient  *http.Client
}

// NewClient creates a catalog client from process settings
func NewClient(cfg *config.Settings) *Client {
	base, ok := restEnvMap[strings.ToLower(cfg.Environment)]
	if !ok {
		base = restEnvMap["production"]
	}

	return &Client{
		baseURL:     fmt.Sprintf(base, cfg.StoreHash),
		storeHash:   cfg.StoreHash,
		accessToken: cfg.AccessToken,
		clientID:    cfg.ClientID,
		channelID:   cfg.ChannelID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// ChannelID returns the client's default sales channel
func (c *Client) ChannelID() int {
	return c.channelID
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-Auth-Client", c.clientID)
	req.Header.Set("X-Auth-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// REST issues a v3 (or v2) REST call and decodes the JSON body into out.
// A non-2xx status or a non-JSON body is an error; out may be nil when the
// caller does not need the response.
func (c *Client) REST(ctx context.Context, method, endpoint string, params url.Values, body, out any) error {
	version := "v3"
	if strings.HasPrefix(endpoint, "/v2/") {
		version = "v2"
		endpoint = strings.TrimPrefix(endpoint, "/v2")
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	reqURL := fmt.Sprintf("%s/%s%s", c.baseURL, version, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog %s %s: status %d", method, endpoint, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog %s %s: decode response: %w", method, endpoint, err)
	}
	return nil
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// AdminGraphQL runs an admin-scoped GraphQL operation and decodes the
// response's data field into out. GraphQL-level errors are returned as a
// single error, not propagated as partial data.
func (c *Client) AdminGraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	payload := map[string]any{"query": query, "variables": variables}
	if variables == nil {
		payload["variables"] = map[string]any{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal graphql payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(b))
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog graphql: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog graphql: status %d", resp.StatusCode)
	}

	var envelope graphQLEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("catalog graphql: decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("catalog graphql: %s", envelope.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("catalog graphql: decode data: %w", err)
	}
	return nil
}

// StorefrontToken requests a short-lived customer JWT for the public
// storefront GraphQL endpoint, scoped to the client's channel.
func (c *Client) StorefrontToken(ctx context.Context) (string, error) {
	payload := map[string]any{
		"channel_id": c.channelID,
		"expires_at": time.Now().UTC().Add(24 * time.Hour).Unix(),
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := c.REST(ctx, http.MethodPost, "/storefront/api-token", nil, payload, &resp); err != nil {
		return "", err
	}
	if resp.Data.Token == "" {
		return "", fmt.Errorf("storefront api-token: no token in response")
	}
	return resp.Data.Token, nil
}

// StorefrontGraphQLURL returns the public storefront GraphQL endpoint
func (c *Client) StorefrontGraphQLURL() string {
	return fmt.Sprintf(storefrontGQLFormat, c.storeHash)
}

// productResourceID formats a product ID as the platform's global ID
func productResourceID(productID int) string {
	return fmt.Sprintf("bc/store/product/%d", productID)
}

// channelResourceID formats a channel ID as the platform's global ID
func channelResourceID(channelID int) string {
	return fmt.Sprintf("bc/store/channel/%d", channelID)
}
