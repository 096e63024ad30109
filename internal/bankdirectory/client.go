package bankdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client queries a remote directory service over REST:
// GET {base}/accounts/{bank_code}/{account_no}.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

type lookupResponse struct {
	Data struct {
		BankCode    string `json:"bank_code"`
		AccountNo   string `json:"account_no"`
		AccountName string `json:"account_name"`
	} `json:"data"`
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

func (c *Client) LookupHolder(ctx context.Context, bankCode, accountNo string) (string, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/%s", c.baseURL, url.PathEscape(bankCode), url.PathEscape(accountNo))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("request creation error: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("bank directory request failed", "error", err, "bank_code", bankCode)
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("response read error: %w", err)
	}

	c.logger.Debug("bank directory responded",
		"bank_code", bankCode,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrAccountNotFound
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("bank directory error: status %d, response: %s", resp.StatusCode, string(body))
	}

	var out lookupResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("response unmarshal error: %w", err)
	}
	if out.Data.AccountName == "" {
		return "", fmt.Errorf("bank directory returned an empty holder name")
	}
	return out.Data.AccountName, nil
}
