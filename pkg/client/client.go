// Package client talks to the reply endpoint over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mailreply-be/internal/dto"
	"mailreply-be/internal/pkg/apperror"
	"mailreply-be/internal/pkg/serverutils"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Details []apperror.FieldError
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	msgs := make([]string, len(e.Details))
	for i, d := range e.Details {
		msgs[i] = d.Message
	}
	return fmt.Sprintf("status %d: %s (%s)", e.Status, e.Message, strings.Join(msgs, "; "))
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Translate(ctx context.Context, customerText string) (*dto.TranslateResponse, error) {
	var res dto.TranslateResponse
	err := c.postReply(ctx, dto.TranslateRequest{Action: dto.ActionTranslate, CustomerText: customerText}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) TranslateToEnglish(ctx context.Context, text string) (*dto.TranslateToEnglishResponse, error) {
	var res dto.TranslateToEnglishResponse
	err := c.postReply(ctx, dto.TranslateToEnglishRequest{Action: dto.ActionTranslateToEnglish, Text: text}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	body := *req
	body.Action = dto.ActionGenerate

	var res dto.GenerateResponse
	if err := c.postReply(ctx, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	var res serverutils.BaseResponse[dto.CatalogResponse]
	if err := c.do(ctx, http.MethodGet, "/api/catalog", nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (c *Client) postReply(ctx context.Context, payload any, out any) error {
	return c.do(ctx, http.MethodPost, "/api/reply", payload, out)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody serverutils.ErrorBody
		if json.Unmarshal(bodyBytes, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.Details = errBody.Details
		}
		return apiErr
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
