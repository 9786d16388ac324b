package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lidofinance/ensreg/client/api/http_api/responses"
)

const requestTimeout = 2 * time.Minute

// apiClient talks to the daemon HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(host string) *apiClient {
	return &apiClient{
		baseURL: "http://" + host,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func registrationPath(name string, suffix string) string {
	return "/registrations/" + url.PathEscape(name) + suffix
}

// do sends the request and decodes the response result into result.
func (c *apiClient) do(method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	response := responses.BaseResponse{Result: result}
	if err = json.Unmarshal(responseBody, &response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if response.ErrorMessage != "" {
		return fmt.Errorf("%s", response.ErrorMessage)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
