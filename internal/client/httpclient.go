package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/common"
	emailDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/email"
	summaryDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-summarizer/pkg/mailer"
)

// DefaultBaseURL is where the API listens by default
const DefaultBaseURL = "http://localhost:5000"

// API is the summarizer REST API as seen by the client
type API interface {
	Generate(ctx context.Context, transcript, prompt string) (*summaryDTO.GenerateResponse, error)
	Save(ctx context.Context, id, edited string) (*summaryDTO.SummaryResponse, error)
	Fetch(ctx context.Context, id string) (*summaryDTO.SummaryResponse, error)
	SendEmail(ctx context.Context, to, subject, body string) (*mailer.DeliveryInfo, error)
}

// APIError is a non-2xx response from the API
type APIError struct {
	Status  int
	Message string
	Code    string
	// Generated is set when the server produced a summary it could not store
	Generated string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api returned %d [%s]: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
}

// HTTPClient calls the API over HTTP/JSON
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for baseURL. A nil http.Client gets no
// timeout: a hung request stays pending until ctx is cancelled.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  hc,
	}
}

// BaseURL returns the API root
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Generate(ctx context.Context, transcript, prompt string) (*summaryDTO.GenerateResponse, error) {
	var out summaryDTO.GenerateResponse
	err := c.do(ctx, http.MethodPost, "/api/ai/generate", summaryDTO.GenerateRequest{
		Transcript: transcript,
		Prompt:     prompt,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Save(ctx context.Context, id, edited string) (*summaryDTO.SummaryResponse, error) {
	var out summaryDTO.DocResponse
	err := c.do(ctx, http.MethodPost, "/api/ai/save", summaryDTO.SaveRequest{
		SummaryID: id,
		Edited:    edited,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Doc, nil
}

func (c *HTTPClient) Fetch(ctx context.Context, id string) (*summaryDTO.SummaryResponse, error) {
	var out summaryDTO.DocResponse
	if err := c.do(ctx, http.MethodGet, "/api/ai/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Doc, nil
}

func (c *HTTPClient) SendEmail(ctx context.Context, to, subject, body string) (*mailer.DeliveryInfo, error) {
	var out emailDTO.SendResponse
	err := c.do(ctx, http.MethodPost, "/api/email/send", emailDTO.SendRequest{
		To:      emailDTO.Recipients{to},
		Subject: subject,
		Body:    body,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Info, nil
}

// Ping reads the liveness text from GET /
func (c *HTTPClient) Ping(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Message: buf.String()}
	}
	return buf.String(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env common.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
			if env.Error != "" {
				apiErr.Message = env.Error
			}
			if code, ok := env.Code.(string); ok {
				apiErr.Code = code
			}
			apiErr.Generated = env.Generated
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
