package predict

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultPath is where the classifier listens for drawings.
const DefaultPath = "/api/predict-digit"

// Predictor classifies a PNG-encoded drawing.
type Predictor interface {
	Predict(ctx context.Context, png []byte) (*Result, error)
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("prediction failed with status %d", e.Code)
	}
	return fmt.Sprintf("prediction failed with status %d: %s", e.Code, e.Body)
}

// Client talks to the remote digit classifier over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *log.Logger
}

// NewClient returns a Client posting to endpoint. A zero timeout means
// requests wait until the context is cancelled.
func NewClient(endpoint string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (c *Client) Endpoint() string { return c.endpoint }

// EncodeDataURI wraps PNG bytes in a data URI.
func EncodeDataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// Predict posts the drawing and decodes the classifier's answer.
func (c *Client) Predict(ctx context.Context, png []byte) (*Result, error) {
	body, err := json.Marshal(Request{Image: EncodeDataURI(png)})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.logger.Debug("prediction received",
		"request_id", reqID,
		"digit", string(result.Prediction),
		"confidence", float64(result.Confidence),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return &result, nil
}

// Health checks the service's health route, which sits next to the
// prediction route (/api/predict-digit -> /api/health).
func (c *Client) Health(ctx context.Context) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	u.Path = path.Join(path.Dir(u.Path), "health")
	u.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
