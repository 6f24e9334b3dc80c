package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/gymmate/internal/models"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
)

// HTTPClient implements DataSource by calling the GymMate REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the stores live in a running server (possibly over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey is
// sent on mutating calls when non-empty.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends a JSON request and decodes the response into out when it is non-nil.
// 404 and 400 responses are mapped back onto the store sentinel errors.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" && method != http.MethodGet {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("httpclient: %s: %s: %w", path, msg, registry.ErrNotFound)
		case http.StatusBadRequest:
			if strings.HasPrefix(path, "/api/v1/profile") {
				return fmt.Errorf("httpclient: %s: %s: %w", path, msg, profile.ErrInvalidInput)
			}
			return fmt.Errorf("httpclient: %s: %s: %w", path, msg, registry.ErrInvalidInput)
		}
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func programPath(id int) string {
	return "/api/v1/programs/" + strconv.Itoa(id)
}

func (c *HTTPClient) ListPrograms(ctx context.Context) ([]models.Program, error) {
	var programs []models.Program
	if err := c.do(ctx, http.MethodGet, "/api/v1/programs", nil, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (c *HTTPClient) GetProgram(ctx context.Context, id int) (models.Program, error) {
	var p models.Program
	err := c.do(ctx, http.MethodGet, programPath(id), nil, &p)
	return p, err
}

func (c *HTTPClient) AddProgram(ctx context.Context, day, muscle string) (models.Program, error) {
	var p models.Program
	err := c.do(ctx, http.MethodPost, "/api/v1/programs", map[string]string{"day": day, "muscle": muscle}, &p)
	return p, err
}

func (c *HTTPClient) UpdateProgram(ctx context.Context, id int, day, muscle string) (models.Program, error) {
	var p models.Program
	err := c.do(ctx, http.MethodPut, programPath(id), map[string]string{"day": day, "muscle": muscle}, &p)
	return p, err
}

func (c *HTTPClient) DeleteProgram(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, programPath(id), nil, nil)
}

func (c *HTTPClient) SetProgress(ctx context.Context, id int, progress float64) (models.Program, error) {
	var p models.Program
	err := c.do(ctx, http.MethodPut, programPath(id)+"/progress", map[string]float64{"progress": progress}, &p)
	return p, err
}

func (c *HTTPClient) GetProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodGet, "/api/v1/profile", nil, &p)
	return p, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name, age string) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodPatch, "/api/v1/profile", map[string]string{"name": name, "age": age}, &p)
	return p, err
}
