package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
)

// ErrNameTaken is returned by CreateSite when the requested subdomain is
// already claimed; the caller retries once with a uniqueness suffix.
var ErrNameTaken = errors.New("site name already taken")

type Site struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Deploy reports which file digests the host does not have yet. Only those
// bodies are uploaded, so unchanged re-deploys transfer nothing.
type Deploy struct {
	ID       string   `json:"id"`
	Required []string `json:"required"`
}

type Client struct {
	cfg    *Config
	client http.Client
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg,
		http.Client{Timeout: cfg.timeout},
	}
}

func (c *Client) CreateSite(ctx context.Context, name string) (*Site, error) {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, "POST", "/sites", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return nil, ErrNameTaken
	default:
		return nil, c.upstream(resp)
	}

	var site Site
	if err := json.NewDecoder(resp.Body).Decode(&site); err != nil {
		return nil, errs.UpstreamError{Service: "hosting", Err: err}
	}
	return &site, nil
}

func (c *Client) GetSite(ctx context.Context, siteID string) (*Site, error) {
	resp, err := c.do(ctx, "GET", "/sites/"+siteID, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.NotFoundError{Entity: "site", ID: siteID}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.upstream(resp)
	}
	var site Site
	if err := json.NewDecoder(resp.Body).Decode(&site); err != nil {
		return nil, errs.UpstreamError{Service: "hosting", Err: err}
	}
	return &site, nil
}

func (c *Client) Deploy(ctx context.Context, siteID string, files map[string]string) (*Deploy, error) {
	body, err := json.Marshal(map[string]interface{}{"files": files})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, "POST", fmt.Sprintf("/sites/%s/deploys", siteID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.upstream(resp)
	}
	var deploy Deploy
	if err := json.NewDecoder(resp.Body).Decode(&deploy); err != nil {
		return nil, errs.UpstreamError{Service: "hosting", Err: err}
	}
	return &deploy, nil
}

func (c *Client) UploadFile(ctx context.Context, deployID, path string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, "PUT",
		fmt.Sprintf("%s/deploys/%s/files%s", c.cfg.baseURL, deployID, path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", "Bearer "+c.cfg.token)
	resp, err := c.client.Do(req)
	if err != nil {
		return errs.UpstreamError{Service: "hosting", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.upstream(resp)
	}
	return nil
}

// DeleteSite tolerates an already-deleted site; 404 counts as success.
func (c *Client) DeleteSite(ctx context.Context, siteID string) error {
	resp, err := c.do(ctx, "DELETE", "/sites/"+siteID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	}
	return c.upstream(resp)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.token)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.UpstreamError{Service: "hosting", Err: err}
	}
	return resp, nil
}

func (c *Client) upstream(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return errs.UpstreamError{
		Service: "hosting",
		Err:     fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(payload)),
	}
}
