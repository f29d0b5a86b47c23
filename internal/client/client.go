// Package client is the HTTP client the ironplan CLI uses to talk to
// an ironplan server. Server URL and bearer token live in
// ~/.ironplan/config.yaml.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/existflow/ironplan/internal/model"
	"gopkg.in/yaml.v3"
)

// Config holds client connection state
type Config struct {
	ServerURL string `yaml:"server_url"`
	Token     string `yaml:"token"`
}

// Client talks to the ironplan API
type Client struct {
	config     *Config
	configPath string
	httpClient *http.Client
}

// New creates a client, loading any saved config
func New() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		configPath: filepath.Join(home, ".ironplan", "config.yaml"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	c.loadConfig()

	return c, nil
}

func (c *Client) loadConfig() {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		c.config = &Config{ServerURL: "http://localhost:5000"}
		return
	}

	c.config = &Config{}
	if err := yaml.Unmarshal(data, c.config); err != nil || c.config.ServerURL == "" {
		c.config = &Config{ServerURL: "http://localhost:5000"}
	}
}

func (c *Client) saveConfig() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c.config)
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0600)
}

// SetServer sets the server URL
func (c *Client) SetServer(serverURL string) error {
	c.config.ServerURL = serverURL
	return c.saveConfig()
}

// IsLoggedIn reports whether a token is saved
func (c *Client) IsLoggedIn() bool {
	return c.config.Token != ""
}

// apiError is the server's error envelope
type apiError struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Errors) > 0 {
		msg := e.Errors[0].Message
		for _, fe := range e.Errors[1:] {
			msg += "; " + fe.Message
		}
		return msg
	}
	return "request failed"
}

// do sends a JSON request and decodes the response into out (which may
// be nil)
func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.config.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &apiError{}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account on the server
func (c *Client) Register(name, email, password string) error {
	return c.do(http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
}

// Login authenticates and saves the bearer token
func (c *Client) Login(email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}

	c.config.Token = resp.Token
	return c.saveConfig()
}

// Logout discards the saved token. Tokens are stateless, so there is
// nothing to revoke server-side.
func (c *Client) Logout() error {
	c.config.Token = ""
	return c.saveConfig()
}

// ProjectPage is one page of the caller's projects
type ProjectPage struct {
	Page          int             `json:"page"`
	Limit         int             `json:"limit"`
	TotalPages    int             `json:"totalPages"`
	TotalProjects int             `json:"totalProjects"`
	Projects      []model.Project `json:"projects"`
}

// ListProjects fetches one page of the caller's projects
func (c *Client) ListProjects(page, limit int) (*ProjectPage, error) {
	out := &ProjectPage{}
	path := fmt.Sprintf("/projects?page=%d&limit=%d", page, limit)
	if err := c.do(http.MethodGet, path, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject creates a project owned by the caller
func (c *Client) CreateProject(name, description string) (*model.Project, error) {
	out := &model.Project{}
	err := c.do(http.MethodPost, "/projects", map[string]string{
		"name":        name,
		"description": description,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetProjectStatus updates a project's status. The server only allows
// this for the project's owner.
func (c *Client) SetProjectStatus(id, status string) (*model.Project, error) {
	out := &model.Project{}
	err := c.do(http.MethodPut, "/projects/"+url.PathEscape(id), map[string]string{
		"status": status,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProject deletes a project the caller owns
func (c *Client) DeleteProject(id string) error {
	return c.do(http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

// TaskPage is one page of tasks
type TaskPage struct {
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
	TotalTasks int          `json:"totalTasks"`
	Tasks      []model.Task `json:"tasks"`
}

// ListTasks fetches one page of tasks matching the given filters.
// Empty filter values are omitted from the query.
func (c *Client) ListTasks(projectID, status, assignedUserID string, page, limit int) (*TaskPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if projectID != "" {
		q.Set("projectId", projectID)
	}
	if status != "" {
		q.Set("status", status)
	}
	if assignedUserID != "" {
		q.Set("assignedUserId", assignedUserID)
	}

	out := &TaskPage{}
	if err := c.do(http.MethodGet, "/tasks?"+q.Encode(), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task under a project
func (c *Client) CreateTask(projectID, title, description, assignedUserID string) (*model.Task, error) {
	body := map[string]string{
		"title":       title,
		"description": description,
	}
	if assignedUserID != "" {
		body["assignedUserId"] = assignedUserID
	}

	out := &model.Task{}
	err := c.do(http.MethodPost, "/projects/"+url.PathEscape(projectID)+"/tasks", body, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetTaskStatus updates a task's status. The server only allows this
// for the task's assignee.
func (c *Client) SetTaskStatus(id, status string) (*model.Task, error) {
	out := &model.Task{}
	err := c.do(http.MethodPut, "/tasks/"+url.PathEscape(id), map[string]string{
		"status": status,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// Me fetches the authenticated user
func (c *Client) Me() (*model.User, error) {
	out := &model.User{}
	if err := c.do(http.MethodGet, "/me", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
