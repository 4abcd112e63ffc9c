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

	"github.com/madik/projectdesk/internal/model"
)

// ErrUnauthorized signals an authorization failure (expired or invalid
// token). The client never clears the session or redirects itself; the
// caller owns that reaction.
var ErrUnauthorized = errors.New("unauthorized")

// Session is the token storage the client reads from and, on login,
// writes to.
type Session interface {
	SetToken(token string) error
	Token() (string, bool)
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Client is the typed API surface over the projectdesk REST service.
// Every call except Login and Register attaches the session token as a
// bearer credential.
type Client struct {
	baseURL string
	http    *http.Client
	session Session
}

func New(baseURL string, session Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
}

// Login authenticates and persists the returned token into the session.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &res, false); err != nil {
		return err
	}
	if res.Token == "" {
		return fmt.Errorf("login response carried no token")
	}
	return c.session.SetToken(res.Token)
}

func (c *Client) Register(ctx context.Context, creds Credentials) error {
	return c.do(ctx, http.MethodPost, "/auth/register", creds, nil, false)
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects, true); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, payload model.Project) (*model.Project, error) {
	var created model.Project
	if err := c.do(ctx, http.MethodPost, "/projects", payload, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, payload model.Project) (*model.Project, error) {
	var updated model.Project
	path := fmt.Sprintf("/projects/%d", id)
	if err := c.do(ctx, http.MethodPut, path, payload, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil, true)
}

func (c *Client) PendingPayments(ctx context.Context) ([]model.PendingPayment, error) {
	var rows []model.PendingPayment
	if err := c.do(ctx, http.MethodGet, "/payments/pending", nil, &rows, true); err != nil {
		return nil, err
	}
	return rows, nil
}

// ExportPendingPayments downloads the pending-payments workbook.
func (c *Client) ExportPendingPayments(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/payments/pending/export")
}

// ProjectStatement downloads a project's payment statement PDF.
func (c *Client) ProjectStatement(ctx context.Context, id int64) ([]byte, error) {
	return c.download(ctx, fmt.Sprintf("/projects/%d/statement", id))
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token, ok := c.session.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return err
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return nil, err
	}
	return io.ReadAll(res.Body)
}

func checkStatus(res *http.Response) error {
	if res.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("request failed (%d): %s", res.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("request failed (%d)", res.StatusCode)
}
