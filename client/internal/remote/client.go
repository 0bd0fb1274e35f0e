package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/Skotchmaster/inventory/client/internal/inventory"
)

const apiPrefix = "/api/v1"

// Client talks to the gateway. The session cookies live in its jar, so one
// Client is one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ Store = (*Client)(nil)
	_ Auth  = (*Client)(nil)
)

// NewClient builds a client for baseURL. A zero timeout waits for as long as
// ctx allows.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Op: op, Message: err.Error(), Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RemoteError{Op: op, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var eb errorBody
		if json.Unmarshal(raw, &eb) != nil || eb.Message == "" {
			eb.Message = strings.TrimSpace(string(raw))
		}
		if eb.Message == "" {
			eb.Message = http.StatusText(resp.StatusCode)
		}
		return &RemoteError{Op: op, Status: resp.StatusCode, Message: eb.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Op: op, Status: resp.StatusCode, Message: "malformed response: " + err.Error(), Err: err}
	}
	return nil
}

func kindPath(kind string) string {
	return apiPrefix + "/" + url.PathEscape(kind)
}

func (c *Client) ListRecords(ctx context.Context, kind string) ([]inventory.Record, error) {
	records := []inventory.Record{}
	if err := c.do(ctx, "listRecords", http.MethodGet, kindPath(kind), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) InsertRecord(ctx context.Context, kind string, f inventory.Fields) error {
	return c.do(ctx, "insertRecord", http.MethodPost, kindPath(kind), f, nil)
}

func (c *Client) UpdateRecord(ctx context.Context, kind, id string, f inventory.Fields) error {
	return c.do(ctx, "updateRecord", http.MethodPatch, kindPath(kind)+"/"+url.PathEscape(id), f, nil)
}

func (c *Client) DeleteRecord(ctx context.Context, kind, id string) error {
	return c.do(ctx, "deleteRecord", http.MethodDelete, kindPath(kind)+"/"+url.PathEscape(id), nil, nil)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) error {
	return c.do(ctx, "signIn", http.MethodPost, apiPrefix+"/auth/login", credentials{email, password}, nil)
}

func (c *Client) SignUp(ctx context.Context, email, password string) error {
	return c.do(ctx, "signUp", http.MethodPost, apiPrefix+"/auth/signup", credentials{email, password}, nil)
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, "signOut", http.MethodPost, apiPrefix+"/auth/logout", nil, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var u User
	if err := c.do(ctx, "getCurrentUser", http.MethodGet, apiPrefix+"/auth/user", nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
