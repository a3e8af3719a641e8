// Package fifteenfive is the HTTP gateway to the 15Five web application.
// It speaks to a mix of official JSON endpoints and reverse-engineered
// browser form endpoints, authenticated with a session cookie and CSRF
// token captured from a logged-in browser.
package fifteenfive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/darylhandley/15five-utils/pkg/domain"
	"github.com/darylhandley/15five-utils/pkg/domain/objective"
	"github.com/darylhandley/15five-utils/pkg/domain/user"
)

// The users endpoint takes a fixed set of include flags; the tool always
// asks for the full directory including inactive users.
const usersQuery = "include_active_only=false&include_avatars=true&include_reviewer_detail=true&include_viewer=true&include_is_active_field=true&include_15five_bot_user=false"

const defaultPageSize = 50

// detailsPattern extracts the objective identifier from a detail page
// URL (.../objectives/details/<digits>/).
var detailsPattern = regexp.MustCompile(`/details/(\d+)/`)

// Session holds the authentication artifacts copied out of a browser:
// the session cookie value, the CSRF token, and the company origin.
type Session struct {
	BaseURL   string
	SessionID string
	CSRFToken string
}

// Client calls the 15Five endpoints. All calls block with a fixed 30s
// timeout; the service's latency is not under this tool's control, and
// nothing here retries — every mutating endpoint has side effects.
type Client struct {
	mu      sync.RWMutex
	session Session
	client  *http.Client
}

// Compile-time check that Client implements the domain gateway.
var _ domain.Gateway = (*Client)(nil)

// NewClient creates a gateway for the given session. The underlying
// HTTP client follows redirects; the create endpoint's redirect chain is
// how the new objective's identifier comes back.
func NewClient(session Session) *Client {
	return &Client{
		session: session,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetSession replaces the authentication artifacts wholesale. Called
// when the operator re-captures cookies and the config file reloads.
func (c *Client) SetSession(session Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// Session returns the current authentication artifacts.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// ObjectiveURL returns the browser link for an objective.
func (c *Client) ObjectiveURL(id int) string {
	return fmt.Sprintf("%s/objectives/details/%d/", c.Session().BaseURL, id)
}

func (c *Client) doGet(ctx context.Context, op, path string) ([]byte, error) {
	session := c.Session()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, session.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cookie", "sessionid="+session.SessionID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode >= 400 {
		return nil, &objective.RemoteError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// Users fetches the full company directory.
func (c *Client) Users(ctx context.Context) ([]user.User, error) {
	body, err := c.doGet(ctx, "list users", "/account/company/users/?"+usersQuery)
	if err != nil {
		return nil, err
	}

	var users []user.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (c *Client) objectivesPage(ctx context.Context, page, pageSize int, filter url.Values) (*objective.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("state", "current")
	for key, vals := range filter {
		for _, v := range vals {
			q.Add(key, v)
		}
	}

	body, err := c.doGet(ctx, "list objectives", "/objectives/api/objectives/?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var p objective.Page
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("list objectives: %w", err)
	}

	return &p, nil
}

// Objectives fetches up to limit current objectives across all users.
func (c *Client) Objectives(ctx context.Context, limit int) ([]objective.Objective, error) {
	pageSize := defaultPageSize
	if limit < pageSize {
		pageSize = limit
	}

	var all []objective.Objective
	for page := 1; len(all) < limit; page++ {
		p, err := c.objectivesPage(ctx, page, pageSize, nil)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Results...)
		if len(p.Results) < pageSize || p.Next == nil {
			break
		}
	}

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (c *Client) objectivesExhaustive(ctx context.Context, filter url.Values) ([]objective.Objective, error) {
	var all []objective.Objective
	for page := 1; ; page++ {
		p, err := c.objectivesPage(ctx, page, defaultPageSize, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Results...)
		if p.Next == nil {
			return all, nil
		}
	}
}

// ObjectivesByUser fetches every current objective owned by the user,
// paginating to exhaustion.
func (c *Client) ObjectivesByUser(ctx context.Context, userID int) ([]objective.Objective, error) {
	return c.objectivesExhaustive(ctx, url.Values{"user": {strconv.Itoa(userID)}})
}

// ObjectivesByParent fetches every current objective linked as a child
// of the given parent, paginating to exhaustion.
func (c *Client) ObjectivesByParent(ctx context.Context, parentID int) ([]objective.Objective, error) {
	return c.objectivesExhaustive(ctx, url.Values{"parent": {strconv.Itoa(parentID)}})
}

// Objective fetches a single objective by identifier.
func (c *Client) Objective(ctx context.Context, id int) (*objective.Objective, error) {
	body, err := c.doGet(ctx, "get objective", fmt.Sprintf("/objectives/api/objectives/%d", id))
	if err != nil {
		return nil, err
	}

	var o objective.Objective
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("get objective: %w", err)
	}

	return &o, nil
}

// CreateObjective submits the create-objective form and returns the new
// objective's identifier, extracted from the redirect to its detail
// page. A response whose final URL carries no identifier is reported as
// a CreatedUnknownIDError: the objective exists server-side and the
// caller must not retry.
func (c *Client) CreateObjective(ctx context.Context, form url.Values) (int, error) {
	session := c.Session()
	createURL := session.BaseURL + "/objectives/create/"
	form.Set("csrfmiddlewaretoken", session.CSRFToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, createURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", session.BaseURL)
	req.Header.Set("Referer", createURL)
	req.Header.Set("X-CSRFToken", session.CSRFToken)
	req.Header.Set("Cookie", fmt.Sprintf("ff_csrf_token=%s; sessionid=%s;", session.CSRFToken, session.SessionID))

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("create objective: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("create objective: %w", err)
	}

	if resp.StatusCode >= 400 {
		return 0, &objective.RemoteError{Op: "create objective", StatusCode: resp.StatusCode, Body: string(body)}
	}

	// resp.Request is the last request of the redirect chain; a
	// successful create lands on the new objective's detail page.
	finalURL := resp.Request.URL.String()
	m := detailsPattern.FindStringSubmatch(resp.Request.URL.Path)
	if m == nil {
		return 0, &objective.CreatedUnknownIDError{Location: finalURL}
	}

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, &objective.CreatedUnknownIDError{Location: finalURL}
	}

	return id, nil
}

// UpdateKeyResult pushes an integer progress value onto a single key
// result.
func (c *Client) UpdateKeyResult(ctx context.Context, keyResultID, value int) error {
	session := c.Session()

	form := url.Values{}
	form.Set("csrfmiddlewaretoken", session.CSRFToken)
	form.Set("key_result_id", strconv.Itoa(keyResultID))
	form.Set("value", strconv.Itoa(value))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		session.BaseURL+"/objectives/ajax/update-key-result/", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRFToken", session.CSRFToken)
	req.Header.Set("Cookie", fmt.Sprintf("ff_csrf_token=%s; sessionid=%s;", session.CSRFToken, session.SessionID))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("update key result %d: %w", keyResultID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("update key result %d: %w", keyResultID, err)
	}
	if resp.StatusCode >= 400 {
		return &objective.RemoteError{
			Op:         fmt.Sprintf("update key result %d", keyResultID),
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return nil
}
