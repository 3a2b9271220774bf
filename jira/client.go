package jira

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"aicockpit-dashboard/config"
)

// Client handles Jira API operations
type Client struct {
	config     *config.Config
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a new Jira client
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Jira.TimeoutSeconds) * time.Second
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: cfg.Jira.MaxRetries,
	}
}

// makeRequest makes an authenticated GET request with a small retry budget
// for transport errors and server-side failures.
func (c *Client) makeRequest(rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying Jira request (attempt %d/%d): %v", attempt, c.maxRetries, lastErr)
		}

		req, err := http.NewRequest(http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.config.Email, c.config.APIToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
		if readErr != nil {
			lastErr = readErr
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

// Search runs a JQL query and returns the matching issues with all fields.
func (c *Client) Search(jql string, maxResults int) ([]RawIssue, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("fields", "*all")

	searchURL := fmt.Sprintf("%s/rest/api/2/search?%s", c.config.Server, params.Encode())

	body, err := c.makeRequest(searchURL)
	if err != nil {
		return nil, fmt.Errorf("error fetching Jira issues: %w", err)
	}

	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error parsing Jira response: %w", err)
	}

	issues := make([]RawIssue, 0, len(response.Issues))
	for _, issue := range response.Issues {
		var fields issueFields
		if err := json.Unmarshal(issue.Fields, &fields); err != nil {
			log.Printf("Skipping issue %s with malformed fields: %v", issue.Key, err)
			continue
		}

		raw := RawIssue{
			Key:         issue.Key,
			Summary:     fields.Summary,
			Status:      fields.Status.Name,
			IssueType:   fields.IssueType.Name,
			Labels:      fields.Labels,
			Created:     fields.Created,
			Updated:     fields.Updated,
			DueDate:     fields.DueDate,
			Description: fields.Description,
			Fields:      []byte(issue.Fields),
		}
		if fields.Priority != nil {
			raw.Priority = fields.Priority.Name
		}
		if fields.Assignee != nil {
			raw.Assignee = fields.Assignee.DisplayName
		}
		if fields.Reporter != nil {
			raw.Reporter = fields.Reporter.DisplayName
		}
		issues = append(issues, raw)
	}

	return issues, nil
}

// CurrentUser verifies the configured credentials against the myself
// endpoint and returns the authenticated account.
func (c *Client) CurrentUser() (*UserInfo, error) {
	body, err := c.makeRequest(fmt.Sprintf("%s/rest/api/2/myself", c.config.Server))
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	var user UserInfo
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("error parsing user response: %w", err)
	}
	return &user, nil
}
