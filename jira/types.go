package jira

import "encoding/json"

// types.go - Data structures for the Jira REST integration

// RawIssue is one issue as returned by the search API, before any
// normalization. Date fields are kept as the raw strings Jira sent;
// parsing them is the board package's job. Fields holds the unparsed
// fields payload so configurable custom fields can be read by key.
type RawIssue struct {
	Key         string
	Summary     string
	Status      string
	Priority    string // "" when unset
	Assignee    string // "" when unset
	Reporter    string // "" when unset
	IssueType   string
	Labels      []string
	Created     string
	Updated     string
	DueDate     string
	Description string
	Fields      []byte
}

// UserInfo describes the authenticated Jira account
type UserInfo struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// Jira search API response structures
type searchResponse struct {
	Issues []struct {
		Key    string          `json:"key"`
		Fields json.RawMessage `json:"fields"`
	} `json:"issues"`
	Total int `json:"total"`
}

type issueFields struct {
	Summary string `json:"summary"`
	Status  struct {
		Name string `json:"name"`
	} `json:"status"`
	Priority *struct {
		Name string `json:"name"`
	} `json:"priority"`
	Assignee *struct {
		DisplayName string `json:"displayName"`
	} `json:"assignee"`
	Reporter *struct {
		DisplayName string `json:"displayName"`
	} `json:"reporter"`
	IssueType struct {
		Name string `json:"name"`
	} `json:"issuetype"`
	Labels      []string `json:"labels"`
	Created     string   `json:"created"`
	Updated     string   `json:"updated"`
	DueDate     string   `json:"duedate"`
	Description string   `json:"description"`
}
