package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/samber/mo"

	"slackrelay/clients"
	"slackrelay/core"
)

const defaultHTTPTimeout = 10 * time.Second

// JiraClient implements clients.JiraClient on top of go-jira with basic auth
type JiraClient struct {
	api *gojira.Client
}

// NewJiraClient creates a client for the tracker at domain. A bare host gets an https scheme.
func NewJiraClient(domain, username, password string) (clients.JiraClient, error) {
	if domain == "" || username == "" || password == "" {
		return nil, fmt.Errorf("%w: jira domain and credentials are required", core.ErrNotConfigured)
	}

	baseURL := domain
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	transport := gojira.BasicAuthTransport{
		Username: username,
		Password: password,
	}
	httpClient := transport.Client()
	httpClient.Timeout = defaultHTTPTimeout

	api, err := gojira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &JiraClient{api: api}, nil
}

// GetIssue fetches the summary and description of a single issue
func (c *JiraClient) GetIssue(ctx context.Context, issueKey string) (*clients.JiraIssue, error) {
	issue, resp, err := c.api.Issue.GetWithContext(ctx, issueKey, &gojira.GetQueryOptions{
		Fields: "summary,description",
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("jira issue %s not found: %w", issueKey, err)
		}
		return nil, fmt.Errorf("failed to fetch jira issue %s: %w", issueKey, err)
	}

	result := &clients.JiraIssue{
		Key:         issue.Key,
		Description: mo.None[string](),
	}
	if result.Key == "" {
		result.Key = issueKey
	}
	if issue.Fields != nil {
		result.Summary = issue.Fields.Summary
		if strings.TrimSpace(issue.Fields.Description) != "" {
			result.Description = mo.Some(issue.Fields.Description)
		}
	}

	return result, nil
}
