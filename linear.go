package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const issueCreateMutation = `
mutation IssueCreate($input: IssueCreateInput!) {
    issueCreate(input: $input) {
        success
        issue {
            id
            title
        }
    }
}
`

// IssueCreateInput is the variables block of the IssueCreate mutation.
type IssueCreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TeamID      string   `json:"teamId"`
	LabelIDs    []string `json:"labelIds"`
}

type graphqlRequest struct {
	Query     string `json:"query"`
	Variables struct {
		Input IssueCreateInput `json:"input"`
	} `json:"variables"`
}

type issueCreateResponse struct {
	Data struct {
		IssueCreate struct {
			Success bool `json:"success"`
			Issue   struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"issue"`
		} `json:"issueCreate"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// LinearClient submits issue drafts to the Linear GraphQL API.
type LinearClient struct {
	url         string
	apiKey      string
	teamID      string
	baseLabelID string
	httpClient  *http.Client
}

func NewLinearClient(url, apiKey, teamID, baseLabelID string) *LinearClient {
	return &LinearClient{
		url:         url,
		apiKey:      apiKey,
		teamID:      teamID,
		baseLabelID: baseLabelID,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// labelIDs returns the label set for a draft: the fixed base label plus
// the chosen component, when there is one.
func labelIDs(draft IssueDraft, baseLabelID string) []string {
	ids := []string{baseLabelID}
	if draft.ComponentID != "" {
		ids = append(ids, draft.ComponentID)
	}
	return ids
}

// buildIssueInput maps a draft onto the mutation input. The reporter
// attribution line is appended only when an email was resolved.
func buildIssueInput(draft IssueDraft, teamID, baseLabelID string) IssueCreateInput {
	description := draft.Description
	if draft.ReporterEmail != "" {
		description = fmt.Sprintf("%s\n\nReported by: %s", description, draft.ReporterEmail)
	}
	return IssueCreateInput{
		Title:       draft.Title,
		Description: description,
		TeamID:      teamID,
		LabelIDs:    labelIDs(draft, baseLabelID),
	}
}

// Submit sends exactly one IssueCreate mutation for the draft and
// interprets the response. It never retries; the caller decides what to
// surface on failure.
func (c *LinearClient) Submit(ctx context.Context, draft IssueDraft) SubmissionResult {
	var request graphqlRequest
	request.Query = issueCreateMutation
	request.Variables.Input = buildIssueInput(draft, c.teamID, c.baseLabelID)

	payload, err := json.Marshal(request)
	if err != nil {
		return SubmissionResult{Outcome: OutcomeTransportError, Body: fmt.Sprintf("failed to marshal mutation: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return SubmissionResult{Outcome: OutcomeTransportError, Body: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SubmissionResult{Outcome: OutcomeTransportError, Body: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SubmissionResult{Outcome: OutcomeTransportError, StatusCode: resp.StatusCode, Body: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return SubmissionResult{Outcome: OutcomeTransportError, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result issueCreateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return SubmissionResult{Outcome: OutcomeTransportError, StatusCode: resp.StatusCode, Body: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if !result.Data.IssueCreate.Success {
		reasons := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			reasons = append(reasons, e.Message)
		}
		return SubmissionResult{Outcome: OutcomeRejected, Reasons: reasons}
	}

	return SubmissionResult{
		Outcome:    OutcomeCreated,
		IssueID:    result.Data.IssueCreate.Issue.ID,
		IssueTitle: result.Data.IssueCreate.Issue.Title,
	}
}
