package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

const testBaseLabel = "59f1342b-9ba3-4168-b3f6-a097a3de40af"

func TestLabelIDs(t *testing.T) {
	draft := IssueDraft{ComponentID: "dd51de8b-6f12-47a4-94a8-73b090b0303e"}
	want := []string{testBaseLabel, "dd51de8b-6f12-47a4-94a8-73b090b0303e"}
	if got := labelIDs(draft, testBaseLabel); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected label set %v, got %v", want, got)
	}

	want = []string{testBaseLabel}
	if got := labelIDs(IssueDraft{}, testBaseLabel); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected label set %v without component, got %v", want, got)
	}
}

func TestBuildIssueInputWithReporter(t *testing.T) {
	draft := IssueDraft{
		Title:         "Login broken",
		Description:   "Steps...",
		ComponentID:   "dd51de8b-6f12-47a4-94a8-73b090b0303e",
		ReporterEmail: "a@x.com",
	}

	input := buildIssueInput(draft, "team-1", testBaseLabel)
	if input.Title != "Login broken" {
		t.Errorf("Expected title carried verbatim, got '%s'", input.Title)
	}
	if !strings.HasSuffix(input.Description, "\n\nReported by: a@x.com") {
		t.Errorf("Expected attribution suffix, got %q", input.Description)
	}
	if input.TeamID != "team-1" {
		t.Errorf("Expected team id 'team-1', got '%s'", input.TeamID)
	}
	want := []string{testBaseLabel, "dd51de8b-6f12-47a4-94a8-73b090b0303e"}
	if !reflect.DeepEqual(input.LabelIDs, want) {
		t.Errorf("Expected labelIds %v, got %v", want, input.LabelIDs)
	}
}

func TestBuildIssueInputWithoutReporter(t *testing.T) {
	draft := IssueDraft{Title: "Login broken", Description: "Steps..."}

	input := buildIssueInput(draft, "team-1", testBaseLabel)
	if input.Description != "Steps..." {
		t.Errorf("Expected no attribution without email, got %q", input.Description)
	}
}

func testClient(url string, httpClient *http.Client) *LinearClient {
	return &LinearClient{
		url:         url,
		apiKey:      "lin_api_test",
		teamID:      "team-1",
		baseLabelID: testBaseLabel,
		httpClient:  httpClient,
	}
}

func TestSubmitSuccess(t *testing.T) {
	var gotAuth string
	var gotRequest graphqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("Failed to decode mutation request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"issueCreate": {"success": true, "issue": {"id": "ISS-1", "title": "Login broken"}}}}`))
	}))
	defer server.Close()

	client := testClient(server.URL, server.Client())
	draft := IssueDraft{
		Title:         "Login broken",
		Description:   "Steps...",
		ComponentID:   "dd51de8b-6f12-47a4-94a8-73b090b0303e",
		ReporterEmail: "a@x.com",
	}

	result := client.Submit(context.Background(), draft)
	if result.Outcome != OutcomeCreated {
		t.Fatalf("Expected OutcomeCreated, got %v (%+v)", result.Outcome, result)
	}
	if result.IssueID != "ISS-1" {
		t.Errorf("Expected issue id 'ISS-1', got '%s'", result.IssueID)
	}
	if result.IssueTitle != "Login broken" {
		t.Errorf("Expected issue title 'Login broken', got '%s'", result.IssueTitle)
	}

	if gotAuth != "lin_api_test" {
		t.Errorf("Expected Authorization header 'lin_api_test', got '%s'", gotAuth)
	}
	if !strings.Contains(gotRequest.Query, "issueCreate(input: $input)") {
		t.Errorf("Mutation query missing issueCreate, got %q", gotRequest.Query)
	}
	input := gotRequest.Variables.Input
	if !strings.HasSuffix(input.Description, "\n\nReported by: a@x.com") {
		t.Errorf("Expected attribution suffix on the wire, got %q", input.Description)
	}
	want := []string{testBaseLabel, "dd51de8b-6f12-47a4-94a8-73b090b0303e"}
	if !reflect.DeepEqual(input.LabelIDs, want) {
		t.Errorf("Expected labelIds %v on the wire, got %v", want, input.LabelIDs)
	}
}

func TestSubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"issueCreate": {"success": false}}, "errors": [{"message": "label not found"}]}`))
	}))
	defer server.Close()

	result := testClient(server.URL, server.Client()).Submit(context.Background(), IssueDraft{Title: "x"})
	if result.Outcome != OutcomeRejected {
		t.Fatalf("Expected OutcomeRejected for success:false with status 200, got %v", result.Outcome)
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != "label not found" {
		t.Errorf("Expected rejection reasons from error list, got %v", result.Reasons)
	}
}

func TestSubmitTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	result := testClient(server.URL, server.Client()).Submit(context.Background(), IssueDraft{Title: "x"})
	if result.Outcome != OutcomeTransportError {
		t.Fatalf("Expected OutcomeTransportError, got %v", result.Outcome)
	}
	if result.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", result.StatusCode)
	}
	if result.Body != "upstream down" {
		t.Errorf("Expected raw body carried over, got %q", result.Body)
	}
}

func TestSubmitUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	result := testClient(url, &http.Client{}).Submit(context.Background(), IssueDraft{Title: "x"})
	if result.Outcome != OutcomeTransportError {
		t.Fatalf("Expected OutcomeTransportError for unreachable endpoint, got %v", result.Outcome)
	}
	if result.StatusCode != 0 {
		t.Errorf("Expected status 0 without a response, got %d", result.StatusCode)
	}
}
