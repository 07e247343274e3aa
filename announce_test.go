package main

import (
	"context"
	"strings"
	"testing"
)

func TestConfirmationMessage(t *testing.T) {
	config := Config{
		ConfirmationChannelID: "C99",
		ConfirmationTTL:       172800,
	}
	result := SubmissionResult{
		Outcome:    OutcomeCreated,
		IssueID:    "ISS-1",
		IssueTitle: "Login broken",
	}

	msg := confirmationMessage(result, "reporter", config)

	if msg.Channel != "C99" {
		t.Errorf("Expected channel 'C99', got '%s'", msg.Channel)
	}
	if msg.TTL != 172800 {
		t.Errorf("Expected TTL 172800, got %d", msg.TTL)
	}
	if !strings.Contains(msg.Text, "@reporter") {
		t.Errorf("Expected text to name the reporter, got %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "Login broken") || !strings.Contains(msg.Text, "ISS-1") {
		t.Errorf("Expected text to carry issue title and id, got %q", msg.Text)
	}

	if msg.Metadata["event_type"] != issueCreatedEventType {
		t.Errorf("Expected event type '%s', got %v", issueCreatedEventType, msg.Metadata["event_type"])
	}
	payload, ok := msg.Metadata["event_payload"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected event_payload metadata map")
	}
	if payload["username"] != "reporter" || payload["issue_id"] != "ISS-1" || payload["issue_title"] != "Login broken" {
		t.Errorf("Unexpected event payload: %v", payload)
	}
}

func TestSendConfirmationDisabled(t *testing.T) {
	result := SubmissionResult{Outcome: OutcomeCreated, IssueID: "ISS-1", IssueTitle: "Login broken"}

	// No Redis client configured: must be a no-op
	sendConfirmation(context.Background(), nil, result, "reporter", Config{ConfirmationChannelID: "C99"})
}
