package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const issueCreatedEventType = "linear_issue_created"

// confirmationMessage builds the SlackLiner message announcing a
// created issue.
func confirmationMessage(result SubmissionResult, username string, config Config) SlackLinerMessage {
	message := fmt.Sprintf("✅ *Linear Issue Created by @%s*\n\n*Title:* %s\n*ID:* %s",
		username, result.IssueTitle, result.IssueID)

	metadata := map[string]interface{}{
		"event_type": issueCreatedEventType,
		"event_payload": map[string]interface{}{
			"username":    username,
			"issue_id":    result.IssueID,
			"issue_title": result.IssueTitle,
		},
	}

	return SlackLinerMessage{
		Channel:  config.ConfirmationChannelID,
		Text:     message,
		TTL:      config.ConfirmationTTL,
		Metadata: metadata,
	}
}

// sendConfirmation pushes a confirmation message for a created issue
// onto the SlackLiner list. Failures are logged only; the issue already
// exists by the time this runs.
func sendConfirmation(ctx context.Context, rdb *redis.Client, result SubmissionResult, username string, config Config) {
	if rdb == nil || config.ConfirmationChannelID == "" {
		return
	}

	payload, err := json.Marshal(confirmationMessage(result, username, config))
	if err != nil {
		Error("Error marshaling SlackLiner message: %v", err)
		return
	}

	if err := rdb.RPush(ctx, config.RedisSlackLinerList, payload).Err(); err != nil {
		Error("Error pushing to SlackLiner list: %v", err)
		return
	}

	Debug("Confirmation message sent to SlackLiner for issue: %s", result.IssueID)
}
