package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"
)

// slackAPI is the surface of the Slack Web API the bridge needs.
type slackAPI interface {
	emailLookup
	threadLookup
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	PostMessage(ctx context.Context, channelID, threadTS, text string) error
}

// issueSubmitter sends one issue mutation per call.
type issueSubmitter interface {
	Submit(ctx context.Context, draft IssueDraft) SubmissionResult
}

// Bridge wires the classifier, extractor and submission adapter behind
// the three webhook routes. It holds no per-request state.
type Bridge struct {
	config     Config
	components []ComponentOption
	slack      slackAPI
	submitter  issueSubmitter
	rdb        *redis.Client
}

func NewBridge(config Config, components []ComponentOption, api slackAPI, submitter issueSubmitter, rdb *redis.Client) *Bridge {
	return &Bridge{
		config:     config,
		components: components,
		slack:      api,
		submitter:  submitter,
		rdb:        rdb,
	}
}

func (b *Bridge) Router() http.Handler {
	router := chi.NewRouter()
	router.Post("/slack/command", b.handleCommand)
	router.Post("/slack/interactions", b.handleInteraction)
	router.Post("/slack/events", b.handleEvents)
	return router
}

func (b *Bridge) handleCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Warn("Failed to parse command body: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	event := classifyCommand(r.PostForm, b.config.SlashCommand)
	if event.Kind != EventCommand {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	cmd := event.Command

	Info("Received %s command from user %s", b.config.SlashCommand, cmd.UserName)

	modal := createIssueModal(b.config.ModalCallbackID, cmd.PrefillText, b.components)
	if err := b.slack.OpenView(r.Context(), cmd.TriggerID, modal); err != nil {
		Error("Error opening modal: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{"error": "error processing request"})
		return
	}

	Debug("Modal opened for user %s", cmd.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *Bridge) handleInteraction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Warn("Failed to parse interaction body: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	event, err := classifyInteraction(r.PostForm, b.config.ModalCallbackID)
	if err != nil {
		// The one inbound shape Slack expects an error status for.
		Warn("Rejecting interaction: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if event.Kind != EventSubmission {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	sub := event.Submission

	Info("Received view submission from user %s", sub.Username)

	draft, err := extractFromSubmission(r.Context(), sub, b.slack)
	if err != nil {
		var missing *MissingFieldError
		if errors.As(err, &missing) {
			Warn("Submission from %s rejected: %v", sub.Username, missing)
		} else {
			Error("Error extracting submission from %s: %v", sub.Username, err)
		}
		writeJSON(w, http.StatusOK, map[string]string{"error": "error processing request"})
		return
	}

	result := b.submitter.Submit(r.Context(), draft)
	switch result.Outcome {
	case OutcomeCreated:
		Info("Issue created: %s (%s)", result.IssueTitle, result.IssueID)
		sendConfirmation(r.Context(), b.rdb, result, sub.Username, b.config)
		writeJSON(w, http.StatusOK, map[string]string{"response_action": "clear"})
	case OutcomeRejected:
		Error("Issue creation rejected: %v", result.Reasons)
		writeJSON(w, http.StatusOK, map[string]string{"error": "error processing request"})
	default:
		Error("Issue creation failed: status=%d body=%s", result.StatusCode, result.Body)
		writeJSON(w, http.StatusOK, map[string]string{"error": "error processing request"})
	}
}

func (b *Bridge) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		Warn("Failed to read events body: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	event := classifyEvent(body)
	switch event.Kind {
	case EventChallenge:
		writeJSON(w, http.StatusOK, map[string]string{"challenge": event.Challenge})
	case EventMention:
		b.handleMention(r.Context(), event.Mention)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// handleMention runs the mention pipeline. Failures are logged but never
// surfaced to the channel; only success gets an acknowledgment message.
func (b *Bridge) handleMention(ctx context.Context, mention *MentionEvent) {
	Info("Received mention from user %s in channel %s", mention.UserID, mention.ChannelID)

	draft, err := extractFromMention(ctx, mention, b.slack, b.slack)
	if err != nil {
		Warn("Mention from %s produced no draft: %v", mention.UserID, err)
		return
	}

	result := b.submitter.Submit(ctx, draft)
	switch result.Outcome {
	case OutcomeCreated:
		Info("Issue created from mention: %s (%s)", result.IssueTitle, result.IssueID)
		threadTS := mention.ThreadTS
		if threadTS == "" {
			threadTS = mention.EventTS
		}
		ack := "✅ Created Linear issue: " + result.IssueTitle
		if err := b.slack.PostMessage(ctx, mention.ChannelID, threadTS, ack); err != nil {
			Error("Error posting mention acknowledgment: %v", err)
		}
	case OutcomeRejected:
		Error("Issue creation from mention rejected: %v", result.Reasons)
	default:
		Error("Issue creation from mention failed: status=%d body=%s", result.StatusCode, result.Body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		Error("Error writing response: %v", err)
	}
}
