package main

import "fmt"

// EventKind tags the variant carried by an InboundEvent.
type EventKind int

const (
	EventIgnored EventKind = iota
	EventCommand
	EventSubmission
	EventMention
	EventChallenge
)

// InboundEvent is the classified form of one inbound webhook delivery.
// Exactly one variant pointer is set for the non-ignored kinds.
type InboundEvent struct {
	Kind       EventKind
	Command    *CommandTrigger
	Submission *FormSubmission
	Mention    *MentionEvent
	Challenge  string
}

// CommandTrigger is a slash-command invocation carrying the trigger id
// needed to open the issue modal.
type CommandTrigger struct {
	TriggerID   string
	PrefillText string
	UserID      string
	UserName    string
	ChannelID   string
}

// FormSubmission is a view_submission interaction for the issue modal.
// Values is the raw state.values mapping from block id to action id to
// submitted value.
type FormSubmission struct {
	CallbackID string
	Values     map[string]map[string]interface{}
	UserID     string
	Username   string
}

// MentionEvent is an app_mention delivered through the events API.
type MentionEvent struct {
	UserID    string
	Text      string
	ChannelID string
	ThreadTS  string
	EventTS   string
	BotUserID string
}

type ViewSubmission struct {
	Type string `json:"type"`
	View struct {
		CallbackID string `json:"callback_id"`
		State      struct {
			Values map[string]map[string]interface{} `json:"values"`
		} `json:"state"`
	} `json:"view"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

type EventCallback struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	EventID   string `json:"event_id"`
	Event     struct {
		Type     string `json:"type"`
		User     string `json:"user"`
		Text     string `json:"text"`
		Channel  string `json:"channel"`
		Ts       string `json:"ts"`
		ThreadTs string `json:"thread_ts"`
		EventTs  string `json:"event_ts"`
	} `json:"event"`
	Authorizations []struct {
		UserID string `json:"user_id"`
		IsBot  bool   `json:"is_bot"`
	} `json:"authorizations"`
}

// IssueDraft is the normalized issue extracted from a submission or
// mention. It lives for one request and is consumed once by Submit.
type IssueDraft struct {
	Title         string
	Description   string
	ComponentID   string
	ReporterEmail string
}

// Outcome tags a SubmissionResult.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeRejected
	OutcomeTransportError
)

// SubmissionResult is the terminal outcome of one issue mutation.
// StatusCode is 0 for a round trip that produced no response at all.
type SubmissionResult struct {
	Outcome    Outcome
	IssueID    string
	IssueTitle string
	Reasons    []string
	StatusCode int
	Body       string
}

// MissingFieldError reports a required extraction field that was absent
// or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

type SlackLinerMessage struct {
	Channel  string                 `json:"channel"`
	Text     string                 `json:"text"`
	TTL      int                    `json:"ttl"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
