package main

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// classifyCommand classifies a form-encoded slash-command body. Commands
// other than the configured one, and bodies without a trigger_id, are
// ignored rather than rejected.
func classifyCommand(form url.Values, slashCommand string) InboundEvent {
	if cmd := form.Get("command"); cmd != "" && cmd != slashCommand {
		Debug("Ignoring command %s", cmd)
		return InboundEvent{Kind: EventIgnored}
	}

	triggerID := form.Get("trigger_id")
	if triggerID == "" {
		Warn("Command body has no trigger_id; ignoring")
		return InboundEvent{Kind: EventIgnored}
	}

	return InboundEvent{
		Kind: EventCommand,
		Command: &CommandTrigger{
			TriggerID:   triggerID,
			PrefillText: form.Get("text"),
			UserID:      form.Get("user_id"),
			UserName:    form.Get("user_name"),
			ChannelID:   form.Get("channel_id"),
		},
	}
}

// classifyInteraction classifies a form-encoded interaction body whose
// payload field carries a JSON interaction event. A payload that does
// not decode is the one inbound shape Slack expects an error status for,
// so it is returned as an error instead of being ignored.
func classifyInteraction(form url.Values, callbackID string) (InboundEvent, error) {
	payload := form.Get("payload")
	if payload == "" {
		return InboundEvent{}, fmt.Errorf("interaction body has no payload field")
	}

	var submission ViewSubmission
	if err := json.Unmarshal([]byte(payload), &submission); err != nil {
		return InboundEvent{}, fmt.Errorf("failed to decode interaction payload: %v", err)
	}

	// Only handle submissions of our modal
	if submission.Type != "view_submission" {
		Debug("Ignoring interaction type %s", submission.Type)
		return InboundEvent{Kind: EventIgnored}, nil
	}
	if submission.View.CallbackID != callbackID {
		Debug("Ignoring view submission with callback_id %s", submission.View.CallbackID)
		return InboundEvent{Kind: EventIgnored}, nil
	}

	return InboundEvent{
		Kind: EventSubmission,
		Submission: &FormSubmission{
			CallbackID: submission.View.CallbackID,
			Values:     submission.View.State.Values,
			UserID:     submission.User.ID,
			Username:   submission.User.Username,
		},
	}, nil
}

// classifyEvent classifies a JSON events-API body. url_verification
// becomes a Challenge event whose value the handler must echo verbatim;
// app_mention becomes a MentionEvent; everything else is ignored.
func classifyEvent(body []byte) InboundEvent {
	var callback EventCallback
	if err := json.Unmarshal(body, &callback); err != nil {
		Warn("Failed to decode events body: %v", err)
		return InboundEvent{Kind: EventIgnored}
	}

	switch callback.Type {
	case "url_verification":
		return InboundEvent{Kind: EventChallenge, Challenge: callback.Challenge}
	case "event_callback":
		if callback.Event.Type != "app_mention" {
			Debug("Ignoring event type %s", callback.Event.Type)
			return InboundEvent{Kind: EventIgnored}
		}
		var botUserID string
		for _, auth := range callback.Authorizations {
			if auth.UserID != "" {
				botUserID = auth.UserID
				break
			}
		}
		return InboundEvent{
			Kind: EventMention,
			Mention: &MentionEvent{
				UserID:    callback.Event.User,
				Text:      callback.Event.Text,
				ChannelID: callback.Event.Channel,
				ThreadTS:  callback.Event.ThreadTs,
				EventTS:   callback.Event.Ts,
				BotUserID: botUserID,
			},
		}
	default:
		Debug("Ignoring events body of type %s", callback.Type)
		return InboundEvent{Kind: EventIgnored}
	}
}
