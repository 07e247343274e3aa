package main

import (
	"context"
	"regexp"
	"strings"
)

// emailLookup resolves a Slack user id to the profile email.
type emailLookup interface {
	UserEmail(ctx context.Context, userID string) (string, error)
}

// threadLookup fetches the messages of a reply thread in chronological
// order.
type threadLookup interface {
	ThreadMessages(ctx context.Context, channelID, threadTS string) ([]ThreadMessage, error)
}

// extractFromSubmission builds an IssueDraft from a modal submission.
// Title and description are required; the component select and the
// reporter email are optional, and an email lookup failure degrades to
// an empty reporter rather than aborting.
func extractFromSubmission(ctx context.Context, sub *FormSubmission, emails emailLookup) (IssueDraft, error) {
	values := sub.Values

	title := blockValue(values, "title_block", "title")
	if title == "" {
		return IssueDraft{}, &MissingFieldError{Field: "title"}
	}

	if _, ok := values["description_block"]; !ok {
		return IssueDraft{}, &MissingFieldError{Field: "description"}
	}
	description := blockValue(values, "description_block", "description")

	component := selectedOption(values, "component_block", "component")

	return IssueDraft{
		Title:         title,
		Description:   description,
		ComponentID:   component,
		ReporterEmail: lookupEmail(ctx, emails, sub.UserID),
	}, nil
}

// extractFromMention builds an IssueDraft from an app_mention. The title
// is the mention text with the bot's own mention token stripped; the
// description is the prior thread messages when the mention is a thread
// reply, else the stripped text. A history lookup failure degrades the
// description to the stripped text.
func extractFromMention(ctx context.Context, mention *MentionEvent, emails emailLookup, threads threadLookup) (IssueDraft, error) {
	title := stripSelfMention(mention.Text, mention.BotUserID)
	if title == "" {
		return IssueDraft{}, &MissingFieldError{Field: "title"}
	}

	description := title
	if mention.ThreadTS != "" {
		messages, err := threads.ThreadMessages(ctx, mention.ChannelID, mention.ThreadTS)
		if err != nil {
			Warn("Failed to fetch thread history for %s/%s: %v", mention.ChannelID, mention.ThreadTS, err)
		} else if prior := priorMessages(messages, mention.EventTS); len(prior) > 0 {
			description = strings.Join(prior, "\n")
		}
	}

	return IssueDraft{
		Title:         title,
		Description:   description,
		ReporterEmail: lookupEmail(ctx, emails, mention.UserID),
	}, nil
}

func lookupEmail(ctx context.Context, emails emailLookup, userID string) string {
	if userID == "" {
		return ""
	}
	email, err := emails.UserEmail(ctx, userID)
	if err != nil {
		Warn("Failed to look up email for user %s: %v", userID, err)
		return ""
	}
	return email
}

// blockValue walks state.values for the plain-text input value of one
// block, returning "" when any level of the nesting is absent.
func blockValue(values map[string]map[string]interface{}, blockID, actionID string) string {
	block, ok := values[blockID]
	if !ok {
		return ""
	}
	data, ok := block[actionID]
	if !ok {
		return ""
	}
	dataMap, ok := data.(map[string]interface{})
	if !ok {
		return ""
	}
	value, _ := dataMap["value"].(string)
	return value
}

// selectedOption walks state.values for a static_select's chosen option
// value, returning "" when nothing was selected.
func selectedOption(values map[string]map[string]interface{}, blockID, actionID string) string {
	block, ok := values[blockID]
	if !ok {
		return ""
	}
	data, ok := block[actionID]
	if !ok {
		return ""
	}
	dataMap, ok := data.(map[string]interface{})
	if !ok {
		return ""
	}
	option, ok := dataMap["selected_option"].(map[string]interface{})
	if !ok {
		return ""
	}
	value, _ := option["value"].(string)
	return value
}

var leadingMention = regexp.MustCompile(`^\s*<@[^>]+>\s*`)

// stripSelfMention removes the bot's mention token from the text and
// trims the remainder. Tokens may carry an alias (<@UBOT|botname>).
// When the bot user id is unknown only the leading mention token is
// stripped.
func stripSelfMention(text, botUserID string) string {
	if botUserID != "" {
		token := regexp.MustCompile(`<@` + regexp.QuoteMeta(botUserID) + `(\|[^>]*)?>`)
		text = token.ReplaceAllString(text, "")
	} else {
		for {
			stripped := leadingMention.ReplaceAllString(text, "")
			if stripped == text {
				break
			}
			text = stripped
		}
	}
	return strings.TrimSpace(text)
}

// priorMessages returns the text of every thread message before the one
// with the given ts. The mention itself and anything at or after its
// timestamp are excluded, so a mention ts absent from the fetched
// replies still cuts the thread off in the right place.
func priorMessages(messages []ThreadMessage, eventTS string) []string {
	var texts []string
	for _, msg := range messages {
		if eventTS != "" && msg.TS >= eventTS {
			break
		}
		texts = append(texts, msg.Text)
	}
	return texts
}
