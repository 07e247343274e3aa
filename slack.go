package main

import (
	"context"

	"github.com/slack-go/slack"
)

// ThreadMessage is one message of a reply thread, in thread order.
type ThreadMessage struct {
	TS   string
	Text string
}

// SlackGateway wraps the Slack Web API calls the bridge makes.
type SlackGateway struct {
	client *slack.Client
}

func NewSlackGateway(client *slack.Client) *SlackGateway {
	return &SlackGateway{client: client}
}

func (g *SlackGateway) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	_, err := g.client.OpenViewContext(ctx, triggerID, view)
	return err
}

func (g *SlackGateway) UserEmail(ctx context.Context, userID string) (string, error) {
	user, err := g.client.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Profile.Email, nil
}

func (g *SlackGateway) ThreadMessages(ctx context.Context, channelID, threadTS string) ([]ThreadMessage, error) {
	var messages []ThreadMessage
	params := &slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: threadTS,
	}
	for {
		page, hasMore, cursor, err := g.client.GetConversationRepliesContext(ctx, params)
		if err != nil {
			return nil, err
		}
		for _, msg := range page {
			messages = append(messages, ThreadMessage{TS: msg.Timestamp, Text: msg.Text})
		}
		if !hasMore {
			return messages, nil
		}
		params.Cursor = cursor
	}
}

func (g *SlackGateway) PostMessage(ctx context.Context, channelID, threadTS, text string) error {
	options := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		options = append(options, slack.MsgOptionTS(threadTS))
	}
	_, _, err := g.client.PostMessageContext(ctx, channelID, options...)
	return err
}

func createIssueModal(callbackID, initialTitle string, components []ComponentOption) slack.ModalViewRequest {
	titleInput := &slack.PlainTextInputBlockElement{
		Type:     slack.METPlainTextInput,
		ActionID: "title",
		Placeholder: &slack.TextBlockObject{
			Type: slack.PlainTextType,
			Text: "Enter the issue title",
		},
	}

	// Pre-populate title from the slash command text if provided
	if initialTitle != "" {
		titleInput.InitialValue = initialTitle
	}

	descriptionInput := &slack.PlainTextInputBlockElement{
		Type:      slack.METPlainTextInput,
		ActionID:  "description",
		Multiline: true,
		Placeholder: &slack.TextBlockObject{
			Type: slack.PlainTextType,
			Text: "Enter a detailed description",
		},
	}

	componentOptions := make([]*slack.OptionBlockObject, 0, len(components))
	for _, c := range components {
		componentOptions = append(componentOptions, &slack.OptionBlockObject{
			Text: &slack.TextBlockObject{
				Type: slack.PlainTextType,
				Text: c.Label,
			},
			Value: c.ID,
		})
	}

	componentSelect := &slack.SelectBlockElement{
		Type:     slack.OptTypeStatic,
		ActionID: "component",
		Placeholder: &slack.TextBlockObject{
			Type: slack.PlainTextType,
			Text: "Select a component",
		},
		Options: componentOptions,
	}

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: callbackID,
		Title: &slack.TextBlockObject{
			Type: slack.PlainTextType,
			Text: "Report Issue",
		},
		Submit: &slack.TextBlockObject{
			Type: slack.PlainTextType,
			Text: "Submit",
		},
		Close: &slack.TextBlockObject{
			Type: slack.PlainTextType,
			Text: "Cancel",
		},
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				&slack.InputBlock{
					Type:    slack.MBTInput,
					BlockID: "title_block",
					Label: &slack.TextBlockObject{
						Type: slack.PlainTextType,
						Text: "Issue Title",
					},
					Element: titleInput,
				},
				&slack.InputBlock{
					Type:    slack.MBTInput,
					BlockID: "description_block",
					Label: &slack.TextBlockObject{
						Type: slack.PlainTextType,
						Text: "Issue Description",
					},
					Element: descriptionInput,
				},
				&slack.InputBlock{
					Type:     slack.MBTInput,
					BlockID:  "component_block",
					Optional: true,
					Label: &slack.TextBlockObject{
						Type: slack.PlainTextType,
						Text: "Component",
					},
					Element: componentSelect,
				},
			},
		},
	}
}
