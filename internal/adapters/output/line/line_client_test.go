package line

import (
	"errors"
	"strings"
	"testing"

	"chat-relay/internal/domain"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessagingAPI struct {
	err      error
	requests []*messaging_api.ReplyMessageRequest
}

func (f *fakeMessagingAPI) ReplyMessage(request *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	return &messaging_api.ReplyMessageResponse{}, nil
}

func textMessage(text string) domain.LineOutgoingMessage {
	return domain.LineOutgoingMessage{Type: domain.LineMessageTypeText, Text: text}
}

func TestReplyMessage_SendsTextMessages(t *testing.T) {
	api := &fakeMessagingAPI{}
	adapter := &LineClientAdapter{client: api}

	resp, err := adapter.ReplyMessage(domain.LineReplyMessageRequest{
		ReplyToken: "token",
		Messages:   []domain.LineOutgoingMessage{textMessage("❌ Request timed out."), textMessage("Sorry")},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)

	require.Len(t, api.requests, 1)
	assert.Equal(t, "token", api.requests[0].ReplyToken)
	require.Len(t, api.requests[0].Messages, 2)
	first, ok := api.requests[0].Messages[0].(*messaging_api.TextMessage)
	require.True(t, ok)
	assert.Equal(t, "❌ Request timed out.", first.Text)
}

func TestReplyMessage_SkipsUnsupportedAndEmpty(t *testing.T) {
	api := &fakeMessagingAPI{}
	adapter := &LineClientAdapter{client: api}

	_, err := adapter.ReplyMessage(domain.LineReplyMessageRequest{
		ReplyToken: "token",
		Messages: []domain.LineOutgoingMessage{
			{Type: domain.LineMessageTypeSticker},
			textMessage(""),
		},
	})
	require.ErrorIs(t, err, ErrNoMessages)
	assert.Empty(t, api.requests)
}

func TestReplyMessage_APIError(t *testing.T) {
	api := &fakeMessagingAPI{err: errors.New("invalid reply token")}
	adapter := &LineClientAdapter{client: api}

	_, err := adapter.ReplyMessage(domain.LineReplyMessageRequest{
		ReplyToken: "expired",
		Messages:   []domain.LineOutgoingMessage{textMessage("hi")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid reply token")
}

func TestReplyMessage_PlatformLimits(t *testing.T) {
	api := &fakeMessagingAPI{}
	adapter := &LineClientAdapter{client: api}

	outgoing := make([]domain.LineOutgoingMessage, 0, 7)
	outgoing = append(outgoing, textMessage(strings.Repeat("a", maxTextLength+10)))
	for i := 0; i < 6; i++ {
		outgoing = append(outgoing, textMessage("more"))
	}

	_, err := adapter.ReplyMessage(domain.LineReplyMessageRequest{ReplyToken: "token", Messages: outgoing})
	require.NoError(t, err)

	require.Len(t, api.requests[0].Messages, maxReplyMessages)
	long := api.requests[0].Messages[0].(*messaging_api.TextMessage)
	assert.Len(t, []rune(long.Text), maxTextLength)
	assert.True(t, strings.HasSuffix(long.Text, "…"))
}
