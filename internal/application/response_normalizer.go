package application

import (
	"fmt"

	"chat-relay/internal/domain"
)

// Fixed assistant replies
const (
	// FallbackErrorReply is recorded when the workflow call fails
	FallbackErrorReply = "Sorry, I encountered an error. Please try again."
	// FallbackParseReply is recorded when a reply cannot be turned into text
	FallbackParseReply = "Sorry, I couldn't parse the response from the server."
)

// replyKeys are tried in order on object replies
var replyKeys = []string{"output", "response", "message", "text"}

// Normalize turns a workflow reply of any shape into one display string.
// It never fails; unparseable replies yield FallbackParseReply.
func Normalize(payload domain.JSONValue) string {
	reply, _ := NormalizeReply(payload)
	return reply
}

// NormalizeReply is Normalize that also reports why the fallback was used
func NormalizeReply(payload domain.JSONValue) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply = FallbackParseReply
			err = fmt.Errorf("%v", r)
		}
	}()

	reply, err = normalize(payload)
	if err != nil {
		return FallbackParseReply, err
	}
	return reply, nil
}

// normalize matches the reply shapes in priority order:
// [{"output": ...}, ...] first, then {"output"|"response"|"message"|"text": ...},
// then the textual form of whatever came back.
func normalize(payload domain.JSONValue) (string, error) {
	switch payload.Kind {
	case domain.JSONArray:
		if len(payload.Array) == 0 {
			break
		}
		first := payload.Array[0]
		if output, ok := first.Get("output"); ok {
			return output.Text()
		}
		return first.Text()

	case domain.JSONObject:
		for _, key := range replyKeys {
			if value, ok := payload.Get(key); ok && value.Truthy() {
				return value.Text()
			}
		}
	}

	return payload.Text()
}
