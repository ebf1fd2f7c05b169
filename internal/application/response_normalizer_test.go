package application

import (
	"testing"

	"chat-relay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) domain.JSONValue {
	t.Helper()
	v, err := domain.ParseJSONValue([]byte(raw))
	require.NoError(t, err)
	return v
}

func TestNormalize_ReplyShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "array of output objects", raw: `[{"output": "hi"}]`, want: "hi"},
		{name: "first element wins", raw: `[{"output": "first"}, {"output": "second"}]`, want: "first"},
		{name: "array output not a string", raw: `[{"output": {"a": 1}}]`, want: `{"a":1}`},
		{name: "array output null is kept", raw: `[{"output": null}]`, want: "null"},
		{name: "array output empty string is kept", raw: `[{"output": ""}]`, want: ""},
		{name: "array element without output", raw: `[{"text": "hi"}]`, want: `{"text":"hi"}`},
		{name: "array of strings", raw: `["plain", "other"]`, want: "plain"},
		{name: "array of numbers", raw: `[3, 4]`, want: "3"},
		{name: "empty array", raw: `[]`, want: "[]"},
		{name: "object output", raw: `{"output": "hi"}`, want: "hi"},
		{name: "object response", raw: `{"response": "hi"}`, want: "hi"},
		{name: "object message", raw: `{"message": "hi"}`, want: "hi"},
		{name: "object text", raw: `{"text": "hi"}`, want: "hi"},
		{name: "key priority", raw: `{"text": "t", "message": "m", "response": "r", "output": "o"}`, want: "o"},
		{name: "empty output falls through", raw: `{"output": "", "message": "hi"}`, want: "hi"},
		{name: "null output falls through", raw: `{"output": null, "text": "hi"}`, want: "hi"},
		{name: "non-string value rendered", raw: `{"response": 42}`, want: "42"},
		{name: "no known key", raw: `{"status": "ok", "id": 7}`, want: `{"status":"ok","id":7}`},
		{name: "only falsy known keys", raw: `{"output": "", "text": null}`, want: `{"output":"","text":null}`},
		{name: "empty object", raw: `{}`, want: "{}"},
		{name: "plain string", raw: `"plain"`, want: "plain"},
		{name: "number", raw: `12.5`, want: "12.5"},
		{name: "bool", raw: `true`, want: "true"},
		{name: "null", raw: `null`, want: "null"},
		{name: "markdown survives", raw: `[{"output": "**bold** <b>&</b>"}]`, want: "**bold** <b>&</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(mustParse(t, tt.raw)))
		})
	}
}

func TestNormalizeReply_FallbackOnUnrenderableValue(t *testing.T) {
	broken := domain.ArrayValue(domain.JSONValue{Kind: domain.JSONKind(42)})

	reply, err := NormalizeReply(broken)
	require.Error(t, err)
	assert.Equal(t, FallbackParseReply, reply)
	assert.Equal(t, FallbackParseReply, Normalize(broken))
}

func TestNormalizeReply_NoErrorOnSuccess(t *testing.T) {
	reply, err := NormalizeReply(mustParse(t, `{"message": "hi"}`))
	require.NoError(t, err)
	assert.Equal(t, "hi", reply)
}

func TestNormalize_IsTotal(t *testing.T) {
	values := []domain.JSONValue{
		{},
		{Kind: domain.JSONArray},
		{Kind: domain.JSONObject},
		{Kind: domain.JSONNumber},
		{Kind: domain.JSONKind(-1)},
		domain.ObjectValue(domain.JSONMember{Key: "output", Value: domain.JSONValue{Kind: domain.JSONKind(9)}}),
	}

	for _, v := range values {
		assert.NotPanics(t, func() { _ = Normalize(v) })
	}
}

func TestNormalize_IsIdempotentOnItsOutput(t *testing.T) {
	first := Normalize(mustParse(t, `[{"output": "hi"}]`))
	second := Normalize(domain.StringValue(first))
	assert.Equal(t, first, second)
}
