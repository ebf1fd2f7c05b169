package domain

// TurnRole represents the speaker of a transcript turn
type TurnRole string

const (
	// TurnRoleUser - Turn typed by the user
	TurnRoleUser TurnRole = "user"
	// TurnRoleAssistant - Turn produced from the workflow reply
	TurnRoleAssistant TurnRole = "assistant"
)

// IsValid reports whether the role is one of the known speakers
func (r TurnRole) IsValid() bool {
	return r == TurnRoleUser || r == TurnRoleAssistant
}

// Turn is one message in a conversation transcript.
// Turns are immutable once appended to a session.
type Turn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}
