package dialogue

import "context"

// #region message
// Role identifies who produced a history entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of the conversation transcript.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// #endregion message

// #region generator
// Generator produces the raw persona reply for the latest user turn.
// history must end with the pending user message; earlier entries alternate
// user/model. Implementations must not mutate history.
type Generator interface {
	Generate(ctx context.Context, system string, history []Message) (string, error)
}

// #endregion generator
