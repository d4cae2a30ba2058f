package request

// ChooseRequest represents the current player's truth-or-dare choice.
type ChooseRequest struct {
	Type string `json:"type" binding:"required,oneof=truth dare"`
}
