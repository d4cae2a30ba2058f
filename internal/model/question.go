package model

// Question is static reference data, seeded once when the collection
// is empty and read-only thereafter.
type Question struct {
	ID       string   `json:"id,omitempty"`
	Seq      int64    `json:"seq,omitempty"`
	Category string   `json:"category"`
	Type     TurnType `json:"type"`
	Text     string   `json:"text"`
}
