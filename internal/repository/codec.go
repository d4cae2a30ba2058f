package repository

import (
	"encoding/json"
	"fmt"

	"github.com/Rohit1301k/dareroom/internal/store"
)

// toRecord converts a model value into its JSON-like record form.
func toRecord(v any) (store.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// fromRecord decodes a record into the model value pointed to by v.
func fromRecord(rec store.Record, v any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}
