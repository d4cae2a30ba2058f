package catalog

import (
	"testing"

	"github.com/Rohit1301k/dareroom/internal/model"
)

func TestKnown(t *testing.T) {
	for _, category := range Categories() {
		if !Known(category) {
			t.Errorf("Expected %q to be a known category", category)
		}
	}

	for _, category := range []string{"", "FUNNY", "scary", "18"} {
		if Known(category) {
			t.Errorf("Expected %q to be unknown", category)
		}
	}
}

func TestQuestions_CoverEveryCategoryAndType(t *testing.T) {
	counts := make(map[string]map[model.TurnType]int)
	for _, q := range Questions() {
		if !Known(q.Category) {
			t.Errorf("Question %q has unknown category %q", q.Text, q.Category)
		}
		if q.Type != model.TurnTypeTruth && q.Type != model.TurnTypeDare {
			t.Errorf("Question %q has invalid type %q", q.Text, q.Type)
		}
		if q.Text == "" {
			t.Error("Expected every question to have text")
		}
		if counts[q.Category] == nil {
			counts[q.Category] = make(map[model.TurnType]int)
		}
		counts[q.Category][q.Type]++
	}

	// A room limited to a single category must always find a draw for
	// either choice.
	for _, category := range Categories() {
		if counts[category][model.TurnTypeTruth] == 0 {
			t.Errorf("Expected at least one truth question in %q", category)
		}
		if counts[category][model.TurnTypeDare] == 0 {
			t.Errorf("Expected at least one dare question in %q", category)
		}
	}
}

func TestQuestions_NoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, q := range Questions() {
		if seen[q.Text] {
			t.Errorf("Duplicate question text: %q", q.Text)
		}
		seen[q.Text] = true
	}
}
