package repository

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/store"
)

type QuestionRepository struct {
	col store.Collection
}

func NewQuestionRepository(s store.Store) *QuestionRepository {
	return &QuestionRepository{col: store.MustCollection(s, store.Questions)}
}

// SeedIfEmpty loads the static catalog into the collection. A nonempty
// collection is left untouched, so re-running startup is safe.
func (r *QuestionRepository) SeedIfEmpty(ctx context.Context, questions []model.Question) (int, error) {
	existing, err := r.col.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check questions: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i := range questions {
		rec, err := toRecord(&questions[i])
		if err != nil {
			return i, err
		}
		if _, err := r.col.Add(ctx, rec); err != nil {
			return i, fmt.Errorf("failed to seed question: %w", err)
		}
	}
	return len(questions), nil
}

// List returns every stored question.
func (r *QuestionRepository) List(ctx context.Context) ([]*model.Question, error) {
	recs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]*model.Question, 0, len(recs))
	for _, rec := range recs {
		var q model.Question
		if err := fromRecord(rec, &q); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}
	return questions, nil
}

// Random draws one uniformly random question whose category is in the
// given set and whose type matches. Draws are independent; nothing
// excludes previously used questions.
func (r *QuestionRepository) Random(ctx context.Context, categories []string, t model.TurnType) (*model.Question, error) {
	questions, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	matching := make([]*model.Question, 0, len(questions))
	for _, q := range questions {
		if q.Type != t {
			continue
		}
		for _, c := range categories {
			if q.Category == c {
				matching = append(matching, q)
				break
			}
		}
	}

	if len(matching) == 0 {
		return nil, ErrNoQuestions
	}
	return matching[rand.Intn(len(matching))], nil
}
