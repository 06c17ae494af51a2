package ledger

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/nqtien/examinator/internal/model"
)

// Mirror is the durable backup port the ledger writes through. Keys are
// attempt-scoped: two attempts never see each other's answers, even on the
// same machine.
type Mirror interface {
	Save(attemptID int64, answers []model.Answer) error
	Load(attemptID int64) ([]model.Answer, error)
	Clear(attemptID int64) error
}

// NoopMirror discards everything. Used for pure in-memory sessions and
// tests that do not care about durability.
type NoopMirror struct{}

func (NoopMirror) Save(int64, []model.Answer) error   { return nil }
func (NoopMirror) Load(int64) ([]model.Answer, error) { return nil, nil }
func (NoopMirror) Clear(int64) error                  { return nil }

// MirrorAnswer is the persisted row of one mirrored answer.
type MirrorAnswer struct {
	ID                uint   `gorm:"primarykey"`
	AttemptID         int64  `gorm:"not null;index"`
	QuestionID        int64  `gorm:"not null"`
	SelectedOptionIDs string `gorm:"type:text;not null"`
	IsCorrect         bool   `gorm:"not null"`
	Position          int    `gorm:"not null"`
}

type gormMirror struct {
	db *gorm.DB
}

// NewGormMirror returns a Mirror backed by a gorm database (a local sqlite
// file in the default wiring).
func NewGormMirror(db *gorm.DB) Mirror {
	return &gormMirror{db: db}
}

func (m *gormMirror) Save(attemptID int64, answers []model.Answer) error {
	rows := make([]MirrorAnswer, 0, len(answers))
	for i, ans := range answers {
		encoded, err := json.Marshal(ans.SelectedOptionIDs)
		if err != nil {
			return fmt.Errorf("failed to encode selection for question %d: %w", ans.QuestionID, err)
		}
		rows = append(rows, MirrorAnswer{
			AttemptID:         attemptID,
			QuestionID:        ans.QuestionID,
			SelectedOptionIDs: string(encoded),
			IsCorrect:         ans.IsCorrect,
			Position:          i,
		})
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempt_id = ?", attemptID).Delete(&MirrorAnswer{}).Error; err != nil {
			return fmt.Errorf("failed to drop stale mirror rows: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to write mirror rows: %w", err)
		}
		return nil
	})
}

func (m *gormMirror) Load(attemptID int64) ([]model.Answer, error) {
	var rows []MirrorAnswer
	err := m.db.Where("attempt_id = ?", attemptID).Order("position ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read mirror rows for attempt %d: %w", attemptID, err)
	}

	answers := make([]model.Answer, 0, len(rows))
	for _, row := range rows {
		var selected []int64
		if err := json.Unmarshal([]byte(row.SelectedOptionIDs), &selected); err != nil {
			return nil, fmt.Errorf("corrupt mirror row for question %d: %w", row.QuestionID, err)
		}
		answers = append(answers, model.Answer{
			QuestionID:        row.QuestionID,
			SelectedOptionIDs: selected,
			IsCorrect:         row.IsCorrect,
		})
	}
	return answers, nil
}

func (m *gormMirror) Clear(attemptID int64) error {
	if err := m.db.Where("attempt_id = ?", attemptID).Delete(&MirrorAnswer{}).Error; err != nil {
		return fmt.Errorf("failed to clear mirror for attempt %d: %w", attemptID, err)
	}
	return nil
}
