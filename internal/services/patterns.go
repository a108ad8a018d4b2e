package services

import (
	"errors"
	"fmt"

	"github.com/inhouse-labs/soundlab-api/internal/models"
	"github.com/inhouse-labs/soundlab-api/internal/synth"
	"gorm.io/gorm"
)

// ErrPatternNotFound marks lookups of missing saved patterns
var ErrPatternNotFound = errors.New("pattern not found")

const listPatternsLimit = 100

// PatternService persists saved patterns and render logs
type PatternService struct {
	db *gorm.DB
}

// NewPatternService creates a pattern service over an open database
func NewPatternService(db *gorm.DB) *PatternService {
	return &PatternService{db: db}
}

// Save validates and stores a named pattern. Every token must classify,
// so saved patterns always render without InvalidToken surprises later.
func (s *PatternService) Save(userID, name, kind string, tokens []string) (*models.SavedPattern, error) {
	if kind != models.PatternKindMelody && kind != models.PatternKindDrums {
		return nil, fmt.Errorf("unknown pattern kind %q", kind)
	}
	for _, tok := range tokens {
		if _, err := synth.ClassifyEvent(tok); err != nil {
			return nil, err
		}
	}

	pattern := &models.SavedPattern{
		UserID: userID,
		Name:   name,
		Kind:   kind,
	}
	pattern.SetTokens(tokens)

	if err := s.db.Create(pattern).Error; err != nil {
		return nil, fmt.Errorf("save pattern: %w", err)
	}
	return pattern, nil
}

// List returns a user's saved patterns, newest first
func (s *PatternService) List(userID string) ([]models.SavedPattern, error) {
	var patterns []models.SavedPattern
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(listPatternsLimit).
		Find(&patterns).Error
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	return patterns, nil
}

// Get fetches one saved pattern by id, scoped to the user
func (s *PatternService) Get(userID string, id uint) (*models.SavedPattern, error) {
	var pattern models.SavedPattern
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&pattern).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatternNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pattern: %w", err)
	}
	return &pattern, nil
}

// Delete removes a saved pattern, scoped to the user
func (s *PatternService) Delete(userID string, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.SavedPattern{})
	if result.Error != nil {
		return fmt.Errorf("delete pattern: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPatternNotFound
	}
	return nil
}

// LogRender records render telemetry; failures are logged by the caller
// and never block the response.
func (s *PatternService) LogRender(entry *models.RenderLog) error {
	return s.db.Create(entry).Error
}
