package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Pattern kinds
const (
	PatternKindMelody = "melody"
	PatternKindDrums  = "drums"
)

// SavedPattern is a user-saved event sequence. Only the tokens are stored;
// audio is always re-rendered on demand.
type SavedPattern struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    string         `gorm:"index" json:"user_id"`
	Name      string         `gorm:"not null" json:"name"`
	Kind      string         `gorm:"not null;index" json:"kind"` // "melody", "drums"
	Tokens    string         `gorm:"type:text;not null" json:"-"`
}

// TokenList splits the stored comma-separated tokens
func (p *SavedPattern) TokenList() []string {
	if p.Tokens == "" {
		return []string{}
	}
	return strings.Split(p.Tokens, ",")
}

// SetTokens stores a token sequence as comma-separated text
func (p *SavedPattern) SetTokens(tokens []string) {
	p.Tokens = strings.Join(tokens, ",")
}

// RenderLog records one synthesis render for usage accounting.
// The encoded audio itself is never persisted.
type RenderLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      string    `gorm:"index" json:"user_id"`
	Kind        string    `gorm:"not null" json:"kind"`
	Events      int       `gorm:"not null" json:"events"`
	Samples     int       `gorm:"not null" json:"samples"`
	SampleRate  int       `gorm:"not null" json:"sample_rate"`
	OutputBytes int       `gorm:"not null" json:"output_bytes"`
	DurationMS  int       `gorm:"not null" json:"duration_ms"`
	RequestID   string    `gorm:"index" json:"request_id"`
}
