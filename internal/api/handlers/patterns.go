package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inhouse-labs/soundlab-api/internal/api/middleware"
	"github.com/inhouse-labs/soundlab-api/internal/config"
	"github.com/inhouse-labs/soundlab-api/internal/generator"
	"github.com/inhouse-labs/soundlab-api/internal/metrics"
	"github.com/inhouse-labs/soundlab-api/internal/models"
	"github.com/inhouse-labs/soundlab-api/internal/services"
	"github.com/inhouse-labs/soundlab-api/internal/synth"
)

const maxGeneratedLength = 64

type PatternHandler struct {
	cfg      *config.Config
	patterns *services.PatternService // nil when persistence is off
	cw       *metrics.Client

	// Hook pool is session-wide host state, guarded here since handlers
	// run concurrently
	hookMu sync.Mutex
	hooks  *generator.HookPool
}

func NewPatternHandler(cfg *config.Config, patterns *services.PatternService, cw *metrics.Client, hookSeed int64) *PatternHandler {
	return &PatternHandler{
		cfg:      cfg,
		patterns: patterns,
		cw:       cw,
		hooks:    generator.NewHookPool(hookSeed),
	}
}

type GeneratePatternRequest struct {
	Kind   string `json:"kind" binding:"required"` // "melody" or "drums"
	Length int    `json:"length"`                  // default from config
	Seed   *int64 `json:"seed"`                    // optional, reproducible output
}

type GeneratePatternResponse struct {
	Kind   string   `json:"kind"`
	Tokens []string `json:"tokens"`
	Seed   int64    `json:"seed"`
}

// Generate produces a random melody or drum pattern
func (h *PatternHandler) Generate(c *gin.Context) {
	var req GeneratePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	length := req.Length
	if length <= 0 {
		length = h.cfg.PatternLength
	}
	if length > maxGeneratedLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "length exceeds maximum"})
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	g := generator.New(seed)

	var tokens []string
	switch req.Kind {
	case models.PatternKindMelody:
		tokens = g.Melody(length)
	case models.PatternKindDrums:
		tokens = g.DrumPattern(length)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be \"melody\" or \"drums\""})
		return
	}

	h.cw.RecordPatternGenerated(req.Kind, length)
	c.JSON(http.StatusOK, GeneratePatternResponse{
		Kind:   req.Kind,
		Tokens: tokens,
		Seed:   seed,
	})
}

// NextHook draws the next unused hook phrase
func (h *PatternHandler) NextHook(c *gin.Context) {
	h.hookMu.Lock()
	hook, ok := h.hooks.Next()
	remaining := h.hooks.Remaining()
	h.hookMu.Unlock()

	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"hook":      nil,
			"remaining": 0,
			"message":   "all hooks used, reset the pool to start over",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hook":      hook,
		"remaining": remaining,
	})
}

// ResetHooks refills the hook pool
func (h *PatternHandler) ResetHooks(c *gin.Context) {
	h.hookMu.Lock()
	h.hooks.Reset()
	remaining := h.hooks.Remaining()
	h.hookMu.Unlock()

	c.JSON(http.StatusOK, gin.H{"remaining": remaining})
}

type SavePatternRequest struct {
	Name   string   `json:"name" binding:"required"`
	Kind   string   `json:"kind" binding:"required"`
	Tokens []string `json:"tokens" binding:"required"`
}

// Save stores a named pattern for the current user
func (h *PatternHandler) Save(c *gin.Context) {
	if h.patterns == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pattern persistence is not configured"})
		return
	}

	var req SavePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pattern, err := h.patterns.Save(middleware.GetUserID(c), req.Name, req.Kind, req.Tokens)
	if err != nil {
		if errors.Is(err, synth.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     pattern.ID,
		"name":   pattern.Name,
		"kind":   pattern.Kind,
		"tokens": pattern.TokenList(),
	})
}

// List returns the current user's saved patterns
func (h *PatternHandler) List(c *gin.Context) {
	if h.patterns == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pattern persistence is not configured"})
		return
	}

	patterns, err := h.patterns.List(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, gin.H{
			"id":         p.ID,
			"name":       p.Name,
			"kind":       p.Kind,
			"tokens":     p.TokenList(),
			"created_at": p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"patterns": out})
}

// Delete removes one saved pattern
func (h *PatternHandler) Delete(c *gin.Context) {
	if h.patterns == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pattern persistence is not configured"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pattern id"})
		return
	}

	if err := h.patterns.Delete(middleware.GetUserID(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrPatternNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pattern not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
