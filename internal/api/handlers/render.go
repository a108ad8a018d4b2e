package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inhouse-labs/soundlab-api/internal/api/middleware"
	"github.com/inhouse-labs/soundlab-api/internal/config"
	"github.com/inhouse-labs/soundlab-api/internal/logger"
	"github.com/inhouse-labs/soundlab-api/internal/metrics"
	"github.com/inhouse-labs/soundlab-api/internal/models"
	"github.com/inhouse-labs/soundlab-api/internal/samples"
	"github.com/inhouse-labs/soundlab-api/internal/services"
	"github.com/inhouse-labs/soundlab-api/internal/synth"
)

const (
	maxPatternEvents   = 256
	maxSegmentDuration = 5.0
	minSampleRate      = 8000
	maxSampleRate      = 96000
	wavContentType     = "audio/wav"
)

var sentryMetrics = metrics.NewSentryMetrics()

type RenderHandler struct {
	cfg      *config.Config
	library  *samples.Library
	patterns *services.PatternService // nil when persistence is off
	cw       *metrics.Client
}

func NewRenderHandler(cfg *config.Config, library *samples.Library, patterns *services.PatternService, cw *metrics.Client) *RenderHandler {
	return &RenderHandler{
		cfg:      cfg,
		library:  library,
		patterns: patterns,
		cw:       cw,
	}
}

type RenderRequest struct {
	Pattern         []string `json:"pattern" binding:"required"`
	Kind            string   `json:"kind"`             // "melody" or "drums", for telemetry only
	SegmentDuration float64  `json:"segment_duration"` // seconds, default from config
	SampleRate      int      `json:"sample_rate"`      // Hz, default from config
	NoiseSeed       int64    `json:"noise_seed"`       // optional, reproducible hi-hats
	UseSamples      *bool    `json:"use_samples"`      // default true: consult the sample library
}

// Render synthesizes a pattern and streams it back as a WAV file
func (h *RenderHandler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Pattern) > maxPatternEvents {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("pattern too long: %d events (max %d)", len(req.Pattern), maxPatternEvents),
		})
		return
	}

	segmentDuration := req.SegmentDuration
	if segmentDuration <= 0 {
		segmentDuration = h.cfg.SegmentDuration
	}
	if segmentDuration > maxSegmentDuration {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("segment_duration %.2f exceeds %.1fs", segmentDuration, maxSegmentDuration),
		})
		return
	}

	rate := req.SampleRate
	if rate == 0 {
		rate = h.cfg.SampleRate
	}
	if rate < minSampleRate || rate > maxSampleRate {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("sample_rate must be between %d and %d", minSampleRate, maxSampleRate),
		})
		return
	}

	kind := req.Kind
	if kind == "" {
		kind = models.PatternKindMelody
	}

	var lookup synth.SampleLookup
	if req.UseSamples == nil || *req.UseSamples {
		lookup = h.library.LookupFunc()
	}

	assembler := &synth.Assembler{
		SegmentDuration: segmentDuration,
		Rate:            rate,
		Lookup:          lookup,
		NoiseSeed:       req.NoiseSeed,
	}

	start := time.Now()
	track, err := assembler.Assemble(req.Pattern)
	if err != nil {
		if errors.Is(err, synth.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Render failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}

	wavBytes := synth.EncodeWAV(track, rate)
	duration := time.Since(start)

	logger.LogRenderRequest(c, kind, len(req.Pattern), len(track), duration, nil)
	h.cw.RecordRender(kind, duration, len(track), 0, true)
	sentryMetrics.RecordRender(c.Request.Context(), kind, len(req.Pattern), len(track), duration, true)
	h.logRender(c, kind, req.Pattern, track, wavBytes, rate, duration)

	c.Header("Content-Disposition", `attachment; filename="soundlab.wav"`)
	c.Data(http.StatusOK, wavContentType, wavBytes)
}

// logRender persists render telemetry when a database is configured
func (h *RenderHandler) logRender(c *gin.Context, kind string, pattern []string, track synth.Buffer, wavBytes []byte, rate int, duration time.Duration) {
	if h.patterns == nil {
		return
	}

	entry := &models.RenderLog{
		UserID:      middleware.GetUserID(c),
		Kind:        kind,
		Events:      len(pattern),
		Samples:     len(track),
		SampleRate:  rate,
		OutputBytes: len(wavBytes),
		DurationMS:  int(duration.Milliseconds()),
		RequestID:   c.GetString("request_id"),
	}
	if err := h.patterns.LogRender(entry); err != nil {
		logger.Warn("Failed to persist render log", logger.Fields{
			"request_id": entry.RequestID,
			"error":      err.Error(),
		})
	}
}
