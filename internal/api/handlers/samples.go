package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inhouse-labs/soundlab-api/internal/logger"
	"github.com/inhouse-labs/soundlab-api/internal/metrics"
	"github.com/inhouse-labs/soundlab-api/internal/samples"
	"github.com/inhouse-labs/soundlab-api/internal/synth"
)

// maxSampleUploadBytes caps one-shot sample uploads at 10 MiB
const maxSampleUploadBytes = 10 << 20

type SampleHandler struct {
	library *samples.Library
	cw      *metrics.Client
}

func NewSampleHandler(library *samples.Library, cw *metrics.Client) *SampleHandler {
	return &SampleHandler{
		library: library,
		cw:      cw,
	}
}

// Upload registers a WAV file for an event token. The decoded sample then
// replaces synthesis for that token in every subsequent render.
func (h *SampleHandler) Upload(c *gin.Context) {
	token := c.Param("token")
	if _, err := synth.ClassifyEvent(token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxSampleUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	if len(raw) > maxSampleUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "sample exceeds 10MB limit"})
		return
	}

	sample, err := samples.DecodeWAV(bytes.NewReader(raw))
	if err != nil {
		// Decode failure means "no sample available", never a core failure
		h.cw.RecordSampleUpload(false)
		logger.Warn("Sample upload rejected", logger.Fields{
			"request_id": c.GetString("request_id"),
			"token":      token,
			"error":      err.Error(),
		})
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.library.Put(token, sample)
	h.cw.RecordSampleUpload(true)

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"samples":     len(sample.Data),
		"sample_rate": sample.Rate,
	})
}

// List returns the tokens with registered samples
func (h *SampleHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tokens": h.library.Tokens()})
}

// Delete removes a registered sample; renders fall back to synthesis
func (h *SampleHandler) Delete(c *gin.Context) {
	token := c.Param("token")
	if !h.library.Remove(token) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sample registered for token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": token})
}
