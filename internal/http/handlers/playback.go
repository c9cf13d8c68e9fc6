package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/http/response"
	"github.com/guidedtopic/guidedtopic-backend/internal/services"
	"github.com/guidedtopic/guidedtopic-backend/internal/timecode"
)

type PlaybackHandler struct {
	playbackService services.PlaybackService
}

func NewPlaybackHandler(playbackService services.PlaybackService) *PlaybackHandler {
	return &PlaybackHandler{playbackService: playbackService}
}

func (ph *PlaybackHandler) Open(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	var req struct {
		Start bool `json:"start"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := ph.playbackService.OpenPlayback(c.Request.Context(), videoID, req.Start)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// Due answers "what interrupts playback at this moment". The client
// sends elapsed as HH:MM:SS and the already-presented question ids as a
// comma separated list; both travel in the query string so the player
// can poll without a body.
func (ph *PlaybackHandler) Due(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	elapsed, err := timecode.ParseClock(c.DefaultQuery("elapsed", "00:00:00"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	presented, err := parsePresented(c.Query("presented"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_presented_ids", err)
		return
	}
	due, err := ph.playbackService.NextQuestion(c.Request.Context(), videoID, elapsed, presented)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if due == nil {
		response.RespondOK(c, gin.H{"due": nil})
		return
	}
	response.RespondOK(c, gin.H{"due": due, "pose_time": timecode.FormatClock(due.PoseTime)})
}

func (ph *PlaybackHandler) Answer(c *gin.Context) {
	var req struct {
		QuestionID string `json:"question_id"`
		Slot       string `json:"slot"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	nav, err := ph.playbackService.ChooseAnswer(c.Request.Context(), questionID, types.SlotLabel(req.Slot))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"next_video_id": nav.NextVideoID.String(),
		"is_redirect":   nav.IsRedirect,
	})
}

func parsePresented(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
