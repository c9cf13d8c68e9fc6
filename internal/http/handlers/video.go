package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guidedtopic/guidedtopic-backend/internal/http/response"
	"github.com/guidedtopic/guidedtopic-backend/internal/services"
)

type VideoHandler struct {
	videoService services.VideoService
}

func NewVideoHandler(videoService services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

func (vh *VideoHandler) List(c *gin.Context) {
	var remedial *bool
	if raw := c.Query("remedial"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		remedial = &v
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	videos, err := vh.videoService.ListVideos(c.Request.Context(), remedial, page, perPage)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"videos": videos})
}

func (vh *VideoHandler) Create(c *gin.Context) {
	var req struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		MediaURL        string `json:"media_url"`
		DurationSeconds *int   `json:"duration_seconds"`
		IsRemedial      bool   `json:"is_remedial"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := services.CreateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		IsRemedial:  req.IsRemedial,
	}
	if req.DurationSeconds != nil {
		in.DurationSeconds = *req.DurationSeconds
	} else {
		in.DurationSeconds = -1
	}
	video, err := vh.videoService.CreateVideo(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"video": video})
}

func (vh *VideoHandler) Get(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	video, err := vh.videoService.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"video": video})
}

func (vh *VideoHandler) Update(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsRemedial  *bool   `json:"is_remedial"`
		Duration    *int    `json:"duration_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	video, err := vh.videoService.UpdateVideo(c.Request.Context(), videoID, services.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		IsRemedial:  req.IsRemedial,
		Duration:    req.Duration,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"video": video})
}

func (vh *VideoHandler) Delete(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	if err := vh.videoService.DeleteVideo(c.Request.Context(), videoID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (vh *VideoHandler) Media(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	mediaURL, err := vh.videoService.ResolveMediaURL(c.Request.Context(), videoID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"media_url": mediaURL})
}
