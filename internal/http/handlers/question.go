package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guidedtopic/guidedtopic-backend/internal/http/response"
	"github.com/guidedtopic/guidedtopic-backend/internal/services"
	"github.com/guidedtopic/guidedtopic-backend/internal/timecode"
)

type QuestionHandler struct {
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (qh *QuestionHandler) ListByVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	questions, err := qh.questionService.ListQuestions(c.Request.Context(), videoID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		out = append(out, gin.H{
			"question":  q,
			"pose_time": timecode.FormatClock(q.PoseTime),
		})
	}
	response.RespondOK(c, gin.H{"questions": out})
}

func (qh *QuestionHandler) Create(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	question, warnings, err := qh.questionService.CreateQuestion(c.Request.Context(), videoID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"question": question, "target_warnings": warnings})
}

func (qh *QuestionHandler) Update(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	question, warnings, err := qh.questionService.UpdateQuestion(c.Request.Context(), questionID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"question": question, "target_warnings": warnings})
}

func (qh *QuestionHandler) Delete(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	if err := qh.questionService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// InspectGraph reports every answer slot whose redirect points at a
// missing video. Authors use this to clean up after deletions.
func (qh *QuestionHandler) InspectGraph(c *gin.Context) {
	dangling, err := qh.questionService.InspectGraph(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"dangling": dangling})
}
