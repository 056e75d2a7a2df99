package handlers

import (
	"strconv"

	"github.com/collabconnect/backend/internal/middleware"
	"github.com/collabconnect/backend/internal/services"
	"github.com/collabconnect/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DoubtHandler covers the Q&A board: doubts, answers and answer voting.
type DoubtHandler struct {
	doubtService *services.DoubtService
	voteService  *services.VoteService
}

func NewDoubtHandler(db *gorm.DB) *DoubtHandler {
	return &DoubtHandler{
		doubtService: services.NewDoubtService(db),
		voteService:  services.NewVoteService(db),
	}
}

type castVoteRequest struct {
	Direction string `json:"direction" binding:"required"` // upvote, downvote
}

// PostDoubt files a new question.
// POST /api/doubts
func (h *DoubtHandler) PostDoubt(c *gin.Context) {
	var req services.PostDoubtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doubt, err := h.doubtService.PostDoubt(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, doubt)
}

// ListDoubts returns all doubts, newest first, with answers embedded.
// GET /api/doubts
func (h *DoubtHandler) ListDoubts(c *gin.Context) {
	doubts, err := h.doubtService.ListDoubts()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, doubts)
}

// PostAnswer adds an answer to a doubt.
// POST /api/answers
func (h *DoubtHandler) PostAnswer(c *gin.Context) {
	var req services.PostAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	answer, err := h.doubtService.PostAnswer(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, answer)
}

// ListAnswers returns a doubt's answers, most upvoted first.
// GET /api/doubts/:id/answers
func (h *DoubtHandler) ListAnswers(c *gin.Context) {
	doubtID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid doubt id")
		return
	}

	answers, err := h.doubtService.ListAnswers(uint(doubtID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, answers)
}

// CastVote toggles the caller's vote on an answer. The voter is always
// the authenticated user, never a body field.
// POST /api/answers/:id/vote
func (h *DoubtHandler) CastVote(c *gin.Context) {
	answerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid answer id")
		return
	}

	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.voteService.CastVote(middleware.GetUserID(c), uint(answerID), req.Direction)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
