package services

import (
	"errors"

	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/pkg/response"
	"gorm.io/gorm"
)

// VoteService manages the single active vote a user holds on an answer.
// Casting the same direction again toggles the vote off; casting the
// opposite direction switches it. The answer author's credit score moves
// with every transition.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// VoteResult carries the recounted totals after a vote.
type VoteResult struct {
	Upvote   int `json:"upvote"`
	Downvote int `json:"downvote"`
}

// CastVote applies one vote transition for (voterID, answerID).
//
// Transitions and author score deltas:
//
//	none     -> upvote:   cast,   +1
//	none     -> downvote: cast,   -1
//	upvote   -> upvote:   retract, -1
//	upvote   -> downvote: switch, -2
//	downvote -> downvote: retract, +1
//	downvote -> upvote:   switch, +2
//
// The displayed counters are recomputed from the vote rows after the
// update rather than adjusted by the delta, so a retry after a partial
// failure converges to the correct counts.
func (s *VoteService) CastVote(voterID, answerID uint, direction string) (*VoteResult, error) {
	if direction != models.VoteUp && direction != models.VoteDown {
		return nil, response.NewBadRequest("invalid vote type, must be 'upvote' or 'downvote'")
	}

	var answer models.Answer
	if err := s.db.First(&answer, answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("answer not found")
		}
		return nil, err
	}

	var voter models.User
	if err := s.db.First(&voter, voterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("voting user not found")
		}
		return nil, err
	}

	var author models.User
	if err := s.db.First(&author, answer.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("author of the answer not found")
		}
		return nil, err
	}

	result := VoteResult{}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.AnswerVote
		err := tx.Where("user_id = ? AND answer_id = ?", voterID, answerID).First(&existing).Error

		var delta int
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no active vote: cast
			vote := models.AnswerVote{UserID: voterID, AnswerID: answerID, Direction: direction}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if direction == models.VoteUp {
				delta = 1
			} else {
				delta = -1
			}
		case err != nil:
			return err
		case existing.Direction == direction:
			// same direction: toggle off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if direction == models.VoteUp {
				delta = -1
			} else {
				delta = 1
			}
		default:
			// opposite direction: switch
			if err := tx.Model(&existing).Update("direction", direction).Error; err != nil {
				return err
			}
			if direction == models.VoteUp {
				delta = 2
			} else {
				delta = -2
			}
		}

		// Authoritative recount of the displayed counters.
		var up, down int64
		if err := tx.Model(&models.AnswerVote{}).
			Where("answer_id = ? AND direction = ?", answerID, models.VoteUp).
			Count(&up).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AnswerVote{}).
			Where("answer_id = ? AND direction = ?", answerID, models.VoteDown).
			Count(&down).Error; err != nil {
			return err
		}

		if err := tx.Model(&answer).Updates(map[string]interface{}{
			"upvote":   up,
			"downvote": down,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", author.ID).
			Update("credit_score", gorm.Expr("credit_score + ?", delta)).Error; err != nil {
			return err
		}

		result.Upvote = int(up)
		result.Downvote = int(down)
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}
