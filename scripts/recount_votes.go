package main

import (
	"fmt"
	"os"

	"github.com/collabconnect/backend/internal/config"
	"github.com/collabconnect/backend/internal/models"
)

// One-off maintenance tool: recounts the cached upvote/downvote totals on
// answers from the answer_votes rows. Useful after a manual data fixup.
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := models.Open(&cfg.Database)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	var answers []models.Answer
	if err := db.Order("id").Find(&answers).Error; err != nil {
		fmt.Printf("Failed to read answers: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d answers:\n\n", len(answers))

	fixed := 0
	for _, ans := range answers {
		var up, down int64
		if err := db.Model(&models.AnswerVote{}).
			Where("answer_id = ? AND direction = ?", ans.ID, models.VoteUp).
			Count(&up).Error; err != nil {
			fmt.Printf("Failed to count upvotes for answer %d: %v\n", ans.ID, err)
			os.Exit(1)
		}
		if err := db.Model(&models.AnswerVote{}).
			Where("answer_id = ? AND direction = ?", ans.ID, models.VoteDown).
			Count(&down).Error; err != nil {
			fmt.Printf("Failed to count downvotes for answer %d: %v\n", ans.ID, err)
			os.Exit(1)
		}

		if int(up) == ans.Upvote && int(down) == ans.Downvote {
			continue
		}

		fmt.Printf("Answer %d: stored %d/%d, actual %d/%d\n",
			ans.ID, ans.Upvote, ans.Downvote, up, down)

		if err := db.Model(&models.Answer{}).Where("id = ?", ans.ID).
			Updates(map[string]interface{}{"upvote": up, "downvote": down}).Error; err != nil {
			fmt.Printf("Failed to update answer %d: %v\n", ans.ID, err)
			os.Exit(1)
		}
		fixed++
	}

	fmt.Printf("\nDone. %d answers corrected.\n", fixed)
}
