// ABOUTME: Study endpoints for the SkillSync API client
// ABOUTME: Fetches due cards and submits review grades to the remote scheduler

package client

import (
	"context"
	"fmt"
)

// DueCard is one flashcard the remote scheduler considers ready for review.
// Immutable once fetched; the study engine only ever drops it from its queue.
type DueCard struct {
	FlashcardID string `json:"flashcardId"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}

// ReviewRequest carries the recall grade for one reviewed card.
// Grades: 0=Again 1=Hard 2=Good 3=Easy.
type ReviewRequest struct {
	Grade int `json:"grade"`
}

// DueCards calls GET /api/sets/{setID}/study/due, returning up to limit cards
// in the order the scheduler wants them reviewed.
func (c *Client) DueCards(ctx context.Context, setID string, limit int) ([]DueCard, error) {
	path := fmt.Sprintf("/api/sets/%s/study/due?limit=%d", setID, limit)
	p, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var cards []DueCard
	if err := p.decode(&cards); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return cards, nil
}

// SubmitReview calls POST /api/sets/{setID}/study/{cardID}/review. Success is
// a no-content response; the next due date is the scheduler's business.
func (c *Client) SubmitReview(ctx context.Context, setID, cardID string, grade int) error {
	path := fmt.Sprintf("/api/sets/%s/study/%s/review", setID, cardID)
	_, err := c.do(ctx, "POST", path, ReviewRequest{Grade: grade})
	return err
}
