// ABOUTME: Flashcard and set endpoints for the SkillSync API client
// ABOUTME: Paged listings plus creation and deletion of sets and cards

package client

import (
	"context"
	"fmt"
)

// FlashcardSet is a named collection of cards inside a group.
type FlashcardSet struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	GroupID     string `json:"groupId"`
}

// Flashcard is a single question/answer card.
type Flashcard struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	SetID    string `json:"setId"`
}

// page mirrors the backend's paged response envelope.
type page struct {
	Content []Flashcard `json:"content"`
}

// setPage is the paged envelope for flashcard sets.
type setPage struct {
	Content []FlashcardSet `json:"content"`
}

// CreateSetRequest is the body for set creation.
type CreateSetRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GroupID     string `json:"groupId"`
}

// CreateCardRequest is the body for card creation.
type CreateCardRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	SetID    string `json:"setId"`
}

// GroupSets calls GET /api/flashcard-sets/group/{groupID}
func (c *Client) GroupSets(ctx context.Context, groupID string) ([]FlashcardSet, error) {
	path := fmt.Sprintf("/api/flashcard-sets/group/%s?page=0&size=50", groupID)
	p, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var pg setPage
	if err := p.decode(&pg); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return pg.Content, nil
}

// CreateSet calls POST /api/flashcard-sets
func (c *Client) CreateSet(ctx context.Context, groupID, title, description string) (*FlashcardSet, error) {
	p, err := c.do(ctx, "POST", "/api/flashcard-sets", CreateSetRequest{Title: title, Description: description, GroupID: groupID})
	if err != nil {
		return nil, err
	}

	var set FlashcardSet
	if err := p.decode(&set); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return &set, nil
}

// SetCards calls GET /api/flashcards/set/{setID}
func (c *Client) SetCards(ctx context.Context, setID string) ([]Flashcard, error) {
	path := fmt.Sprintf("/api/flashcards/set/%s?page=0&size=50", setID)
	p, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var pg page
	if err := p.decode(&pg); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return pg.Content, nil
}

// CreateCard calls POST /api/flashcards
func (c *Client) CreateCard(ctx context.Context, setID, question, answer string) (*Flashcard, error) {
	p, err := c.do(ctx, "POST", "/api/flashcards", CreateCardRequest{Question: question, Answer: answer, SetID: setID})
	if err != nil {
		return nil, err
	}

	var card Flashcard
	if err := p.decode(&card); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return &card, nil
}

// DeleteCard calls DELETE /api/flashcards/{cardID}. A 404 is reported as a
// structured APIError so callers can treat already-deleted as success.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	_, err := c.do(ctx, "DELETE", "/api/flashcards/"+cardID, nil)
	return err
}
