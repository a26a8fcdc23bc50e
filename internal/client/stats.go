// ABOUTME: User statistics endpoint for the SkillSync API client
// ABOUTME: XP, level, streak and mastery counters shown on the overview

package client

import "context"

// MyStats is the current user's progress summary.
type MyStats struct {
	XP            int `json:"xp"`
	Level         int `json:"level"`
	StreakCount   int `json:"streakCount"`
	MasteredCards int `json:"masteredCards"`
	DueToday      int `json:"dueToday"`
}

// Stats calls GET /api/me/stats
func (c *Client) Stats(ctx context.Context) (*MyStats, error) {
	p, err := c.do(ctx, "GET", "/api/me/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats MyStats
	if err := p.decode(&stats); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return &stats, nil
}
