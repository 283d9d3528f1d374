package models

import "time"

type Score struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	CategoryID     string    `json:"category_id"`
	SubcategoryID  string    `json:"subcategory_id"`
	Difficulty     string    `json:"difficulty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// LeaderboardEntry is a score joined with the owning username, ordered
// best first.
type LeaderboardEntry struct {
	Username       string    `json:"username"`
	CategoryID     string    `json:"category_id"`
	SubcategoryID  string    `json:"subcategory_id"`
	Difficulty     string    `json:"difficulty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// ScoreFilter narrows leaderboard queries. Zero values mean "any".
type ScoreFilter struct {
	CategoryID    string
	SubcategoryID string
	Difficulty    string
	Limit         int
}
