package models

import "time"

// Question is a community-contributed question in the shared bank,
// filed under a catalog category/subcategory. Unlike custom quiz
// questions it is not tied to a quiz; anyone can browse the bank,
// only the author can edit.
type Question struct {
	ID            int64     `json:"id"`
	CategoryID    string    `json:"category_id"`
	SubcategoryID string    `json:"subcategory_id,omitempty"`
	Text          string    `json:"question"`
	Options       []string  `json:"options"`
	AnswerIndex   int       `json:"answerIndex"`
	Difficulty    string    `json:"difficulty,omitempty"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuestionFilter narrows a bank listing. A non-zero CreatedBy limits
// the listing to one author's questions, newest first; the public
// listing is oldest first.
type QuestionFilter struct {
	CategoryID    string
	SubcategoryID string
	CreatedBy     int64
}
