package models

import "time"

// Feedback carries a tagged author reference: AuthorRole says which principal
// table AuthorID points into, so exactly one parent is ever populated.
type Feedback struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AuthorRole string    `json:"author_role" gorm:"size:20;not null;index:idx_feedback_author"`
	AuthorID   uint      `json:"author_id" gorm:"not null;index:idx_feedback_author"`
	Rating     int       `json:"rating" gorm:"not null"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
