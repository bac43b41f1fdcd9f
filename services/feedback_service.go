package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

type FeedbackInput struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required"`
}

// CreateFeedback stamps the author from the verified caller: the role tag
// plus that role's principal id. The body never chooses the author.
func CreateFeedback(db *gorm.DB, caller Caller, in FeedbackInput) (*models.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, invalid("text is required")
	}
	var authorID uint
	switch caller.Role {
	case models.RoleAgency:
		a, err := agencyByEmail(db, caller.Email)
		if err != nil {
			return nil, err
		}
		authorID = a.ID
	case models.RoleSchool:
		s, err := schoolByEmail(db, caller.Email)
		if err != nil {
			return nil, err
		}
		authorID = s.ID
	case models.RoleDriver:
		d, err := driverByEmail(db, caller.Email)
		if err != nil {
			return nil, err
		}
		authorID = d.ID
	case models.RoleHelper:
		h, err := helperByEmail(db, caller.Email)
		if err != nil {
			return nil, err
		}
		authorID = h.ID
	case models.RoleStudent:
		st, err := studentByEmail(db, caller.Email)
		if err != nil {
			return nil, err
		}
		authorID = st.ID
	default:
		return nil, forbidden("Unknown role")
	}

	fb := &models.Feedback{
		AuthorRole: caller.Role,
		AuthorID:   authorID,
		Rating:     in.Rating,
		Text:       strings.TrimSpace(in.Text),
	}
	if err := db.Create(fb).Error; err != nil {
		return nil, err
	}
	return fb, nil
}

func GetFeedback(db *gorm.DB, id uint) (*models.Feedback, error) {
	var fb models.Feedback
	err := db.First(&fb, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Feedback not found")
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func ListFeedback(db *gorm.DB) ([]models.Feedback, error) {
	var rows []models.Feedback
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func FeedbackByAuthor(db *gorm.DB, role string, authorID uint) ([]models.Feedback, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	switch role {
	case models.RoleAgency, models.RoleSchool, models.RoleDriver, models.RoleHelper, models.RoleStudent:
	default:
		return nil, invalid("unknown author role")
	}
	var rows []models.Feedback
	err := db.Where("author_role = ? AND author_id = ?", role, authorID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
