package repository

import "studenthub/models"

// EducationQuery narrows and pages education listings.
type EducationQuery struct {
	Department   string // case-insensitive substring match
	Degree       string // case-insensitive substring match
	BatchYear    string // exact match
	ApprovedOnly bool   // restrict to profiles owned by approved users
	Page         int64  // 1-based
	Limit        int64
}

// EducationRepository defines persistence for education profiles. Every user
// owns at most one profile, keyed by the owner's id.
type EducationRepository interface {
	CreateEducation(e *models.Education) error
	GetEducationByUser(userID string) (*models.Education, error)
	UpdateEducationByUser(userID string, e *models.Education) (*models.Education, error)
	DeleteEducationByUser(userID string) error
	ListEducations(q EducationQuery) ([]*models.Education, int64, error)
	Stats() (*models.EducationStats, error)
}
