package repository

import "studenthub/models"

// UserQuery narrows and pages user listings.
type UserQuery struct {
	Status     string // exact match; empty or "all" means any
	Search     string // case-insensitive substring match
	PublicOnly bool   // approved users only, search over name/bio instead of name/email
	Page       int64  // 1-based
	Limit      int64
}

// UserRepository defines persistence for user records. Lookups return
// (nil, nil) when no record matches; mutations return ErrNotFound instead.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers(q UserQuery) ([]*models.User, int64, error)
	UpdateProfile(id, name, bio string) (*models.User, error)
	UpdateProfileImage(id, imageURL string) (*models.User, error)
	UpdateStatus(id, status, reason string) (*models.User, error)
	UpdateRole(id, role string) (*models.User, error)
	BulkUpdateStatus(ids []string, status, reason string) (int64, error)
	DeleteUser(id string) error
	Stats() (*models.UserStats, error)
}
