package repository

import "studenthub/models"

// PostQuery narrows and pages the post feed.
type PostQuery struct {
	UserID string // restrict to one author; empty means everyone
	Page   int64  // 1-based
	Limit  int64
}

// PostRepository defines persistence for feed posts.
type PostRepository interface {
	CreatePost(p *models.Post) error
	GetPostByID(id string) (*models.Post, error)
	ListPosts(q PostQuery) ([]*models.Post, int64, error)
	UpdatePost(p *models.Post) error
	DeletePost(id string) error
	DeletePostsByUser(userID string) error
}
