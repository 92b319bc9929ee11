package handlers

import (
	"sort"
	"strconv"
	"strings"

	"studenthub/models"
	"studenthub/repository"
)

// In-memory repository fakes mirroring the mongo implementations' behavior
// closely enough for handler tests.

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) newID() string {
	f.nextID++
	return "user-" + strconv.Itoa(f.nextID)
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = f.newID()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusPending
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (f *fakeUserRepo) ListUsers(q repository.UserQuery) ([]*models.User, int64, error) {
	var matched []*models.User
	for _, u := range f.users {
		if q.PublicOnly {
			if u.Status != models.StatusApproved {
				continue
			}
			if q.Search != "" && !containsFold(u.Name, q.Search) && !containsFold(u.Bio, q.Search) {
				continue
			}
		} else {
			if q.Status != "" && q.Status != "all" && u.Status != q.Status {
				continue
			}
			if q.Search != "" && !containsFold(u.Name, q.Search) && !containsFold(u.Email, q.Search) {
				continue
			}
		}
		copied := *u
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeUserRepo) UpdateProfile(id, name, bio string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Name, u.Bio = name, bio
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateProfileImage(id, imageURL string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.ProfileImage = imageURL
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateStatus(id, status, reason string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Status = status
	if status == models.StatusRejected {
		u.RejectionReason = reason
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateRole(id, role string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) BulkUpdateStatus(ids []string, status, reason string) (int64, error) {
	var modified int64
	for _, id := range ids {
		u, ok := f.users[id]
		if !ok {
			continue // non-matching ids are skipped
		}
		u.Status = status
		if status == models.StatusRejected {
			u.RejectionReason = reason
		}
		modified++
	}
	return modified, nil
}

func (f *fakeUserRepo) DeleteUser(id string) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Stats() (*models.UserStats, error) {
	stats := &models.UserStats{}
	for _, u := range f.users {
		stats.TotalUsers++
		switch u.Status {
		case models.StatusPending:
			stats.PendingUsers++
		case models.StatusApproved:
			stats.ApprovedUsers++
		case models.StatusRejected:
			stats.RejectedUsers++
		}
		if u.Role == models.RoleAdmin {
			stats.AdminUsers++
		}
	}
	return stats, nil
}

type fakeEducationRepo struct {
	byUser map[string]*models.Education
	nextID int
}

func newFakeEducationRepo() *fakeEducationRepo {
	return &fakeEducationRepo{byUser: map[string]*models.Education{}}
}

func (f *fakeEducationRepo) CreateEducation(e *models.Education) error {
	if _, ok := f.byUser[e.UserID]; ok {
		return repository.ErrProfileExists
	}
	f.nextID++
	if e.ID == "" {
		e.ID = "edu-" + strconv.Itoa(f.nextID)
	}
	copied := *e
	f.byUser[e.UserID] = &copied
	return nil
}

func (f *fakeEducationRepo) GetEducationByUser(userID string) (*models.Education, error) {
	e, ok := f.byUser[userID]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEducationRepo) UpdateEducationByUser(userID string, e *models.Education) (*models.Education, error) {
	existing, ok := f.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	id, owner, created := existing.ID, existing.UserID, existing.CreatedAt
	*existing = *e
	existing.ID, existing.UserID, existing.CreatedAt = id, owner, created
	copied := *existing
	return &copied, nil
}

func (f *fakeEducationRepo) DeleteEducationByUser(userID string) error {
	if _, ok := f.byUser[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byUser, userID)
	return nil
}

func (f *fakeEducationRepo) ListEducations(q repository.EducationQuery) ([]*models.Education, int64, error) {
	var matched []*models.Education
	for _, e := range f.byUser {
		if q.Department != "" && !containsFold(e.Department, q.Department) {
			continue
		}
		if q.Degree != "" && !containsFold(e.Degree, q.Degree) {
			continue
		}
		if q.BatchYear != "" && e.BatchYear != q.BatchYear {
			continue
		}
		copied := *e
		matched = append(matched, &copied)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeEducationRepo) Stats() (*models.EducationStats, error) {
	return &models.EducationStats{TotalProfiles: int64(len(f.byUser))}, nil
}

type fakePostRepo struct {
	posts  map[string]*models.Post
	nextID int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (f *fakePostRepo) CreatePost(p *models.Post) error {
	f.nextID++
	if p.ID == "" {
		p.ID = "post-" + strconv.Itoa(f.nextID)
	}
	copied := *p
	f.posts[p.ID] = &copied
	return nil
}

func (f *fakePostRepo) GetPostByID(id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostRepo) ListPosts(q repository.PostQuery) ([]*models.Post, int64, error) {
	var matched []*models.Post
	for _, p := range f.posts {
		if q.UserID != "" && p.UserID != q.UserID {
			continue
		}
		copied := *p
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, int64(len(matched)), nil
}

func (f *fakePostRepo) UpdatePost(p *models.Post) error {
	existing, ok := f.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Content = p.Content
	existing.ImageURL = p.ImageURL
	return nil
}

func (f *fakePostRepo) DeletePost(id string) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) DeletePostsByUser(userID string) error {
	for id, p := range f.posts {
		if p.UserID == userID {
			delete(f.posts, id)
		}
	}
	return nil
}

type fakeUploader struct {
	uploaded map[string][]byte
	deleted  []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: map[string][]byte{}}
}

func (f *fakeUploader) Upload(data []byte, key, contentType string) (string, error) {
	f.uploaded[key] = data
	return "https://cdn.test/" + key, nil
}

func (f *fakeUploader) Delete(fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}
