package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"studenthub/auth"
	"studenthub/models"
	"studenthub/repository"
)

type PostHandler struct {
	Repo    repository.PostRepository
	Uploads Uploader
}

// Create adds a feed post. Content arrives as a multipart field so an image
// can ride along; the image is optional.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	content := r.FormValue("content")
	if content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}

	me := auth.FromContext(r)
	post := &models.Post{
		UserID:  me.ID,
		Content: content,
	}

	if url, ok, err := h.uploadImage(r, me.ID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		post.ImageURL = url
	}

	if err := h.Repo.CreatePost(post); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	})
}

// List serves the public feed, newest first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

// ByUser serves one author's posts.
func (h *PostHandler) ByUser(w http.ResponseWriter, r *http.Request, userID string) {
	h.list(w, r, userID)
}

// Mine serves the caller's own posts.
func (h *PostHandler) Mine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, auth.FromContext(r).ID)
}

func (h *PostHandler) list(w http.ResponseWriter, r *http.Request, userID string) {
	page, limit := parsePagination(r, 20)

	posts, total, err := h.Repo.ListPosts(repository.PostQuery{
		UserID: userID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts":       posts,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// ByID serves a single post.
func (h *PostHandler) ByID(w http.ResponseWriter, r *http.Request, postID string) {
	post, err := h.Repo.GetPostByID(postID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: post})
}

// Update edits a post's content and optionally replaces its image. Only the
// owner may edit; admins override.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request, postID string) {
	post, ok := h.authorize(w, r, postID)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	if content := r.FormValue("content"); content != "" {
		post.Content = content
	}

	if url, replaced, err := h.uploadImage(r, post.UserID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if replaced {
		if post.ImageURL != "" {
			if err := h.Uploads.Delete(post.ImageURL); err != nil {
				log.Printf("failed to delete replaced post image: %v", err)
			}
		}
		post.ImageURL = url
	}

	if err := h.Repo.UpdatePost(post); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Post updated successfully",
		Data:    post,
	})
}

// Delete removes a post and its stored image. Only the owner may delete;
// admins override.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request, postID string) {
	post, ok := h.authorize(w, r, postID)
	if !ok {
		return
	}

	if err := h.Repo.DeletePost(post.ID); err != nil {
		writeRepoError(w, err)
		return
	}
	if post.ImageURL != "" {
		if err := h.Uploads.Delete(post.ImageURL); err != nil {
			log.Printf("failed to delete post image: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Post deleted successfully",
	})
}

// authorize loads the post and enforces the ownership check: the caller must
// own the post or be an admin.
func (h *PostHandler) authorize(w http.ResponseWriter, r *http.Request, postID string) (*models.Post, bool) {
	post, err := h.Repo.GetPostByID(postID)
	if err != nil {
		writeRepoError(w, err)
		return nil, false
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}

	me := auth.FromContext(r)
	if post.UserID != me.ID && !me.IsAdmin() {
		writeError(w, http.StatusForbidden, "Not authorized to modify this post")
		return nil, false
	}
	return post, true
}

func (h *PostHandler) uploadImage(r *http.Request, ownerID string) (string, bool, error) {
	if _, _, err := r.FormFile("image"); err != nil {
		return "", false, nil // no image attached
	}
	data, contentType, err := readImageUpload(r, "image")
	if err != nil {
		return "", false, err
	}
	key := fmt.Sprintf("posts/%s_%d%s", ownerID, time.Now().UnixNano(), extFor(contentType))
	url, err := h.Uploads.Upload(data, key, contentType)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}
