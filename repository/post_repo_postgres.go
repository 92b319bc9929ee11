package repository

import (
	"database/sql"
	"strconv"
	"time"

	"studenthub/models"
)

type PostgresPostRepo struct {
	DB *sql.DB
}

func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{DB: db}
}

const postColumns = `p.id, p.user_id, p.content, COALESCE(p.image_url, ''),
	p.created_at, p.updated_at, u.id, u.name, COALESCE(u.profile_image, ''), u.status`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	author := &models.User{}
	err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Name, &author.ProfileImage, &author.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.Author = author
	return p, nil
}

func (r *PostgresPostRepo) CreatePost(p *models.Post) error {
	if p.ID == "" {
		p.ID = models.NewID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := r.DB.Exec(`
		INSERT INTO posts (id, user_id, content, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.UserID, p.Content, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PostgresPostRepo) GetPostByID(id string) (*models.Post, error) {
	return scanPost(r.DB.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, id))
}

func (r *PostgresPostRepo) ListPosts(q PostQuery) ([]*models.Post, int64, error) {
	cond := "TRUE"
	args := []any{}
	if q.UserID != "" {
		cond = "p.user_id = $1"
		args = append(args, q.UserID)
	}

	var total int64
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM posts p WHERE `+cond, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limitPos := strconv.Itoa(len(args) + 1)
	offsetPos := strconv.Itoa(len(args) + 2)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.user_id
		WHERE ` + cond + `
		ORDER BY p.created_at DESC LIMIT $` + limitPos + ` OFFSET $` + offsetPos

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PostgresPostRepo) UpdatePost(p *models.Post) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.DB.Exec(`
		UPDATE posts SET content = $2, image_url = $3, updated_at = $4 WHERE id = $1
	`, p.ID, p.Content, p.ImageURL, p.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepo) DeletePost(id string) error {
	res, err := r.DB.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepo) DeletePostsByUser(userID string) error {
	_, err := r.DB.Exec(`DELETE FROM posts WHERE user_id = $1`, userID)
	return err
}
