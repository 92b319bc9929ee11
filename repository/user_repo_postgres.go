package repository

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"studenthub/models"

	"github.com/lib/pq"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

const userColumns = `id, name, email, password, role, status,
	COALESCE(rejection_reason, ''), COALESCE(bio, ''), COALESCE(profile_image, ''), created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Role, &user.Status, &user.RejectionReason, &user.Bio,
		&user.ProfileImage, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

func (r *PostgresUserRepo) CreateUser(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if user.ID == "" {
		user.ID = models.NewID()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusPending
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.DB.Exec(`
		INSERT INTO users (id, name, email, password, role, status, bio, profile_image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.Name, user.Email, user.Password, user.Role, user.Status,
		user.Bio, user.ProfileImage, user.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *PostgresUserRepo) GetUserByEmail(email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, strings.ToLower(email)))
}

func (r *PostgresUserRepo) GetUserByID(id string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

func (r *PostgresUserRepo) ListUsers(q UserQuery) ([]*models.User, int64, error) {
	where := []string{"TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.PublicOnly {
		where = append(where, "status = "+arg(models.StatusApproved))
		if q.Search != "" {
			p := arg("%" + q.Search + "%")
			where = append(where, "(name ILIKE "+p+" OR bio ILIKE "+p+")")
		}
	} else {
		if q.Status != "" && q.Status != "all" {
			where = append(where, "status = "+arg(q.Status))
		}
		if q.Search != "" {
			p := arg("%" + q.Search + "%")
			where = append(where, "(name ILIKE "+p+" OR email ILIKE "+p+")")
		}
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + cond +
		` ORDER BY created_at DESC LIMIT ` + arg(q.Limit) + ` OFFSET ` + arg((q.Page-1)*q.Limit)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *PostgresUserRepo) updateReturning(query string, args ...any) (*models.User, error) {
	user, err := scanUser(r.DB.QueryRow(query, args...))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (r *PostgresUserRepo) UpdateProfile(id, name, bio string) (*models.User, error) {
	return r.updateReturning(`
		UPDATE users SET name = $2, bio = $3 WHERE id = $1 RETURNING `+userColumns, id, name, bio)
}

func (r *PostgresUserRepo) UpdateProfileImage(id, imageURL string) (*models.User, error) {
	return r.updateReturning(`
		UPDATE users SET profile_image = $2 WHERE id = $1 RETURNING `+userColumns, id, imageURL)
}

func (r *PostgresUserRepo) UpdateStatus(id, status, reason string) (*models.User, error) {
	if status == models.StatusRejected {
		return r.updateReturning(`
			UPDATE users SET status = $2, rejection_reason = $3 WHERE id = $1 RETURNING `+userColumns,
			id, status, reason)
	}
	return r.updateReturning(`
		UPDATE users SET status = $2 WHERE id = $1 RETURNING `+userColumns, id, status)
}

func (r *PostgresUserRepo) UpdateRole(id, role string) (*models.User, error) {
	return r.updateReturning(`
		UPDATE users SET role = $2 WHERE id = $1 RETURNING `+userColumns, id, role)
}

func (r *PostgresUserRepo) BulkUpdateStatus(ids []string, status, reason string) (int64, error) {
	var res sql.Result
	var err error
	if status == models.StatusRejected {
		res, err = r.DB.Exec(`
			UPDATE users SET status = $2, rejection_reason = $3 WHERE id = ANY($1)
		`, pq.Array(ids), status, reason)
	} else {
		res, err = r.DB.Exec(`
			UPDATE users SET status = $2 WHERE id = ANY($1)
		`, pq.Array(ids), status)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresUserRepo) DeleteUser(id string) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
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

func (r *PostgresUserRepo) Stats() (*models.UserStats, error) {
	stats := &models.UserStats{}
	sevenDaysAgo := time.Now().UTC().AddDate(0, 0, -7)

	err := r.DB.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $1),
		       COUNT(*) FILTER (WHERE status = $2),
		       COUNT(*) FILTER (WHERE status = $3),
		       COUNT(*) FILTER (WHERE role = $4),
		       COUNT(*) FILTER (WHERE created_at >= $5)
		FROM users
	`, models.StatusPending, models.StatusApproved, models.StatusRejected,
		models.RoleAdmin, sevenDaysAgo).
		Scan(&stats.TotalUsers, &stats.PendingUsers, &stats.ApprovedUsers,
			&stats.RejectedUsers, &stats.AdminUsers, &stats.RecentSignups)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
