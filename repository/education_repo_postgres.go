package repository

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"studenthub/models"
)

type PostgresEducationRepo struct {
	DB *sql.DB
}

func NewPostgresEducationRepo(db *sql.DB) *PostgresEducationRepo {
	return &PostgresEducationRepo{DB: db}
}

const educationColumns = `e.id, e.user_id, COALESCE(e.degree, ''), COALESCE(e.dob, ''),
	COALESCE(e.department, ''), COALESCE(e.batch_year, ''), COALESCE(e.end_date, ''),
	COALESCE(e.current_college, ''), COALESCE(e.description, ''),
	COALESCE(e.percentage_10th, 0), COALESCE(e.percentage_12th, 0),
	COALESCE(e.graduation_percentage, 0), e.created_at,
	u.id, u.name, COALESCE(u.profile_image, ''), COALESCE(u.bio, ''), u.status`

func scanEducation(row interface{ Scan(...any) error }) (*models.Education, error) {
	e := &models.Education{}
	owner := &models.User{}
	err := row.Scan(&e.ID, &e.UserID, &e.Degree, &e.DOB, &e.Department,
		&e.BatchYear, &e.EndDate, &e.CurrentCollege, &e.Description,
		&e.Percentage10th, &e.Percentage12th, &e.GraduationPercentage, &e.CreatedAt,
		&owner.ID, &owner.Name, &owner.ProfileImage, &owner.Bio, &owner.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	e.Owner = owner
	return e, nil
}

func (r *PostgresEducationRepo) CreateEducation(e *models.Education) error {
	if e.ID == "" {
		e.ID = models.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.DB.Exec(`
		INSERT INTO educations (id, user_id, degree, dob, department, batch_year,
			end_date, current_college, description, percentage_10th, percentage_12th,
			graduation_percentage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, e.ID, e.UserID, e.Degree, e.DOB, e.Department, e.BatchYear, e.EndDate,
		e.CurrentCollege, e.Description, e.Percentage10th, e.Percentage12th,
		e.GraduationPercentage, e.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrProfileExists
	}
	return err
}

func (r *PostgresEducationRepo) GetEducationByUser(userID string) (*models.Education, error) {
	return scanEducation(r.DB.QueryRow(`
		SELECT `+educationColumns+`
		FROM educations e JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1
	`, userID))
}

func (r *PostgresEducationRepo) UpdateEducationByUser(userID string, e *models.Education) (*models.Education, error) {
	res, err := r.DB.Exec(`
		UPDATE educations SET degree = $2, dob = $3, department = $4, batch_year = $5,
			end_date = $6, current_college = $7, description = $8,
			percentage_10th = $9, percentage_12th = $10, graduation_percentage = $11
		WHERE user_id = $1
	`, userID, e.Degree, e.DOB, e.Department, e.BatchYear, e.EndDate,
		e.CurrentCollege, e.Description, e.Percentage10th, e.Percentage12th,
		e.GraduationPercentage)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.GetEducationByUser(userID)
}

func (r *PostgresEducationRepo) DeleteEducationByUser(userID string) error {
	res, err := r.DB.Exec(`DELETE FROM educations WHERE user_id = $1`, userID)
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

func (r *PostgresEducationRepo) ListEducations(q EducationQuery) ([]*models.Education, int64, error) {
	where := []string{"TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Department != "" {
		where = append(where, "e.department ILIKE "+arg("%"+q.Department+"%"))
	}
	if q.Degree != "" {
		where = append(where, "e.degree ILIKE "+arg("%"+q.Degree+"%"))
	}
	if q.BatchYear != "" {
		where = append(where, "e.batch_year = "+arg(q.BatchYear))
	}
	if q.ApprovedOnly {
		where = append(where, "u.status = "+arg(models.StatusApproved))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM educations e JOIN users u ON u.id = e.user_id WHERE `+cond, args...).
		Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + educationColumns + `
		FROM educations e JOIN users u ON u.id = e.user_id
		WHERE ` + cond + `
		ORDER BY e.created_at DESC LIMIT ` + arg(q.Limit) + ` OFFSET ` + arg((q.Page-1)*q.Limit)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Education
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *PostgresEducationRepo) Stats() (*models.EducationStats, error) {
	stats := &models.EducationStats{}

	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM educations`).Scan(&stats.TotalProfiles); err != nil {
		return nil, err
	}

	groupBy := func(field, order string) ([]models.GroupCount, error) {
		rows, err := r.DB.Query(`
			SELECT COALESCE(` + field + `, ''), COUNT(*) FROM educations
			GROUP BY ` + field + ` ORDER BY ` + order)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var groups []models.GroupCount
		for rows.Next() {
			var g models.GroupCount
			if err := rows.Scan(&g.Key, &g.Count); err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
		return groups, rows.Err()
	}

	var err error
	if stats.DepartmentStats, err = groupBy("department", "COUNT(*) DESC"); err != nil {
		return nil, err
	}
	if stats.BatchStats, err = groupBy("batch_year", "batch_year DESC"); err != nil {
		return nil, err
	}
	if stats.DegreeStats, err = groupBy("degree", "COUNT(*) DESC"); err != nil {
		return nil, err
	}
	return stats, nil
}
