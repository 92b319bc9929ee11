package models

import "time"

// Education is a user's academic record. Each user owns at most one; the
// owner reference is set at creation and never changes.
type Education struct {
	ID                   string    `json:"id" bson:"_id" db:"id"`
	UserID               string    `json:"userId" bson:"user_id" db:"user_id"`
	Degree               string    `json:"degree" bson:"degree" db:"degree"`
	DOB                  string    `json:"dob,omitempty" bson:"dob,omitempty" db:"dob"`
	Department           string    `json:"department" bson:"department" db:"department"`
	BatchYear            string    `json:"batchYear" bson:"batch_year" db:"batch_year"`
	EndDate              string    `json:"endDate,omitempty" bson:"end_date,omitempty" db:"end_date"`
	CurrentCollege       string    `json:"currentCollege" bson:"current_college" db:"current_college"`
	Description          string    `json:"description,omitempty" bson:"description,omitempty" db:"description"`
	Percentage10th       float64   `json:"percentage_10th,omitempty" bson:"percentage_10th,omitempty" db:"percentage_10th"`
	Percentage12th       float64   `json:"percentage_12th,omitempty" bson:"percentage_12th,omitempty" db:"percentage_12th"`
	GraduationPercentage float64   `json:"graduationPercentage,omitempty" bson:"graduation_percentage,omitempty" db:"graduation_percentage"`
	CreatedAt            time.Time `json:"createdAt" bson:"created_at" db:"created_at"`

	// Owner is populated on reads that join the owning user; never stored.
	Owner *User `json:"user,omitempty" bson:"-" db:"-"`
}

// GroupCount is one bucket of an education aggregation (by department, batch
// year or degree).
type GroupCount struct {
	Key   string `json:"key" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// EducationStats is the admin-facing aggregation over education profiles.
type EducationStats struct {
	TotalProfiles   int64        `json:"totalProfiles"`
	DepartmentStats []GroupCount `json:"departmentStats"`
	BatchStats      []GroupCount `json:"batchStats"`
	DegreeStats     []GroupCount `json:"degreeStats"`
}
