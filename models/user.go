package models

import "time"

// User roles and approval states. Status gates what a user can see and
// moderate, not whether they can log in.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type User struct {
	ID              string    `json:"id" bson:"_id" db:"id"`
	Name            string    `json:"name" bson:"name" db:"name"`
	Email           string    `json:"email,omitempty" bson:"email" db:"email"`
	Password        string    `json:"-" bson:"password" db:"password"`
	Role            string    `json:"role" bson:"role" db:"role"`
	Status          string    `json:"status" bson:"status" db:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty" bson:"rejection_reason,omitempty" db:"rejection_reason"`
	Bio             string    `json:"bio,omitempty" bson:"bio,omitempty" db:"bio"`
	ProfileImage    string    `json:"profileImage,omitempty" bson:"profile_image,omitempty" db:"profile_image"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns a copy safe for unauthenticated consumers: the email is
// stripped along with the password hash (which never serializes anyway).
func (u User) Public() User {
	u.Email = ""
	u.Password = ""
	u.RejectionReason = ""
	return u
}

// UserStats is the admin dashboard summary.
type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	PendingUsers  int64 `json:"pendingUsers"`
	ApprovedUsers int64 `json:"approvedUsers"`
	RejectedUsers int64 `json:"rejectedUsers"`
	AdminUsers    int64 `json:"adminUsers"`
	RecentSignups int64 `json:"recentSignups"`
}
