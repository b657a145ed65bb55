package models

import "time"

type User struct {
	BaseModel
	Email              string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string   `gorm:"not null" json:"-"`
	FirstName          string   `gorm:"size:100" json:"first_name"`
	LastName           string   `gorm:"size:100" json:"last_name"`
	Role               UserRole `gorm:"type:varchar(20);not null;default:'HR'" json:"role"`
	IsActive           bool     `gorm:"default:false" json:"is_active"`
	MustChangePassword bool     `gorm:"default:true" json:"-"`
}

// Invite authorizes one specific email to self-register as HR. The issuing
// admin is a weak reference: deleting the admin nulls CreatedByID but the
// invite (and the denormalized issuer email) survive.
type Invite struct {
	BaseModel
	Email          string    `gorm:"not null;index" json:"email"`
	Token          string    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedByID    *string   `gorm:"type:uuid" json:"-"`
	CreatedBy      *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedByEmail string    `gorm:"size:255" json:"created_by_email"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	Used           bool      `gorm:"default:false" json:"used"`
}

func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// PasswordReset is single-use and expires 15 minutes after issue. Deleted
// together with its user.
type PasswordReset struct {
	BaseModel
	UserID     string     `gorm:"type:uuid;not null;index" json:"-"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Token      string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"-"`
	Used       bool       `gorm:"default:false" json:"-"`
	ConsumedAt *time.Time `json:"-"`
	RequestIP  string     `gorm:"size:50" json:"-"`
	UserAgent  string     `gorm:"size:255" json:"-"`
}

func (r *PasswordReset) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// EmailVerificationToken carries no expiry: a verification link only
// activates the account, unlike a reset link it cannot take one over.
type EmailVerificationToken struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;index" json:"-"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Token  string `gorm:"uniqueIndex;not null" json:"-"`
	IsUsed bool   `gorm:"default:false" json:"-"`
}
