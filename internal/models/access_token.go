package models

import "time"

// AccessToken is a persisted bearer credential bound to exactly one user.
// Only the SHA-256 hash of the secret is stored; the plaintext form handed
// to clients is "<id>|<secret>". Name records the email supplied at
// issuance and is deliberately not unique across repeated logins.
type AccessToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"-"`
	Name       string     `gorm:"size:250;not null" json:"name"`
	TokenHash  string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (AccessToken) TableName() string {
	return "access_tokens"
}
