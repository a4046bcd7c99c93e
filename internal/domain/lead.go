package domain

import "time"

// Lead is one waitlist signup captured from the marketing site
type Lead struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PublicID  string    `gorm:"column:public_id;type:char(36);uniqueIndex" json:"public_id"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name,omitempty"`
	Source    string    `gorm:"column:source;type:varchar(50)" json:"source,omitempty"`
	Consent   bool      `gorm:"column:consent" json:"consent"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Lead) TableName() string { return "leads" }

// CreateLeadRequest is the public lead-capture payload
type CreateLeadRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	Source  string `json:"source"`
	Consent bool   `json:"consent"`
}
