package domain

import "time"

// Answer is one answered item in an assessment submission
type Answer struct {
	ItemID string `json:"item_id" binding:"required"`
	Value  int    `json:"value"`
}

// Submission records one completed assessment. The Pin* columns are a
// denormalized snapshot of the resolution reference for the results
// pack that was shown; they survive hard deletion of the content
// identity so historical results stay reproducible.
type Submission struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PublicID   string    `gorm:"column:public_id;type:char(36);uniqueIndex" json:"public_id"`
	Email      string    `gorm:"column:email;type:varchar(255);index" json:"email,omitempty"`
	AnswersRaw []byte    `gorm:"column:answers;type:mediumblob" json:"-"`
	Score      int       `gorm:"column:score" json:"score"`
	Level      string    `gorm:"column:level;type:varchar(50)" json:"level"`
	PinSource  string    `gorm:"column:pin_source;type:varchar(10)" json:"pin_source"`
	PinRevID   uint64    `gorm:"column:pin_revision_id" json:"pin_revision_id,omitempty"`
	PinHash    string    `gorm:"column:pin_hash;type:char(64)" json:"pin_hash,omitempty"`
	ResolvedAt time.Time `gorm:"column:resolved_at" json:"resolved_at"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Submission) TableName() string { return "submissions" }

// Pin reconstructs the resolution reference stored on the submission
func (s *Submission) Pin() *Pin {
	if s.PinSource == "" {
		return nil
	}
	return &Pin{
		Source:      s.PinSource,
		RevisionID:  s.PinRevID,
		ContentHash: s.PinHash,
		ResolvedAt:  s.ResolvedAt,
	}
}

// CreateSubmissionRequest is the public assessment submission payload
type CreateSubmissionRequest struct {
	Email   string   `json:"email"`
	Answers []Answer `json:"answers" binding:"required"`
}
