package domain

import "time"

// Content kinds stored in the versioned content store
const (
	KindQuestionSet = "questionset"
	KindResults     = "results"
)

// Identity lifecycle status
const (
	IdentityActive   = "active"
	IdentityArchived = "archived"
)

// Revision lifecycle status. Informational only: authority over what is
// live belongs to the pointer, never to this field.
const (
	RevisionDraft     = "draft"
	RevisionPublished = "published"
	RevisionArchived  = "archived"
)

// Pin sources
const (
	SourceStore = "store"
	SourceFile  = "file"
)

// IdentityDescriptor is the small tuple of discriminating keys that
// names one logical piece of content. Question sets use Kind + Version
// (+ optional Locale); results packs use Kind + Version + Level.
type IdentityDescriptor struct {
	Kind    string `json:"kind"`
	Version string `json:"version"`
	Locale  string `json:"locale,omitempty"`
	Level   string `json:"level,omitempty"`
}

// ContentIdentity is the stable parent row for one logical piece of
// versionable content, looked up by its discriminating keys.
type ContentIdentity struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Kind      string    `gorm:"column:kind;type:varchar(20);uniqueIndex:idx_identity_keys" json:"kind"`
	Version   string    `gorm:"column:version;type:varchar(50);uniqueIndex:idx_identity_keys" json:"version"`
	Locale    string    `gorm:"column:locale;type:varchar(10);uniqueIndex:idx_identity_keys" json:"locale,omitempty"`
	Level     string    `gorm:"column:level;type:varchar(50);uniqueIndex:idx_identity_keys" json:"level,omitempty"`
	Status    string    `gorm:"column:status;type:varchar(10);default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentIdentity) TableName() string { return "content_identities" }

// Descriptor returns the identity's discriminating keys
func (i *ContentIdentity) Descriptor() IdentityDescriptor {
	return IdentityDescriptor{Kind: i.Kind, Version: i.Version, Locale: i.Locale, Level: i.Level}
}

// ContentRevision is one immutable, numbered snapshot of a content
// document under an identity. Revisions are never mutated or deleted
// individually; only whole-identity deletion removes them.
type ContentRevision struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	IdentityID    uint64    `gorm:"column:identity_id;uniqueIndex:idx_revision_identity_no" json:"identity_id"`
	RevisionNo    uint      `gorm:"column:revision_no;uniqueIndex:idx_revision_identity_no" json:"revision_no"`
	Status        string    `gorm:"column:status;type:varchar(10);default:'draft'" json:"status"`
	SchemaVersion string    `gorm:"column:schema_version;type:varchar(30)" json:"schema_version"`
	Document      []byte    `gorm:"column:document;type:mediumblob" json:"-"`
	ContentHash   string    `gorm:"column:content_hash;type:char(64)" json:"content_hash"`
	Notes         string    `gorm:"column:notes;type:varchar(500)" json:"notes,omitempty"`
	CreatedBy     string    `gorm:"column:created_by;type:varchar(100)" json:"created_by,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContentRevision) TableName() string { return "content_revisions" }

// ContentPointer holds the single mutable published/preview reference
// per identity, created lazily on the first pointer write. Both
// references must point to a revision of the same identity.
type ContentPointer struct {
	IdentityID          uint64    `gorm:"column:identity_id;primaryKey" json:"identity_id"`
	PublishedRevisionID *uint64   `gorm:"column:published_revision_id" json:"published_revision_id,omitempty"`
	PreviewRevisionID   *uint64   `gorm:"column:preview_revision_id" json:"preview_revision_id,omitempty"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentPointer) TableName() string { return "content_pointers" }

// Pin records exactly which revision (or that the file fallback) produced
// a previously-shown document, so downstream consumers can reproduce
// historical results after the pointer moves. Value object, not a table.
type Pin struct {
	Source      string    `json:"source"`
	IdentityID  uint64    `json:"identity_id,omitempty"`
	RevisionID  uint64    `json:"revision_id,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	ResolvedAt  time.Time `json:"resolved_at"`
}

// IdentitySummary is the admin listing row: an identity plus the
// revision numbers its pointer currently references.
type IdentitySummary struct {
	ContentIdentity
	RevisionCount       int64 `json:"revision_count"`
	PublishedRevisionNo *uint `json:"published_revision_no,omitempty"`
	PreviewRevisionNo   *uint `json:"preview_revision_no,omitempty"`
}
