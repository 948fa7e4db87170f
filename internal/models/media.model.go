package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaKind string

const (
	MediaKindBefore MediaKind = "BEFORE"
	MediaKindAfter  MediaKind = "AFTER"
)

func (k MediaKind) IsValid() bool {
	return k == MediaKindBefore || k == MediaKindAfter
}

// Media is a before/after photo reference. URL is opaque; rows are never
// updated, only created and deleted.
type Media struct {
	BaseUUIDModel
	SectionProgressID uuid.UUID `gorm:"type:uuid;not null;index:idx_media_section_progress" json:"sectionProgressId"`
	Kind              MediaKind `gorm:"type:text;not null"                                  json:"kind"`
	URL               string    `gorm:"column:url;type:text;not null"                       json:"url"`
	Caption           *string   `gorm:"type:text"                                           json:"caption,omitempty"`

	SectionProgress *SectionProgress `gorm:"foreignKey:SectionProgressID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Media) TableName() string {
	return "media"
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if err := m.assignID(); err != nil {
		return err
	}
	if m.SectionProgressID == uuid.Nil || !m.Kind.IsValid() || m.URL == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}
