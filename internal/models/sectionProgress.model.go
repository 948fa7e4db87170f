package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinPercent = 0
	MaxPercent = 100
)

// SectionProgress is unique per (cleaning_job_id, vessel_section_id); writes
// go through an ON CONFLICT upsert on that pair.
type SectionProgress struct {
	BaseUUIDModel
	CleaningJobID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_section_progress_job_section,priority:1" json:"cleaningJobId"`
	VesselSectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_section_progress_job_section,priority:2;index:idx_section_progress_section" json:"vesselSectionId"`
	Percent         int       `gorm:"type:integer;not null;default:0;check:chk_section_progress_percent,percent >= 0 AND percent <= 100" json:"percent"`
	Note            *string   `gorm:"type:text"                                                                  json:"note,omitempty"`

	CleaningJob   *CleaningJob   `gorm:"foreignKey:CleaningJobID;constraint:OnDelete:CASCADE"   json:"-"`
	VesselSection *VesselSection `gorm:"foreignKey:VesselSectionID;constraint:OnDelete:CASCADE" json:"vesselSection,omitempty"`
	Media         []Media        `gorm:"foreignKey:SectionProgressID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
}

func (SectionProgress) TableName() string {
	return "section_progress"
}

func (p *SectionProgress) BeforeCreate(tx *gorm.DB) error {
	if err := p.assignID(); err != nil {
		return err
	}
	if p.CleaningJobID == uuid.Nil || p.VesselSectionID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if !IsValidPercent(p.Percent) {
		return gorm.ErrInvalidValue
	}
	return nil
}

func IsValidPercent(percent int) bool {
	return percent >= MinPercent && percent <= MaxPercent
}
