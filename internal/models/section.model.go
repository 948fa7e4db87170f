package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VesselSection struct {
	BaseUUIDModel
	VesselID    uuid.UUID `gorm:"type:uuid;not null;index:idx_vessel_sections_vessel_order,priority:1" json:"vesselId"`
	Name        string    `gorm:"type:text;not null"                                                   json:"name"`
	Description *string   `gorm:"type:text"                                                            json:"description,omitempty"`
	Order       int       `gorm:"column:sort_order;not null;default:0;index:idx_vessel_sections_vessel_order,priority:2" json:"order"`

	Vessel *Vessel `gorm:"foreignKey:VesselID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *VesselSection) BeforeCreate(tx *gorm.DB) error {
	if err := s.assignID(); err != nil {
		return err
	}
	return s.validate()
}

func (s *VesselSection) BeforeUpdate(tx *gorm.DB) error {
	return s.validate()
}

func (s *VesselSection) validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.VesselID == uuid.Nil || s.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

// SectionTemplate is copied into VesselSection rows; later edits to the
// template never touch sections already created from it.
type SectionTemplate struct {
	BaseUUIDModel
	Name        string  `gorm:"type:text;not null"                                json:"name"`
	Description *string `gorm:"type:text"                                         json:"description,omitempty"`
	Order       int     `gorm:"column:sort_order;not null;default:0;index"        json:"order"`
}

func (t *SectionTemplate) BeforeCreate(tx *gorm.DB) error {
	if err := t.assignID(); err != nil {
		return err
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

// ToVesselSection copies the template into a new section for vesselID.
func (t *SectionTemplate) ToVesselSection(vesselID uuid.UUID) *VesselSection {
	section := &VesselSection{
		VesselID: vesselID,
		Name:     t.Name,
		Order:    t.Order,
	}
	if t.Description != nil {
		description := *t.Description
		section.Description = &description
	}
	return section
}
