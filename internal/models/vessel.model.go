package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VesselType string

const (
	VesselTypeYacht     VesselType = "YACHT"
	VesselTypeBoat      VesselType = "BOAT"
	VesselTypeMotorboat VesselType = "MOTORBOAT"
	VesselTypeSailboat  VesselType = "SAILBOAT"
	VesselTypeCatamaran VesselType = "CATAMARAN"
	VesselTypeOther     VesselType = "OTHER"
)

func (t VesselType) IsValid() bool {
	switch t {
	case VesselTypeYacht, VesselTypeBoat, VesselTypeMotorboat,
		VesselTypeSailboat, VesselTypeCatamaran, VesselTypeOther:
		return true
	}
	return false
}

type Vessel struct {
	BaseUUIDModel
	ClientID       uuid.UUID        `gorm:"type:uuid;not null;index:idx_vessels_client" json:"clientId"`
	Name           string           `gorm:"type:text;not null;index:idx_vessels_name"   json:"name"`
	Type           VesselType       `gorm:"type:text;not null"                          json:"type"`
	Length         *decimal.Decimal `gorm:"type:decimal(8,2)"                           json:"length,omitempty"`
	Width          *decimal.Decimal `gorm:"type:decimal(8,2)"                           json:"width,omitempty"`
	RegistrationNo *string          `gorm:"type:text"                                   json:"registrationNo,omitempty"`
	Notes          *string          `gorm:"type:text"                                   json:"notes,omitempty"`

	Client   *Client         `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Sections []VesselSection `gorm:"foreignKey:VesselID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	Jobs     []CleaningJob   `gorm:"foreignKey:VesselID;constraint:OnDelete:CASCADE" json:"jobs,omitempty"`
}

func (v *Vessel) BeforeCreate(tx *gorm.DB) error {
	if err := v.assignID(); err != nil {
		return err
	}
	return v.validate()
}

func (v *Vessel) BeforeUpdate(tx *gorm.DB) error {
	return v.validate()
}

func (v *Vessel) validate() error {
	v.Name = strings.TrimSpace(v.Name)
	if v.ClientID == uuid.Nil || v.Name == "" || !v.Type.IsValid() {
		return gorm.ErrInvalidValue
	}
	return nil
}

type VesselSummary struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type VesselType `json:"type"`
}

func (v *Vessel) ToSummary() VesselSummary {
	return VesselSummary{ID: v.ID.String(), Name: v.Name, Type: v.Type}
}
