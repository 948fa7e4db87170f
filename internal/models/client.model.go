package models

import (
	"strings"

	"gorm.io/gorm"
)

type Client struct {
	BaseUUIDModel
	Name        string  `gorm:"type:text;not null;index:idx_clients_name" json:"name"`
	Email       *string `gorm:"type:text"                                 json:"email,omitempty"`
	Phone       *string `gorm:"type:text"                                 json:"phone,omitempty"`
	CompanyName *string `gorm:"type:text"                                 json:"companyName,omitempty"`
	Address     *string `gorm:"type:text"                                 json:"address,omitempty"`
	BillingNote *string `gorm:"type:text"                                 json:"billingNote,omitempty"`

	Vessels []Vessel `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"vessels,omitempty"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if err := c.assignID(); err != nil {
		return err
	}
	return c.validate()
}

func (c *Client) BeforeUpdate(tx *gorm.DB) error {
	return c.validate()
}

func (c *Client) validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}
