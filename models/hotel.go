package models

import (
	"time"

	"github.com/lib/pq"
)

type Hotel struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string         `gorm:"uniqueIndex;size:255;not null" json:"name"`
	State       State          `gorm:"size:32;not null;index" json:"state"`
	Location    string         `gorm:"not null" json:"location"`
	Amenities   pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Description string         `gorm:"type:text" json:"description"`
	Rooms       []Room         `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
	Pictures    []Picture      `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"pictures,omitempty"`
	Comments    []Comment      `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"-"`
}
