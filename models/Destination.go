package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Destination struct {
	gorm.Model
	Name        string         `json:"name" gorm:"not null;index"`
	Image       string         `json:"image"` // media reference, never raw bytes
	Gallery     datatypes.JSON `json:"gallery"`
	Description string         `json:"description" gorm:"type:text"`
	Price       int            `json:"price" gorm:"not null;check:price >= 0"`
	Offer       bool           `json:"offer" gorm:"default:false;index"`
	Location    string         `json:"location" gorm:"type:varchar(100)"`
	Latitude    *float64       `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude   *float64       `json:"longitude" gorm:"type:decimal(11,8)"`
	Currency    string         `json:"currency" gorm:"type:varchar(3);default:'USD'"`

	Reviews   []Review   `json:"reviews,omitempty" gorm:"foreignKey:DestinationID"`
	Bookings  []Booking  `json:"bookings,omitempty" gorm:"foreignKey:DestinationID"`
	Wishlists []Wishlist `json:"-" gorm:"foreignKey:DestinationID"`
}

// Custom JSON marshaling to convert the Gallery JSON column to an array
func (d *Destination) MarshalJSON() ([]byte, error) {
	type Alias Destination
	aux := &struct {
		Gallery []string `json:"gallery"`
		*Alias
	}{
		Gallery: []string{},
		Alias:   (*Alias)(d),
	}

	if len(d.Gallery) > 0 {
		var gallery []string
		if err := json.Unmarshal(d.Gallery, &gallery); err == nil {
			aux.Gallery = gallery
		}
	}

	return json.Marshal(aux)
}
