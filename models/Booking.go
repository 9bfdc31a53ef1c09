package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	gorm.Model
	UserID            uint      `json:"userID" gorm:"not null;index"`
	DestinationID     uint      `json:"destinationID" gorm:"not null;index"`
	Reference         string    `json:"reference" gorm:"type:varchar(36);uniqueIndex"`
	TravelDate        time.Time `json:"travelDate" gorm:"type:date;not null"`
	NumberOfTravelers int       `json:"numberOfTravelers" gorm:"not null;check:number_of_travelers >= 1 AND number_of_travelers <= 10"`
	Status            string    `json:"status" gorm:"type:varchar(20);default:'pending'"` // pending, confirmed, cancelled

	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Destination *Destination `json:"destination,omitempty" gorm:"foreignKey:DestinationID"`
}
