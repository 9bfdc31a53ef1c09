package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID        uint   `json:"userID" gorm:"not null;uniqueIndex:idx_review_user_destination"`
	DestinationID uint   `json:"destinationID" gorm:"not null;uniqueIndex:idx_review_user_destination"`
	Rating        int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment       string `json:"comment" gorm:"type:varchar(1000)"`

	User        User         `json:"user" gorm:"foreignKey:UserID"`
	Destination *Destination `json:"destination,omitempty" gorm:"foreignKey:DestinationID"`
}
