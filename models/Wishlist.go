package models

import "time"

type Wishlist struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"userID" gorm:"not null;uniqueIndex:idx_wishlist_user_destination"`
	DestinationID uint      `json:"destinationID" gorm:"not null;uniqueIndex:idx_wishlist_user_destination"`
	AddedAt       time.Time `json:"addedAt" gorm:"autoCreateTime"`

	User        User        `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Destination Destination `json:"destination" gorm:"foreignKey:DestinationID;references:ID"`
}
