package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"-"`
	AvatarURL string `json:"avatarURL"`
	Role      string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, admin

	Bookings  []Booking  `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Reviews   []Review   `json:"-" gorm:"foreignKey:UserID"`
	Wishlists []Wishlist `json:"-" gorm:"foreignKey:UserID"`
}
