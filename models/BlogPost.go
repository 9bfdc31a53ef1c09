package models

import "gorm.io/gorm"

type BlogPost struct {
	gorm.Model
	Title       string `json:"title" gorm:"type:varchar(200);not null"`
	Slug        string `json:"slug" gorm:"type:varchar(200);uniqueIndex;not null"`
	Content     string `json:"content" gorm:"type:text"`
	Image       string `json:"image"`
	AuthorID    uint   `json:"authorID" gorm:"not null;index"`
	IsPublished bool   `json:"isPublished" gorm:"default:true;index"`

	Author User `json:"author" gorm:"foreignKey:AuthorID;references:ID"`
}
