package models

import (
	"time"
)

type News struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"size:200;uniqueIndex;not null" json:"title"`
	SubTitle      string    `gorm:"column:sub_title;size:500;not null" json:"sub_title"`
	Body          string    `gorm:"size:4000;not null" json:"body"`
	Image         *string   `gorm:"size:500" json:"image,omitempty"`
	VideoLink     *string   `gorm:"size:500" json:"video_link,omitempty"`
	PublishedDate time.Time `gorm:"not null" json:"published_date"`
	ExpireDate    time.Time `gorm:"not null" json:"expire_date"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Author *Author `gorm:"foreignKey:UserID;references:ID" json:"author,omitempty"`
}

func (News) TableName() string {
	return "news"
}

// Author is a read-only view of the users table owned by the auth package.
type Author struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (Author) TableName() string {
	return "users"
}

type NewsRequest struct {
	Title         string    `json:"title" binding:"required,max=200"`
	SubTitle      string    `json:"sub_title" binding:"required,max=500"`
	Body          string    `json:"body" binding:"required,max=4000"`
	Image         *string   `json:"image,omitempty"`
	VideoLink     *string   `json:"video_link,omitempty" binding:"omitempty,url"`
	PublishedDate time.Time `json:"published_date"`
	ExpireDate    time.Time `json:"expire_date"`
	IsActive      *bool     `json:"is_active,omitempty"`
}
