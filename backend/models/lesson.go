package models

import (
	"time"

	"gorm.io/datatypes"
)

// Lesson holds the queryable columns; every other field the client sent
// lives in Content. LikesCount and FavoriteCount always equal the number
// of rows in the matching membership table.
type Lesson struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	LessonerEmail string         `json:"lessonerEmail" gorm:"size:255;index"`
	LessonerName  string         `json:"lessonerName"`
	Title         string         `json:"title"`
	Content       datatypes.JSON `json:"content,omitempty"`
	LikesCount    int            `json:"likesCount"`
	FavoriteCount int            `json:"favoriteCount"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	Likes     []LessonLike     `json:"-"`
	Favorites []LessonFavorite `json:"-"`
	Comments  []LessonComment  `json:"-"`
}

// LessonLike is one membership in a lesson's like set. The composite
// primary key makes "an email appears at most once" a store constraint.
type LessonLike struct {
	LessonID  uint   `gorm:"primaryKey;autoIncrement:false"`
	Email     string `gorm:"primaryKey;size:255"`
	CreatedAt time.Time
}

type LessonFavorite struct {
	LessonID  uint   `gorm:"primaryKey;autoIncrement:false"`
	Email     string `gorm:"primaryKey;size:255"`
	CreatedAt time.Time
}

// LessonComment stores the raw comment object as sent; order is insertion order.
type LessonComment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	LessonID  uint           `json:"lessonId" gorm:"index"`
	Body      datatypes.JSON `json:"body"`
	CreatedAt time.Time      `json:"createdAt"`
}
