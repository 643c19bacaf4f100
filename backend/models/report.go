package models

import "time"

type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	LessonID   uint      `json:"lessonId" gorm:"index;not null"`
	ReporterID string    `json:"reporterUserId" gorm:"size:255;not null"`
	Reason     string    `json:"reason" gorm:"size:255;not null"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
