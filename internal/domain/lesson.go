package domain

import (
	"context"
	"fmt"
)

// LessonType content kind of a lesson
type LessonType string

// lesson types
const (
	LessonTypeVideo LessonType = "video"
	LessonTypeText  LessonType = "text"
	LessonTypePDF   LessonType = "pdf"
	LessonTypeQuiz  LessonType = "quiz"
)

// ParseLessonType parse raw type string stored in database
func ParseLessonType(raw string) (LessonType, error) {
	switch lt := LessonType(raw); lt {
	case LessonTypeVideo, LessonTypeText, LessonTypePDF, LessonTypeQuiz:
		return lt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLessonType, raw)
}

// CourseModel course entity
type CourseModel struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Lesson one ordered unit of course content
type Lesson struct {
	ID       string     `json:"id"`
	CourseID string     `json:"course_id"`
	Title    string     `json:"title"`
	Ordinal  int        `json:"ordinal"`
	Type     LessonType `json:"type"`
	HasQuiz  bool       `json:"has_quiz"`
}

// IsQuizBearing a lesson bears a quiz if it is a quiz lesson or is flagged with one
func (l *Lesson) IsQuizBearing() bool {
	return l.HasQuiz || l.Type == LessonTypeQuiz
}

// CourseRepository read-only course and lesson provider
type CourseRepository interface {
	GetCourse(ctx context.Context, courseID string) (*CourseModel, error)
	// ListLessons returns lessons of a course ordered by ordinal
	ListLessons(ctx context.Context, courseID string) ([]*Lesson, error)
}
