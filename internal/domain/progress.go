package domain

import (
	"context"
	"time"
)

// ProgressRecord per-lesson completion marker
type ProgressRecord struct {
	LessonID    string     `json:"lessonId"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

// LessonStatus lesson with the viewer's completion state
type LessonStatus struct {
	*Lesson
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CourseSummary derived progress of a viewer in a course
type CourseSummary struct {
	CourseID         string  `json:"course_id"`
	TotalLessons     int     `json:"total_lessons"`
	CompletedLessons int     `json:"completed_lessons"`
	Progress         int     `json:"progress"`
	NextLesson       *Lesson `json:"next_lesson"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	RemainingMinutes int     `json:"remaining_minutes"`
}

// LessonNavigation completion and navigation targets around a lesson
type LessonNavigation struct {
	Lesson           *Lesson `json:"lesson"`
	Completed        bool    `json:"completed"`
	Previous         *Lesson `json:"previous"`
	Next             *Lesson `json:"next"`
	NextQuiz         *Lesson `json:"next_quiz"`
	HasAvailableQuiz bool    `json:"has_available_quiz"`
}

// ToggleResult outcome of a completion toggle
type ToggleResult struct {
	Record  *ProgressRecord `json:"record"`
	Summary *CourseSummary  `json:"summary"`
}

// ProgressUseCase viewer progress operations
type ProgressUseCase interface {
	GetCourseSummary(ctx context.Context, viewer *UserModel, courseID string) (*CourseSummary, error)
	GetLessons(ctx context.Context, viewer *UserModel, courseID string) ([]*LessonStatus, error)
	GetLessonNavigation(ctx context.Context, viewer *UserModel, courseID, lessonID string) (*LessonNavigation, error)
	GetNextQuiz(ctx context.Context, viewer *UserModel, courseID string, fromOrdinal int) (*Lesson, error)
	ToggleLesson(ctx context.Context, viewer *UserModel, courseID, lessonID string) (*ToggleResult, error)
}
