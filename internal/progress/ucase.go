package progress

import (
	"context"

	"github.com/pot-code/skillspark/internal/domain"
	"github.com/pot-code/skillspark/internal/infrastructure/driver"
	"go.elastic.co/apm"
)

// UseCaseImpl viewer progress over the course catalog
type UseCaseImpl struct {
	CourseRepository domain.CourseRepository
	KVStore          driver.KeyValueDB
	MinutesPerLesson int
	options          []TrackerOption
}

var _ domain.ProgressUseCase = &UseCaseImpl{}

// NewProgressUseCase ...
func NewProgressUseCase(
	CourseRepository domain.CourseRepository,
	KVStore driver.KeyValueDB,
	MinutesPerLesson int,
	options ...TrackerOption,
) *UseCaseImpl {
	return &UseCaseImpl{CourseRepository, KVStore, MinutesPerLesson, options}
}

func (pu *UseCaseImpl) tracker(viewer *domain.UserModel) *Tracker {
	return NewTracker(NewViewerStore(pu.KVStore, viewer.ID), pu.options...)
}

func (pu *UseCaseImpl) loadLessons(ctx context.Context, courseID string) ([]*domain.Lesson, error) {
	if _, err := pu.CourseRepository.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return pu.CourseRepository.ListLessons(ctx, courseID)
}

func (pu *UseCaseImpl) summarize(ctx context.Context, tracker *Tracker, courseID string, lessons []*domain.Lesson) *domain.CourseSummary {
	completed := tracker.CompletedCount(ctx, lessons)
	return &domain.CourseSummary{
		CourseID:         courseID,
		TotalLessons:     len(lessons),
		CompletedLessons: completed,
		Progress:         Percentage(completed, len(lessons)),
		NextLesson:       tracker.FindNextIncompleteLesson(ctx, lessons),
		EstimatedMinutes: EstimatedMinutes(lessons, pu.MinutesPerLesson),
		RemainingMinutes: (len(lessons) - completed) * pu.MinutesPerLesson,
	}
}

// GetCourseSummary completion percentage and continue target of a course
func (pu *UseCaseImpl) GetCourseSummary(ctx context.Context, viewer *domain.UserModel, courseID string) (*domain.CourseSummary, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCase.GetCourseSummary", "service")
	defer apmSpan.End()

	lessons, err := pu.loadLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return pu.summarize(ctx, pu.tracker(viewer), courseID, lessons), nil
}

// GetLessons lessons of a course with the viewer's completion state
func (pu *UseCaseImpl) GetLessons(ctx context.Context, viewer *domain.UserModel, courseID string) ([]*domain.LessonStatus, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCase.GetLessons", "service")
	defer apmSpan.End()

	lessons, err := pu.loadLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	tracker := pu.tracker(viewer)
	result := make([]*domain.LessonStatus, 0, len(lessons))
	for _, l := range sortedByOrdinal(lessons) {
		status := &domain.LessonStatus{Lesson: l}
		if record := tracker.Record(ctx, l.ID); record != nil {
			status.Completed = record.IsCompleted
			status.CompletedAt = record.CompletedAt
		}
		result = append(result, status)
	}
	return result, nil
}

// GetLessonNavigation completion state and navigation targets of a lesson
func (pu *UseCaseImpl) GetLessonNavigation(ctx context.Context, viewer *domain.UserModel, courseID, lessonID string) (*domain.LessonNavigation, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCase.GetLessonNavigation", "service")
	defer apmSpan.End()

	lessons, err := pu.loadLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lesson := FindLesson(lessons, lessonID)
	if lesson == nil {
		return nil, domain.ErrNoSuchLesson
	}

	tracker := pu.tracker(viewer)
	prev, next := AdjacentLessons(lessons, lesson.Ordinal)
	return &domain.LessonNavigation{
		Lesson:           lesson,
		Completed:        tracker.IsLessonCompleted(ctx, lesson.ID),
		Previous:         prev,
		Next:             next,
		NextQuiz:         tracker.FindNextQuizLesson(lessons, lesson.Ordinal),
		HasAvailableQuiz: tracker.HasAvailableQuiz(lessons, lesson.Ordinal),
	}, nil
}

// GetNextQuiz first quiz-bearing lesson after fromOrdinal, nil if there is none
func (pu *UseCaseImpl) GetNextQuiz(ctx context.Context, viewer *domain.UserModel, courseID string, fromOrdinal int) (*domain.Lesson, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCase.GetNextQuiz", "service")
	defer apmSpan.End()

	lessons, err := pu.loadLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return pu.tracker(viewer).FindNextQuizLesson(lessons, fromOrdinal), nil
}

// ToggleLesson flip completion of a lesson and return the refreshed course summary
func (pu *UseCaseImpl) ToggleLesson(ctx context.Context, viewer *domain.UserModel, courseID, lessonID string) (*domain.ToggleResult, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCase.ToggleLesson", "service")
	defer apmSpan.End()

	lessons, err := pu.loadLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if FindLesson(lessons, lessonID) == nil {
		return nil, domain.ErrNoSuchLesson
	}

	tracker := pu.tracker(viewer)
	record, err := tracker.ToggleCompletion(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	return &domain.ToggleResult{
		Record:  record,
		Summary: pu.summarize(ctx, tracker, courseID, lessons),
	}, nil
}
