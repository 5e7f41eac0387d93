package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pot-code/skillspark/internal/domain"
	"github.com/pot-code/skillspark/internal/infrastructure/driver"
	"github.com/pot-code/skillspark/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// Tracker derives lesson completion and course progress of one viewer from
// the records kept in a RecordStore.
//
// Reads never fail: a missing, unreadable or malformed record counts as incomplete.
type Tracker struct {
	store RecordStore
	now   func() time.Time
}

// TrackerOption .
type TrackerOption func(*Tracker)

// WithClock replace the clock used to stamp completions
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

// NewTracker create a Tracker over store
func NewTracker(store RecordStore, options ...TrackerOption) *Tracker {
	t := &Tracker{store: store, now: time.Now}
	for _, option := range options {
		option(t)
	}
	return t
}

// Record load the record of lessonID, nil if there is none or it can't be decoded
func (t *Tracker) Record(ctx context.Context, lessonID string) *domain.ProgressRecord {
	key := RecordKey(lessonID)
	raw, err := t.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, driver.ErrKeyNotFound) {
			logging.ExtractLoggerFromContext(ctx).Error("failed to read progress record",
				zap.String("progress.key", key), zap.Error(err))
		}
		return nil
	}
	record, err := decodeRecord(lessonID, raw)
	if err != nil {
		logging.ExtractLoggerFromContext(ctx).Warn("discard malformed progress record",
			zap.String("progress.key", key), zap.Error(err))
		return nil
	}
	return record
}

// IsLessonCompleted lessons without a record are incomplete
func (t *Tracker) IsLessonCompleted(ctx context.Context, lessonID string) bool {
	record := t.Record(ctx, lessonID)
	return record != nil && record.IsCompleted
}

// ToggleCompletion flip the completion state of lessonID and persist it.
//
// CompletedAt is stamped when the lesson becomes complete and cleared otherwise.
func (t *Tracker) ToggleCompletion(ctx context.Context, lessonID string) (*domain.ProgressRecord, error) {
	record := &domain.ProgressRecord{
		LessonID:    lessonID,
		IsCompleted: !t.IsLessonCompleted(ctx, lessonID),
	}
	if record.IsCompleted {
		now := t.now().UTC().Truncate(time.Millisecond)
		record.CompletedAt = &now
	}

	raw, err := encodeRecord(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress record: %w", err)
	}
	if err := t.store.Set(ctx, RecordKey(lessonID), raw); err != nil {
		return nil, fmt.Errorf("failed to save progress record: %w", err)
	}
	return record, nil
}

// CompletedCount number of completed lessons
func (t *Tracker) CompletedCount(ctx context.Context, lessons []*domain.Lesson) int {
	completed := 0
	for _, l := range lessons {
		if t.IsLessonCompleted(ctx, l.ID) {
			completed++
		}
	}
	return completed
}

// CourseProgress completion percentage of lessons, 0 for an empty course
func (t *Tracker) CourseProgress(ctx context.Context, lessons []*domain.Lesson) int {
	return Percentage(t.CompletedCount(ctx, lessons), len(lessons))
}

// FindNextIncompleteLesson first incomplete lesson in ordinal order. When every
// lesson is complete the last one is returned so that "continue" always has a target.
func (t *Tracker) FindNextIncompleteLesson(ctx context.Context, lessons []*domain.Lesson) *domain.Lesson {
	sorted := sortedByOrdinal(lessons)
	for _, l := range sorted {
		if !t.IsLessonCompleted(ctx, l.ID) {
			return l
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	return sorted[len(sorted)-1]
}

// FindNextQuizLesson see FindNextQuizLesson
func (t *Tracker) FindNextQuizLesson(lessons []*domain.Lesson, fromOrdinal int) *domain.Lesson {
	return FindNextQuizLesson(lessons, fromOrdinal)
}

// HasAvailableQuiz see HasAvailableQuiz
func (t *Tracker) HasAvailableQuiz(lessons []*domain.Lesson, currentOrdinal int) bool {
	return HasAvailableQuiz(lessons, currentOrdinal)
}
