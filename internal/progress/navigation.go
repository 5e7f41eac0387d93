package progress

import (
	"math"
	"sort"

	"github.com/pot-code/skillspark/internal/domain"
)

// sortedByOrdinal returns a copy of lessons in ordinal order, the input is left untouched
func sortedByOrdinal(lessons []*domain.Lesson) []*domain.Lesson {
	sorted := make([]*domain.Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ordinal < sorted[j].Ordinal
	})
	return sorted
}

// Percentage round(100 * completed / total), 0 when total is 0
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// FindNextQuizLesson first quiz-bearing lesson strictly after fromOrdinal
func FindNextQuizLesson(lessons []*domain.Lesson, fromOrdinal int) *domain.Lesson {
	for _, l := range sortedByOrdinal(lessons) {
		if l.Ordinal > fromOrdinal && l.IsQuizBearing() {
			return l
		}
	}
	return nil
}

// HasAvailableQuiz the lesson at currentOrdinal bears a quiz, or a later one does
func HasAvailableQuiz(lessons []*domain.Lesson, currentOrdinal int) bool {
	for _, l := range lessons {
		if l.Ordinal == currentOrdinal && l.IsQuizBearing() {
			return true
		}
	}
	return FindNextQuizLesson(lessons, currentOrdinal) != nil
}

// AdjacentLessons previous and next lesson around ordinal, nil at either end
func AdjacentLessons(lessons []*domain.Lesson, ordinal int) (prev, next *domain.Lesson) {
	for _, l := range sortedByOrdinal(lessons) {
		switch {
		case l.Ordinal < ordinal:
			prev = l
		case l.Ordinal > ordinal:
			return prev, l
		}
	}
	return prev, nil
}

// FindLesson lookup lesson by id
func FindLesson(lessons []*domain.Lesson, lessonID string) *domain.Lesson {
	for _, l := range lessons {
		if l.ID == lessonID {
			return l
		}
	}
	return nil
}

// EstimatedMinutes flat per-lesson duration estimate
func EstimatedMinutes(lessons []*domain.Lesson, perLesson int) int {
	return len(lessons) * perLesson
}
