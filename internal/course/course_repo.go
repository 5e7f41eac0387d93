package course

import (
	"context"
	"fmt"

	"github.com/pot-code/skillspark/internal/domain"
	"github.com/pot-code/skillspark/internal/infrastructure/driver"
)

// Repository course catalog backed by SQL
type Repository struct {
	Conn driver.ITransactionalDB `dep:""`
}

var _ domain.CourseRepository = &Repository{}

// NewCourseRepository ...
func NewCourseRepository(Conn driver.ITransactionalDB) *Repository {
	return &Repository{
		Conn: Conn,
	}
}

// GetCourse returns domain.ErrNoSuchCourse if courseID is unknown
func (repo *Repository) GetCourse(ctx context.Context, courseID string) (*domain.CourseModel, error) {
	conn := repo.Conn
	rows, err := conn.QueryContext(ctx, `
SELECT
    c.id, c.title, c.description
FROM
    course c
WHERE
    c.id = $1
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNoSuchCourse
	}
	course := new(domain.CourseModel)
	if err := rows.Scan(&course.ID, &course.Title, &course.Description); err != nil {
		return nil, err
	}
	return course, nil
}

// ListLessons lessons of courseID ordered by ordinal
func (repo *Repository) ListLessons(ctx context.Context, courseID string) ([]*domain.Lesson, error) {
	conn := repo.Conn
	rows, err := conn.QueryContext(ctx, `
SELECT
    l.id, l.course_id, l.title, l.ordinal, l."type", l.has_quiz
FROM
    lesson l
WHERE
    l.course_id = $1
ORDER BY l.ordinal
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.Lesson, 0)
	for rows.Next() {
		var rawType string
		item := new(domain.Lesson)
		if err := rows.Scan(&item.ID, &item.CourseID, &item.Title, &item.Ordinal, &rawType, &item.HasQuiz); err != nil {
			return nil, err
		}
		if item.Type, err = domain.ParseLessonType(rawType); err != nil {
			return nil, fmt.Errorf("lesson %s: %w", item.ID, err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
