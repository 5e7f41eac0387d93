package course

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pot-code/skillspark/internal/domain"
	"github.com/pot-code/skillspark/internal/infrastructure/driver/drivertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetCourse(t *testing.T) {
	tests := []struct {
		name    string
		rows    *drivertest.Rows
		want    *domain.CourseModel
		wantErr error
	}{
		{
			name: "found",
			rows: drivertest.NewRows([]interface{}{"go101", "Go 101", "basics"}),
			want: &domain.CourseModel{ID: "go101", Title: "Go 101", Description: "basics"},
		},
		{
			name:    "missing",
			rows:    drivertest.NewRows(),
			wantErr: domain.ErrNoSuchCourse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &drivertest.FakeDB{OnQuery: func(query string, args []interface{}) (*drivertest.Rows, error) {
				return tt.rows, nil
			}}
			repo := NewCourseRepository(db)

			got, err := repo.GetCourse(context.Background(), "go101")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.True(t, tt.rows.Closed)
			require.Len(t, db.Queries, 1)
			assert.Equal(t, []interface{}{"go101"}, db.Queries[0].Args)
		})
	}
}

func TestRepository_ListLessons(t *testing.T) {
	db := &drivertest.FakeDB{OnQuery: func(query string, args []interface{}) (*drivertest.Rows, error) {
		return drivertest.NewRows(
			[]interface{}{"intro", "go101", "Intro", 1, "video", false},
			[]interface{}{"check", "go101", "Check", 2, "quiz", false},
			[]interface{}{"notes", "go101", "Notes", 3, "pdf", true},
		), nil
	}}
	repo := NewCourseRepository(db)

	lessons, err := repo.ListLessons(context.Background(), "go101")
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, domain.LessonTypeQuiz, lessons[1].Type)
	assert.True(t, lessons[2].HasQuiz)
	assert.Equal(t, 3, lessons[2].Ordinal)
	assert.True(t, strings.Contains(db.Queries[0].Query, "ORDER BY l.ordinal"))
}

func TestRepository_ListLessonsEmpty(t *testing.T) {
	repo := NewCourseRepository(&drivertest.FakeDB{})

	lessons, err := repo.ListLessons(context.Background(), "empty")
	require.NoError(t, err)
	assert.NotNil(t, lessons)
	assert.Empty(t, lessons)
}

func TestRepository_ListLessonsUnknownType(t *testing.T) {
	db := &drivertest.FakeDB{OnQuery: func(query string, args []interface{}) (*drivertest.Rows, error) {
		return drivertest.NewRows([]interface{}{"intro", "go101", "Intro", 1, "audio", false}), nil
	}}
	repo := NewCourseRepository(db)

	_, err := repo.ListLessons(context.Background(), "go101")
	assert.ErrorIs(t, err, domain.ErrUnknownLessonType)
}

func TestRepository_QueryError(t *testing.T) {
	boom := errors.New("connection reset")
	db := &drivertest.FakeDB{OnQuery: func(query string, args []interface{}) (*drivertest.Rows, error) {
		return nil, boom
	}}
	repo := NewCourseRepository(db)

	_, err := repo.GetCourse(context.Background(), "go101")
	assert.ErrorIs(t, err, boom)
	_, err = repo.ListLessons(context.Background(), "go101")
	assert.ErrorIs(t, err, boom)
}
