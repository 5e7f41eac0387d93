package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/skillspark/internal/domain"
	"github.com/pot-code/skillspark/internal/infrastructure/auth"
	"github.com/pot-code/skillspark/internal/infrastructure/validate"
)

// ProgressHandler course progress of the signed in viewer
type ProgressHandler struct {
	ProgressUseCase domain.ProgressUseCase
	JWTUtil         *auth.JWTUtil
	Validator       validate.Validator
}

// NewProgressHandler .
func NewProgressHandler(ProgressUseCase domain.ProgressUseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *ProgressHandler {
	return &ProgressHandler{ProgressUseCase, JWTUtil, Validator}
}

func (ph *ProgressHandler) viewer(c echo.Context) *domain.UserModel {
	return ph.JWTUtil.GetContextToken(c).Viewer()
}

// respond write data, domain errors are answered with their status and the rest is passed on
func respond(c echo.Context, code int, data interface{}, err error) error {
	if err != nil {
		if status := domainErrorStatus(err); status != 0 {
			return c.JSON(status, NewRESTStandardError(status, err.Error()))
		}
		return err
	}
	return c.JSON(code, data)
}

// HandleGetCourseProgress GET /courses/:course_id/progress
func (ph *ProgressHandler) HandleGetCourseProgress(c echo.Context) error {
	summary, err := ph.ProgressUseCase.GetCourseSummary(c.Request().Context(), ph.viewer(c), c.Param("course_id"))
	return respond(c, http.StatusOK, summary, err)
}

// HandleGetLessons GET /courses/:course_id/lessons
func (ph *ProgressHandler) HandleGetLessons(c echo.Context) error {
	lessons, err := ph.ProgressUseCase.GetLessons(c.Request().Context(), ph.viewer(c), c.Param("course_id"))
	return respond(c, http.StatusOK, lessons, err)
}

// HandleGetLesson GET /courses/:course_id/lessons/:lesson_id
func (ph *ProgressHandler) HandleGetLesson(c echo.Context) error {
	nav, err := ph.ProgressUseCase.GetLessonNavigation(c.Request().Context(), ph.viewer(c),
		c.Param("course_id"), c.Param("lesson_id"))
	return respond(c, http.StatusOK, nav, err)
}

// HandleToggleLesson PUT /courses/:course_id/lessons/:lesson_id/completion
func (ph *ProgressHandler) HandleToggleLesson(c echo.Context) error {
	result, err := ph.ProgressUseCase.ToggleLesson(c.Request().Context(), ph.viewer(c),
		c.Param("course_id"), c.Param("lesson_id"))
	return respond(c, http.StatusOK, result, err)
}

// HandleGetNextQuiz GET /courses/:course_id/quizzes/next?from=<ordinal>
func (ph *ProgressHandler) HandleGetNextQuiz(c echo.Context) error {
	raw := c.QueryParam("from")
	if fe := ph.Validator.Var("from", raw, "required,numeric"); fe != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", fe))
	}
	from, err := strconv.Atoi(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params",
			[]*validate.FieldError{validate.NewFieldError("from", err.Error())}))
	}

	quiz, err := ph.ProgressUseCase.GetNextQuiz(c.Request().Context(), ph.viewer(c), c.Param("course_id"), from)
	if err == nil && quiz == nil {
		return c.JSON(http.StatusNotFound, NewRESTStandardError(http.StatusNotFound, "No quiz after the given lesson"))
	}
	return respond(c, http.StatusOK, quiz, err)
}
