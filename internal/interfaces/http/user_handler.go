package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/skillspark/internal/domain"
	"github.com/pot-code/skillspark/internal/infrastructure/auth"
	"github.com/pot-code/skillspark/internal/infrastructure/validate"
)

// UserHandler user related operations
type UserHandler struct {
	JWTUtil     *auth.JWTUtil
	Blacklist   *auth.TokenBlacklist
	UserUseCase domain.UserUseCase
	Validator   validate.Validator
}

// NewUserHandler create an user controller instance
func NewUserHandler(
	JWTUtil *auth.JWTUtil,
	Blacklist *auth.TokenBlacklist,
	UserUseCase domain.UserUseCase,
	Validator validate.Validator,
) *UserHandler {
	return &UserHandler{
		JWTUtil:     JWTUtil,
		Blacklist:   Blacklist,
		UserUseCase: UserUseCase,
		Validator:   Validator,
	}
}

func bindError(err error) error {
	detail := err.Error()
	if he, ok := err.(*echo.HTTPError); ok && he.Internal != nil {
		detail = he.Internal.Error()
	}
	return NewRESTStandardError(http.StatusUnprocessableEntity, detail)
}

// HandleSignIn verify credential and issue the token cookie
func (uh *UserHandler) HandleSignIn(c echo.Context) (err error) {
	ju := uh.JWTUtil

	post := new(domain.UserModel)
	if err = c.Bind(post); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, bindError(err))
	}
	fe := append(uh.Validator.Empty("username", post.Username), uh.Validator.Empty("password", post.Password)...)
	if len(fe) > 0 {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", fe))
	}

	user, err := uh.UserUseCase.SignIn(c.Request().Context(), post)
	if err != nil {
		if code := domainErrorStatus(err); code != 0 {
			return c.JSON(code, NewRESTStandardError(code, err.Error()))
		}
		return err
	}

	tokenStr, err := ju.GenerateTokenStr(user)
	if err != nil {
		return err
	}
	ju.SetClientToken(c, tokenStr)
	return c.JSON(http.StatusOK, user)
}

// HandleSignUp ...
func (uh *UserHandler) HandleSignUp(c echo.Context) (err error) {
	post := new(domain.UserModel)
	if err = c.Bind(post); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, bindError(err))
	}

	if fe := uh.Validator.Struct(post); fe != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", fe))
	}

	user, err := uh.UserUseCase.SignUp(c.Request().Context(), post)
	if err != nil {
		if code := domainErrorStatus(err); code != 0 {
			return c.JSON(code, NewRESTStandardError(code, err.Error()))
		}
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// HandleSignOut revoke the token for its remaining lifetime and clear the cookie
func (uh *UserHandler) HandleSignOut(c echo.Context) (err error) {
	ju := uh.JWTUtil

	tokenStr, err := ju.ExtractToken(c)
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	token, err := ju.Validate(tokenStr)
	if err != nil {
		ju.ClearClientToken(c)
		return c.NoContent(http.StatusUnauthorized)
	}
	if err := uh.Blacklist.Revoke(c.Request().Context(), tokenStr, token.TimeRemaining()); err != nil {
		return err
	}
	ju.ClearClientToken(c)
	return c.NoContent(http.StatusNoContent)
}

// HandleUserExists ...
func (uh *UserHandler) HandleUserExists(c echo.Context) (err error) {
	post := new(domain.UserModel)
	post.Username = c.QueryParam("username")
	post.Email = c.QueryParam("email")

	if fe := uh.Validator.AllEmpty([]string{"username", "email"}, post.Username, post.Email); fe != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", []*validate.FieldError{fe}))
	}

	existing, err := uh.UserUseCase.Exists(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, existing)
}
