package user

import (
	"context"
	"errors"
	"time"

	"github.com/pot-code/skillspark/internal/domain"
	"go.elastic.co/apm"
	"golang.org/x/crypto/bcrypt"
)

// UseCaseImpl ...
type UseCaseImpl struct {
	UserRepository   domain.UserRepository
	MaxLoginAttempts int
	RetryTimeout     time.Duration
	HashCost         int

	now func() time.Time
}

var _ domain.UserUseCase = &UseCaseImpl{}

// NewUserUseCase ...
func NewUserUseCase(
	UserRepository domain.UserRepository,
	MaxLoginAttempts int,
	RetryTimeout time.Duration,
) *UseCaseImpl {
	return &UseCaseImpl{
		UserRepository:   UserRepository,
		MaxLoginAttempts: MaxLoginAttempts,
		RetryTimeout:     RetryTimeout,
		HashCost:         bcrypt.DefaultCost,
		now:              time.Now,
	}
}

// SignIn verify the credential. Failed attempts are counted, once MaxLoginAttempts is
// reached the account is locked for RetryTimeout after the last attempt
func (uu *UseCaseImpl) SignIn(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "UserUseCase.Login", "service")
	defer apmSpan.End()

	ur := uu.UserRepository
	user, err := ur.FindByCredential(ctx, &domain.UserModel{Username: post.Username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNoSuchUser
	}

	now := uu.now()
	lastLogin := time.Unix(user.LastLogin, 0)
	if uu.MaxLoginAttempts > 0 && user.LoginRetry >= uu.MaxLoginAttempts {
		if now.Sub(lastLogin) < uu.RetryTimeout {
			return nil, domain.ErrUserTooManyRetry
		}
		user.LoginRetry = 0
	}

	user.LastLogin = now.Unix()
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(post.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, err
		}
		user.LoginRetry++
		if err := ur.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
		return nil, domain.ErrNoSuchUser
	}

	user.LoginRetry = 0
	if err := ur.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// SignUp create a user with a hashed password
func (uu *UseCaseImpl) SignUp(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "UserUseCase.Register", "service")
	defer apmSpan.End()

	ur := uu.UserRepository
	// search for existence
	if m, err := ur.FindByCredential(ctx, post); err != nil {
		return nil, err
	} else if m != nil {
		return nil, domain.ErrDuplicatedUser
	}

	password, err := bcrypt.GenerateFromPassword([]byte(post.Password), uu.HashCost)
	if err != nil {
		return nil, err
	}
	user := &domain.UserModel{
		Username: post.Username,
		Email:    post.Email,
		Password: string(password),
	}
	if err := ur.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// Exists find if user exists in database
func (uu *UseCaseImpl) Exists(ctx context.Context, post *domain.UserModel) (bool, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "UserUseCase.Existing", "service")
	defer apmSpan.End()

	user, err := uu.UserRepository.FindByCredential(ctx, post)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
