package domain

import "context"

// UserModel viewer account
type UserModel struct {
	ID         string `json:"id"`
	Username   string `json:"username" validate:"required,min=3,max=32"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password,omitempty" validate:"required,min=6"`
	LoginRetry int    `json:"-"`
	LastLogin  int64  `json:"-"`
}

// UserUseCase account operations
type UserUseCase interface {
	SignIn(ctx context.Context, post *UserModel) (*UserModel, error)
	SignUp(ctx context.Context, post *UserModel) (*UserModel, error)
	Exists(ctx context.Context, post *UserModel) (bool, error)
}

// UserRepository account storage
type UserRepository interface {
	FindByCredential(ctx context.Context, post *UserModel) (*UserModel, error)
	UpdateUser(ctx context.Context, post *UserModel) error
	SaveUser(ctx context.Context, post *UserModel) error
}
