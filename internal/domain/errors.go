package domain

import "errors"

// ErrNoSuchUser failed to validate the credential
var ErrNoSuchUser = errors.New("No such user or password is incorrect")

// ErrDuplicatedUser unique key constraint violation
var ErrDuplicatedUser = errors.New("Username or email is already registered")

// ErrUserTooManyRetry login attempts exceeded
var ErrUserTooManyRetry = errors.New("Too many login attempts, please retry later")

// ErrNoSuchCourse course does not exist
var ErrNoSuchCourse = errors.New("No such course")

// ErrNoSuchLesson lesson does not exist in the requested course
var ErrNoSuchLesson = errors.New("No such lesson in course")

// ErrUnknownLessonType lesson type is not one of the enumerated types
var ErrUnknownLessonType = errors.New("Unknown lesson type")
