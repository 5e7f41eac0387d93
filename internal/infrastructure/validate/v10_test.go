package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpForm struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestPlaygroundV10_Struct(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, v.Struct(&signUpForm{Username: "alice", Email: "alice@skillspark.io"}))

	errs := v.Struct(&signUpForm{Username: "al", Email: "nope"})
	require.Len(t, errs, 2)
	assert.Equal(t, "username", errs[0].Domain)
	assert.Equal(t, "email", errs[1].Domain)
}

func TestPlaygroundV10_Empty(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, v.Empty("course_id", "c1"))
	errs := v.Empty("course_id", "")
	require.Len(t, errs, 1)
	assert.Equal(t, "course_id is required", errs[0].Reason)
}

func TestPlaygroundV10_Var(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, v.Var("from", "3", "numeric"))
	errs := v.Var("from", "three", "numeric")
	require.Len(t, errs, 1)
	assert.Equal(t, "from", errs[0].Domain)
}

func TestPlaygroundV10_AllEmpty(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, v.AllEmpty([]string{"username", "email"}, "", "a@b.c"))
	err := v.AllEmpty([]string{"username", "email"}, "", "")
	require.NotNil(t, err)
	assert.Equal(t, "username,email", err.Domain)

	assert.Panics(t, func() { v.AllEmpty([]string{"username"}) })
}
