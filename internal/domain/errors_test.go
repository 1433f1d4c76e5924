package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_OrNilAndFirstMessageWins(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.OrNil())

	verr.Add("title", MsgFieldRequired)
	verr.Add("title", "ignored")
	verr.Add("date_time", MsgInvalidDate)

	err := verr.OrNil()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, MsgFieldRequired, verr.Fields["title"])
	assert.Equal(t, "date_time: "+MsgInvalidDate+"; title: "+MsgFieldRequired, err.Error())
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("email", MsgInvalidEmail)
	assert.Equal(t, map[string]string{"email": MsgInvalidEmail}, err.Fields)
	assert.ErrorIs(t, err, ErrValidation)
}
