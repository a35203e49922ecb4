package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChaining(t *testing.T) {
	ErrBase := New("base error")
	assert.Equal(t, "base error", ErrBase.Error())
	assert.Equal(t, "derived", ErrBase.New("derived").Error())
	assert.ErrorIs(t, ErrBase, ErrBase)

	ErrFirstLevel := ErrBase.New("first level")
	assert.Equal(t, "first level", ErrFirstLevel.Error())
	assert.ErrorIs(t, ErrFirstLevel, ErrBase)

	ErrOther := New("other error")
	ErrOtherMsg := ErrOther.Msg("other error msg")
	wrapped := ErrFirstLevel.Err(ErrOtherMsg)
	assert.Equal(t, "first level", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, ErrFirstLevel)
	assert.ErrorIs(t, wrapped, ErrOther)
	assert.ErrorIs(t, wrapped, ErrOtherMsg)

	plain := errors.New("plain error")
	wrapped = ErrFirstLevel.Err(plain)
	assert.Equal(t, "first level", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, plain)

	wrapped = ErrFirstLevel.MsgErr("replaced", plain)
	assert.Equal(t, "replaced", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, plain)

	errA := fmt.Errorf("error a")
	errB := fmt.Errorf("error b")
	wrapped = ErrFirstLevel.Err(errA, errB)
	assert.ErrorIs(t, wrapped, errA)
	assert.ErrorIs(t, wrapped, errB)
}

func TestErrorStatusCode(t *testing.T) {
	ErrBase := New("upstream rejected request").SetStatusCode(http.StatusBadGateway)
	assert.Equal(t, http.StatusBadGateway, ErrBase.StatusCode())

	// Derivations inherit the status code until overridden.
	derived := ErrBase.New("statement not found")
	assert.Equal(t, http.StatusBadGateway, derived.StatusCode())
	overridden := derived.SetStatusCode(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, overridden.StatusCode())
	assert.Equal(t, http.StatusBadGateway, derived.StatusCode())
}

func TestErrorAll(t *testing.T) {
	ErrBase := New("credential error")
	errA := errors.New("host header absent")
	errB := errors.New("token header absent")

	collapsed := ErrBase.Err(errA, errB)
	assert.Equal(t, "credential error", collapsed.ErrorAll())

	expanded := ErrBase.Err(errA, errB).SetExpandError(true)
	assert.Contains(t, expanded.ErrorAll(), "host header absent")
	assert.Contains(t, expanded.ErrorAll(), "token header absent")
	assert.Len(t, expanded.UnwrapAll(), 3)
}
