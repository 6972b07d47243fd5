package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `validate:"required"`
	Code string `validate:"totp_code"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "a", Code: "012345"}))
}

func TestStruct_FirstFailureInFieldOrder(t *testing.T) {
	err := Struct(sample{Name: "", Code: "x"})
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Name", fe.Field)
	assert.Equal(t, "required", fe.Tag)
	assert.Equal(t, "field 'Name' failed 'required'", fe.Error())
}

func TestStruct_TOTPCodeTag(t *testing.T) {
	bad := []string{
		"", "12345", "1234567", "+12345", "-12345", " 123456", "123456 ",
		"12345a", "12.345", "１２３４５６", "١٢٣٤٥٦", "123\n56",
	}
	for _, code := range bad {
		err := Struct(sample{Name: "a", Code: code})
		var fe *FieldError
		require.True(t, errors.As(err, &fe), "code %q", code)
		assert.Equal(t, TagTOTPCode, fe.Tag, "code %q", code)
	}
	for _, code := range []string{"000000", "123456", "999999"} {
		assert.NoError(t, Struct(sample{Name: "a", Code: code}), "code %q", code)
	}
}

func TestStruct_NonStruct(t *testing.T) {
	err := Struct("not a struct")
	require.Error(t, err)
	var fe *FieldError
	assert.False(t, errors.As(err, &fe))
}
