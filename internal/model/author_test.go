package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewAuthor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		phone   *string
		wantErr string
	}{
		{name: "valid name without phone", input: "Ursula"},
		{name: "valid name with phone", input: "Ursula", phone: strPtr("5551234567")},
		{name: "empty name", input: "", wantErr: "author must have a name"},
		{name: "whitespace name", input: "   ", wantErr: "author must have a name"},
		{name: "tabs and newlines", input: "\t\n", wantErr: "author must have a name"},
		{name: "bad phone", input: "Ursula", phone: strPtr("555-123-4567"), wantErr: "phone number must be exactly ten digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAuthor(tt.input, tt.phone)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, a)
				ve, ok := AsValidationError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantErr, ve.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, a.Name)
			assert.Equal(t, tt.phone, a.PhoneNumber)
			assert.Zero(t, a.ID)
		})
	}
}

func TestAuthor_SetPhoneNumber(t *testing.T) {
	tests := []struct {
		phone *string
		ok    bool
	}{
		{phone: nil, ok: true},
		{phone: strPtr("0123456789"), ok: true},
		{phone: strPtr(""), ok: false},
		{phone: strPtr("012345678"), ok: false},
		{phone: strPtr("01234567890"), ok: false},
		{phone: strPtr("012345678a"), ok: false},
		{phone: strPtr(" 0123456789"), ok: false},
		{phone: strPtr("0123456789\n"), ok: false},
		{phone: strPtr("٠١٢٣٤٥٦٧٨٩"), ok: true},
		{phone: strPtr("０１２３４５６７８９"), ok: true},
		{phone: strPtr("٠١٢٣٤٥٦٧٨"), ok: false},
	}

	for _, tt := range tests {
		name := "<nil>"
		if tt.phone != nil {
			name = *tt.phone
		}
		t.Run(name, func(t *testing.T) {
			a := &Author{Name: "n"}
			err := a.SetPhoneNumber(tt.phone)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.phone, a.PhoneNumber)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Nil(t, a.PhoneNumber, "field must be unchanged on failure")
		})
	}
}

func TestAuthor_SetNameKeepsOldValueOnFailure(t *testing.T) {
	a, err := NewAuthor("Octavia", nil)
	require.NoError(t, err)

	err = a.SetName("  ")
	require.Error(t, err)
	assert.Equal(t, "name: author must have a name", err.Error())
	assert.Equal(t, "Octavia", a.Name)

	require.NoError(t, a.SetName(" Octavia B. "))
	assert.Equal(t, " Octavia B. ", a.Name)
}

func TestAuthor_Validate(t *testing.T) {
	a := &Author{Name: "ok", PhoneNumber: strPtr("123")}
	err := a.Validate()
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "phone_number", ve.Field)

	a.PhoneNumber = nil
	assert.NoError(t, a.Validate())
	assert.NoError(t, a.BeforeSave(nil))
}

func TestDuplicateAuthorNameError(t *testing.T) {
	err := DuplicateAuthorNameError()
	assert.True(t, IsDuplicateAuthorName(err))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsDuplicateAuthorName(&ValidationError{Field: "name", Reason: "author must have a name"}))
	assert.Equal(t, "name: author with this name already exists", err.Error())
	assert.Equal(t, "x", (&ValidationError{Reason: "x"}).Error())
}
