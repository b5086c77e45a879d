package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contact struct {
	Email string `json:"email" validate:"required,email"`
}

type sample struct {
	Username string  `json:"username" validate:"required,min=3"`
	Role     string  `json:"role" validate:"omitempty,oneof=user lister"`
	Budget   float64 `json:"budget" validate:"gt=0"`
	Contact  contact `json:"contactInfo"`
}

func TestDecodeValid(t *testing.T) {
	var s sample
	err := Decode([]byte(`{"username":"sarah","role":"user","budget":1200,"contactInfo":{"email":"s@example.com"}}`), &s)
	require.NoError(t, err)
	assert.Equal(t, "sarah", s.Username)
}

func TestDecodeRejectsUnknownField(t *testing.T) {
	var s sample
	err := Decode([]byte(`{"username":"sarah","budget":1,"contactInfo":{"email":"s@example.com"},"isAdmin":true}`), &s)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "isAdmin")
}

func TestDecodeReportsFields(t *testing.T) {
	var s sample
	err := Decode([]byte(`{"username":"sa","role":"admin","budget":0,"contactInfo":{"email":"nope"}}`), &s)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at least 3 characters", verr.Fields["username"])
	assert.Equal(t, "must be one of: user lister", verr.Fields["role"])
	assert.Equal(t, "must be greater than 0", verr.Fields["budget"])
	assert.Equal(t, "must be a valid email address", verr.Fields["contactInfo.email"])
}

func TestDecodeEmptyAndMalformed(t *testing.T) {
	var s sample

	var verr *Error
	require.ErrorAs(t, Decode(nil, &s), &verr)
	assert.Equal(t, "Request body is required", verr.Message)

	require.ErrorAs(t, Decode([]byte(`{"username":`), &s), &verr)

	require.ErrorAs(t, Decode([]byte(`{"username":42}`), &s), &verr)
	assert.Contains(t, verr.Message, "username")
}
