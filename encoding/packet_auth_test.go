package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEncodeElidesDefaultReasonAndProperties(t *testing.T) {
	a := &Auth{ReasonCode: ReasonSuccess}
	var buf bytes.Buffer
	require.NoError(t, Encode(a, &buf))
	assert.Equal(t, []byte{0xF0, 0x00}, buf.Bytes())
}

func TestAuthRoundTripZeroLengthBodyDefaultsToSuccess(t *testing.T) {
	parsed, err := Parse([]byte{0xF0, 0x00}, New())
	require.NoError(t, err)
	got := parsed.(*Auth)
	assert.Equal(t, ReasonSuccess, got.ReasonCode)
}

func TestAuthRoundTripWithAuthenticationMethodAndData(t *testing.T) {
	method := "SCRAM-SHA-1"
	a := &Auth{
		ReasonCode: ReasonContinueAuthentication,
		Properties: AuthProperties{
			AuthenticationMethod: &method,
			AuthenticationData:   []byte{0x01, 0x02, 0x03},
		},
	}
	parsed := encodeThenParse(t, a)
	got := parsed.(*Auth)
	assert.Equal(t, ReasonContinueAuthentication, got.ReasonCode)
	require.NotNil(t, got.Properties.AuthenticationMethod)
	assert.Equal(t, "SCRAM-SHA-1", *got.Properties.AuthenticationMethod)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, got.Properties.AuthenticationData)
}

func TestParseAuthRejectsAuthDataWithoutMethod(t *testing.T) {
	data := []byte{
		byte(ReasonContinueAuthentication),
		0x04,             // properties length
		0x16, 0x00, 0x01, 0xAA, // AuthenticationData
	}
	_, err := parseAuth(data, New())
	assert.ErrorIs(t, err, ErrMissingAuthMethod)
}

func TestParseAuthRejectsInvalidReasonCode(t *testing.T) {
	data := []byte{byte(ReasonNotAuthorized), 0x00}
	_, err := parseAuth(data, New())
	assert.ErrorIs(t, err, ErrInvalidReasonCode)
}
