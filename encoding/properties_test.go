package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyByteKind(t *testing.T) {
	data := []byte{0x01, 0x01} // PayloadFormatIndicator = 1
	prop, n, err := parseProperty(data, New())
	require.NoError(t, err)
	assert.Equal(t, PropertyPayloadFormatIndicator, prop.ID)
	assert.Equal(t, byte(1), prop.Value)
	assert.Equal(t, 2, n)
}

func TestParsePropertyTwoByteIntKind(t *testing.T) {
	data := []byte{0x21, 0x00, 0x0A} // ReceiveMaximum = 10
	prop, n, err := parseProperty(data, New())
	require.NoError(t, err)
	assert.Equal(t, PropertyReceiveMaximum, prop.ID)
	assert.Equal(t, uint16(10), prop.Value)
	assert.Equal(t, 3, n)
}

func TestParsePropertyFourByteIntKind(t *testing.T) {
	data := []byte{0x11, 0x00, 0x00, 0x00, 0x3C} // SessionExpiryInterval = 60
	prop, n, err := parseProperty(data, New())
	require.NoError(t, err)
	assert.Equal(t, PropertySessionExpiryInterval, prop.ID)
	assert.Equal(t, uint32(60), prop.Value)
	assert.Equal(t, 5, n)
}

func TestParsePropertyVarIntKind(t *testing.T) {
	data := []byte{0x0B, 0x7F} // SubscriptionIdentifier = 127
	prop, n, err := parseProperty(data, New())
	require.NoError(t, err)
	assert.Equal(t, PropertySubscriptionIdentifier, prop.ID)
	assert.Equal(t, uint32(127), prop.Value)
	assert.Equal(t, 2, n)
}

func TestParsePropertyVarIntZeroRejected(t *testing.T) {
	data := []byte{0x0B, 0x00}
	_, _, err := parseProperty(data, New())
	assert.ErrorIs(t, err, ErrZeroValueProperty)
}

func TestParsePropertyUTF8StringKind(t *testing.T) {
	data := []byte{0x03, 0x00, 0x04, 't', 'e', 'x', 't'} // ContentType = "text"
	prop, n, err := parseProperty(data, New())
	require.NoError(t, err)
	assert.Equal(t, PropertyContentType, prop.ID)
	assert.Equal(t, "text", prop.Value)
	assert.Equal(t, 7, n)
}

func TestParsePropertyUTF8PairKind(t *testing.T) {
	data := []byte{0x26, 0x00, 0x01, 'k', 0x00, 0x01, 'v'} // UserProperty k=v
	prop, n, err := parseProperty(data, New())
	require.NoError(t, err)
	assert.Equal(t, PropertyUserProperty, prop.ID)
	assert.Equal(t, UserProperty{Key: "k", Value: "v"}, prop.Value)
	assert.Equal(t, 7, n)
}

func TestParsePropertyBinaryDataKind(t *testing.T) {
	data := []byte{0x09, 0x00, 0x02, 0xAA, 0xBB} // CorrelationData
	prop, n, err := parseProperty(data, New())
	require.NoError(t, err)
	assert.Equal(t, PropertyCorrelationData, prop.ID)
	assert.Equal(t, []byte{0xAA, 0xBB}, prop.Value)
	assert.Equal(t, 5, n)
}

func TestParsePropertyUnknownID(t *testing.T) {
	data := []byte{0x7F, 0x00}
	_, _, err := parseProperty(data, New())
	assert.ErrorIs(t, err, ErrUnknownPropertyID)
}

func TestParsePropertiesRegion(t *testing.T) {
	// length=4: PayloadFormatIndicator=1 (2 bytes), then MaximumQoS=1 (2 bytes).
	region := []byte{
		0x04,             // properties length = 4
		0x01, 0x01,       // PayloadFormatIndicator = 1
		0x24, 0x01,       // MaximumQoS = 1
	}
	var seen []PropertyID
	consumed, err := parsePropertiesRegion(region, New(), func(p Property) error {
		seen = append(seen, p.ID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(region), consumed)
	assert.Equal(t, []PropertyID{PropertyPayloadFormatIndicator, PropertyMaximumQoS}, seen)
}

func TestParsePropertiesRegionEmpty(t *testing.T) {
	region := []byte{0x00}
	var called bool
	consumed, err := parsePropertiesRegion(region, New(), func(p Property) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, consumed)
	assert.False(t, called)
}

func TestParsePropertiesRegionTruncated(t *testing.T) {
	region := []byte{0x05, 0x01, 0x01}
	_, err := parsePropertiesRegion(region, New(), func(p Property) error { return nil })
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestParsePropertiesRegionPropagatesApplyError(t *testing.T) {
	region := []byte{0x02, 0x01, 0x01}
	sentinel := NewProtocolError(ErrDuplicateProperty, "test")
	_, err := parsePropertiesRegion(region, New(), func(p Property) error {
		return sentinel
	})
	assert.Equal(t, sentinel, err)
}

func TestPropertyIDString(t *testing.T) {
	assert.Equal(t, "UserProperty", PropertyUserProperty.String())
	assert.Equal(t, "Unknown", PropertyID(0x7F).String())
}
