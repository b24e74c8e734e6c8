package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeThenParse(t *testing.T, pkt ControlPacket) ControlPacket {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(pkt, &buf))
	parsed, err := Parse(buf.Bytes(), New())
	require.NoError(t, err)
	return parsed
}

func TestConnectRoundTripMinimal(t *testing.T) {
	c := &Connect{ClientID: "client-1", CleanStart: true, KeepAlive: 30}
	parsed := encodeThenParse(t, c)

	got, ok := parsed.(*Connect)
	require.True(t, ok)
	assert.Equal(t, "client-1", got.ClientID)
	assert.True(t, got.CleanStart)
	assert.Equal(t, uint16(30), got.KeepAlive)
	assert.Nil(t, got.Will)
	assert.Nil(t, got.Username)
	assert.Nil(t, got.Password)
}

func TestConnectRoundTripWithWillUsernamePassword(t *testing.T) {
	username := "alice"
	sessionExpiry := uint32(120)
	willTopic := mustTopic(t, "lwt/client-1")

	c := &Connect{
		ClientID:   "client-2",
		CleanStart: false,
		KeepAlive:  60,
		Properties: ConnectProperties{SessionExpiryInterval: &sessionExpiry},
		Will: &Will{
			Retain: true,
			QoS:    QoS1,
			Topic:  willTopic,
			Payload: []byte("goodbye"),
		},
		Username: &username,
		Password: []byte("s3cret"),
	}

	parsed := encodeThenParse(t, c)
	got, ok := parsed.(*Connect)
	require.True(t, ok)

	assert.Equal(t, "client-2", got.ClientID)
	assert.False(t, got.CleanStart)
	require.NotNil(t, got.Properties.SessionExpiryInterval)
	assert.Equal(t, uint32(120), *got.Properties.SessionExpiryInterval)

	require.NotNil(t, got.Will)
	assert.True(t, got.Will.Retain)
	assert.Equal(t, QoS1, got.Will.QoS)
	assert.Equal(t, "lwt/client-1", got.Will.Topic.String())
	assert.Equal(t, []byte("goodbye"), got.Will.Payload)

	require.NotNil(t, got.Username)
	assert.Equal(t, "alice", *got.Username)
	assert.Equal(t, []byte("s3cret"), got.Password)
}

func TestParseConnectRejectsWrongProtocolName(t *testing.T) {
	data := []byte{
		0x00, 0x04, 'M', 'Q', 'T', 'X', // wrong protocol name
		0x05,       // version
		0x02,       // clean start
		0x00, 0x0A, // keep alive
		0x00,       // properties length
		0x00, 0x00, // client id ""
	}
	_, err := parseConnect(data, New())
	assert.ErrorIs(t, err, ErrInvalidProtocolName)
}

func TestParseConnectRejectsWrongVersion(t *testing.T) {
	data := []byte{
		0x00, 0x04, 'M', 'Q', 'T', 'T',
		0x04, // version 4, unsupported here
		0x02,
		0x00, 0x0A,
		0x00,
		0x00, 0x00,
	}
	_, err := parseConnect(data, New())
	assert.ErrorIs(t, err, ErrInvalidProtocolVersion)
}

func TestParseConnectRejectsReservedBit(t *testing.T) {
	data := []byte{
		0x00, 0x04, 'M', 'Q', 'T', 'T',
		0x05,
		0x03, // clean start + reserved bit set
		0x00, 0x0A,
		0x00,
		0x00, 0x00,
	}
	_, err := parseConnect(data, New())
	assert.ErrorIs(t, err, ErrInvalidConnectFlags)
}

func TestParseConnectRejectsWillFlagMismatch(t *testing.T) {
	data := []byte{
		0x00, 0x04, 'M', 'Q', 'T', 'T',
		0x05,
		0x20, // will retain set, will flag clear
		0x00, 0x0A,
		0x00,
		0x00, 0x00,
	}
	_, err := parseConnect(data, New())
	assert.ErrorIs(t, err, ErrWillFlagMismatch)
}

func TestParseConnectRejectsTrailingBytes(t *testing.T) {
	data := []byte{
		0x00, 0x04, 'M', 'Q', 'T', 'T',
		0x05,
		0x02,
		0x00, 0x0A,
		0x00,
		0x00, 0x00,
		0xFF, // trailing junk
	}
	_, err := parseConnect(data, New())
	assert.ErrorIs(t, err, ErrTrailingBytes)
}
