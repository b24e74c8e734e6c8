package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubAckRoundTripElidesDefaultReason(t *testing.T) {
	ack := &PubAck{PacketID: 5, ReasonCode: ReasonSuccess}
	var buf bytes.Buffer
	require.NoError(t, Encode(ack, &buf))
	// Type/flags byte, remaining length 2, packet id high/low — no reason byte.
	assert.Equal(t, []byte{0x40, 0x02, 0x00, 0x05}, buf.Bytes())

	parsed, err := Parse(buf.Bytes(), New())
	require.NoError(t, err)
	got := parsed.(*PubAck)
	assert.Equal(t, uint16(5), got.PacketID)
	assert.Equal(t, ReasonSuccess, got.ReasonCode)
}

func TestPubAckRoundTripWithNonDefaultReason(t *testing.T) {
	ack := &PubAck{PacketID: 9, ReasonCode: ReasonNoMatchingSubscribers}
	parsed := encodeThenParse(t, ack)
	got := parsed.(*PubAck)
	assert.Equal(t, ReasonNoMatchingSubscribers, got.ReasonCode)
}

func TestPubAckRejectsInvalidReasonCode(t *testing.T) {
	data := []byte{0x00, 0x01, byte(ReasonPacketIdentifierNotFound)}
	_, err := parsePubAck(data, New())
	assert.ErrorIs(t, err, ErrInvalidReasonCode)
}

func TestPubRecRoundTrip(t *testing.T) {
	rec := &PubRec{PacketID: 3, ReasonCode: ReasonSuccess}
	parsed := encodeThenParse(t, rec)
	got := parsed.(*PubRec)
	assert.Equal(t, uint16(3), got.PacketID)
}

func TestPubRelRoundTripUsesReservedFlags(t *testing.T) {
	rel := &PubRel{PacketID: 3, ReasonCode: ReasonSuccess}
	var buf bytes.Buffer
	require.NoError(t, Encode(rel, &buf))
	assert.Equal(t, byte(0x62), buf.Bytes()[0]) // PUBREL type (6) with flags 0x2

	parsed, err := Parse(buf.Bytes(), New())
	require.NoError(t, err)
	got := parsed.(*PubRel)
	assert.Equal(t, uint16(3), got.PacketID)
}

func TestPubRelRejectsNonPubRelCode(t *testing.T) {
	data := []byte{0x00, 0x01, byte(ReasonNotAuthorized)}
	_, err := parsePubRel(data, New())
	assert.ErrorIs(t, err, ErrInvalidReasonCode)
}

func TestPubCompRoundTrip(t *testing.T) {
	comp := &PubComp{PacketID: 11, ReasonCode: ReasonPacketIdentifierNotFound}
	parsed := encodeThenParse(t, comp)
	got := parsed.(*PubComp)
	assert.Equal(t, ReasonPacketIdentifierNotFound, got.ReasonCode)
}

func TestAckFamilyRejectsZeroPacketID(t *testing.T) {
	data := []byte{0x00, 0x00}
	_, err := parsePubAck(data, New())
	assert.ErrorIs(t, err, ErrZeroPacketID)
}

func TestAckFamilyWithProperties(t *testing.T) {
	reasonString := "because"
	ack := &PubAck{
		PacketID:   1,
		ReasonCode: ReasonUnspecifiedError,
		Properties: AckProperties{ReasonString: &reasonString},
	}
	parsed := encodeThenParse(t, ack)
	got := parsed.(*PubAck)
	require.NotNil(t, got.Properties.ReasonString)
	assert.Equal(t, "because", *got.Properties.ReasonString)
}
