package packet

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axmq/mqtt5codec/encoding"
)

func TestReadControlPacketRoundTripsPingReq(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encoding.Encode(encoding.PingReq{}, &buf))

	pkt, err := ReadControlPacket(&buf, encoding.New())
	require.NoError(t, err)
	assert.Equal(t, encoding.TypePingReq, pkt.Type())
}

func TestReadControlPacketRoundTripsPublishWithMultiByteRemainingLength(t *testing.T) {
	topic, err := encoding.NewTopic("a/b/c")
	require.NoError(t, err)
	original := &encoding.Publish{
		Topic:   topic,
		Kind:    encoding.FireAndForget{},
		Payload: bytes.Repeat([]byte{0xAB}, 200),
	}

	var encoded bytes.Buffer
	require.NoError(t, encoding.Encode(original, &encoded))
	// Remaining length for a 200+ byte payload must span two VBI bytes.
	assert.True(t, encoded.Bytes()[1]&0x80 != 0)

	parsed, err := ReadControlPacket(bytes.NewReader(encoded.Bytes()), encoding.New())
	require.NoError(t, err)
	got, ok := parsed.(*encoding.Publish)
	require.True(t, ok)
	assert.Equal(t, "a/b/c", got.Topic.String())
	assert.Equal(t, original.Payload, got.Payload)
}

func TestReadControlPacketRejectsRemainingLengthOverSettingsLimit(t *testing.T) {
	settings := encoding.New()
	settings.MaxRemainingBytes = 1

	var buf bytes.Buffer
	buf.Write([]byte{0xC0, 0x02, 0x00, 0x00})

	_, err := ReadControlPacket(&buf, settings)
	assert.ErrorIs(t, err, encoding.ErrRemainingLengthLimit)
}

func TestReadControlPacketRejectsTruncatedFixedHeader(t *testing.T) {
	_, err := ReadControlPacket(bytes.NewReader(nil), encoding.New())
	assert.ErrorIs(t, err, encoding.ErrUnexpectedEOF)
}

func TestReadControlPacketRejectsTruncatedRemainingLength(t *testing.T) {
	buf := bytes.NewReader([]byte{0xC0, 0x80})
	_, err := ReadControlPacket(buf, encoding.New())
	assert.ErrorIs(t, err, encoding.ErrUnexpectedEOF)
}

func TestReadControlPacketRejectsTruncatedBody(t *testing.T) {
	buf := bytes.NewReader([]byte{0xC0, 0x02, 0x00})
	_, err := ReadControlPacket(buf, encoding.New())
	assert.ErrorIs(t, err, encoding.ErrUnexpectedEOF)
}

func TestReadControlPacketRejectsMalformedVariableByteInteger(t *testing.T) {
	buf := bytes.NewReader([]byte{0xC0, 0xFF, 0xFF, 0xFF, 0xFF})
	_, err := ReadControlPacket(buf, encoding.New())
	assert.ErrorIs(t, err, encoding.ErrMalformedVariableByteInteger)
}

func TestWriteControlPacketFlushesThroughPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteControlPacket(&buf, encoding.PingReq{}))
	assert.Equal(t, []byte{0xC0, 0x00}, buf.Bytes())
}

func TestWriteControlPacketReusesExistingBufioWriter(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	require.NoError(t, WriteControlPacket(bw, encoding.PingResp{}))
	assert.Equal(t, []byte{0xD0, 0x00}, buf.Bytes())
}

func TestReadThenWriteControlPacketAgreesWithEncodingDirectly(t *testing.T) {
	original := &encoding.PubAck{PacketID: 7, ReasonCode: encoding.ReasonSuccess}

	var viaStream bytes.Buffer
	require.NoError(t, WriteControlPacket(&viaStream, original))

	var viaEncoding bytes.Buffer
	require.NoError(t, encoding.Encode(original, &viaEncoding))

	assert.Equal(t, viaEncoding.Bytes(), viaStream.Bytes())

	parsed, err := ReadControlPacket(bytes.NewReader(viaStream.Bytes()), encoding.New())
	require.NoError(t, err)
	assert.Equal(t, original.PacketID, parsed.(*encoding.PubAck).PacketID)
}
