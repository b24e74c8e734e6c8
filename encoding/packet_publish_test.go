package encoding

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRoundTripQoS0(t *testing.T) {
	p := &Publish{
		Topic:   mustTopic(t, "sensors/temp"),
		Payload: []byte("21.5"),
		Kind:    FireAndForget{},
	}
	parsed := encodeThenParse(t, p)
	got, ok := parsed.(*Publish)
	require.True(t, ok)
	assert.Equal(t, "sensors/temp", got.Topic.String())
	assert.Equal(t, []byte("21.5"), got.Payload)
	assert.False(t, got.Retain)
	_, isFaf := got.Kind.(FireAndForget)
	assert.True(t, isFaf)
}

func TestPublishRoundTripQoS1Retained(t *testing.T) {
	p := &Publish{
		Topic:  mustTopic(t, "sensors/temp"),
		Retain: true,
		Payload: []byte("x"),
		Kind:   Repeatable{PacketID: 7, QoS: GuaranteedQoS1, Dup: true},
	}
	parsed := encodeThenParse(t, p)
	got := parsed.(*Publish)
	assert.True(t, got.Retain)
	rep, ok := got.Kind.(Repeatable)
	require.True(t, ok)
	assert.Equal(t, uint16(7), rep.PacketID)
	assert.Equal(t, GuaranteedQoS1, rep.QoS)
	assert.True(t, rep.Dup)
}

func TestPublishRoundTripWithProperties(t *testing.T) {
	contentType := "text/plain"
	p := &Publish{
		Topic:   mustTopic(t, "a"),
		Payload: []byte("hi"),
		Kind:    FireAndForget{},
		Properties: PublishProperties{
			ContentType:             &contentType,
			SubscriptionIdentifiers: []uint32{1, 2, 3},
		},
	}
	parsed := encodeThenParse(t, p)
	got := parsed.(*Publish)
	require.NotNil(t, got.Properties.ContentType)
	assert.Equal(t, "text/plain", *got.Properties.ContentType)
	assert.Equal(t, []uint32{1, 2, 3}, got.Properties.SubscriptionIdentifiers)
}

func TestParsePublishRejectsQoS3(t *testing.T) {
	flags := byte(0x06) // qos bits = 11
	_, err := parsePublish(flags, []byte{0x00, 0x01, 'a', 0x00}, New())
	assert.ErrorIs(t, err, ErrInvalidQoS)
}

func TestParsePublishRejectsDupWithoutQoS(t *testing.T) {
	flags := byte(0x08) // dup set, qos=0
	_, err := parsePublish(flags, []byte{0x00, 0x01, 'a', 0x00}, New())
	assert.ErrorIs(t, err, ErrPublishDupWithoutQoS)
}

func TestParsePublishRejectsZeroPacketID(t *testing.T) {
	flags := byte(0x02) // qos1
	data := []byte{0x00, 0x01, 'a', 0x00, 0x00, 0x00}
	_, err := parsePublish(flags, data, New())
	assert.ErrorIs(t, err, ErrZeroPacketID)
}

func TestParsePublishRejectsTopicWithWildcard(t *testing.T) {
	flags := byte(0x00)
	data := []byte{0x00, 0x02, 'a', '#', 0x00}
	_, err := parsePublish(flags, data, New())
	assert.ErrorIs(t, err, ErrInvalidTopic)
}

func TestPublishEncodeRejectsUnknownKind(t *testing.T) {
	p := &Publish{Topic: mustTopic(t, "a"), Payload: nil, Kind: nil}
	err := p.Encode(io.Discard)
	assert.ErrorIs(t, err, ErrInvalidQoS)
}
