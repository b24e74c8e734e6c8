package retained

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axmq/mqtt5codec/encoding"
)

func TestNewPebbleRegistryStoresAndLooksUpRetainedMessage(t *testing.T) {
	reg, err := NewPebbleRegistry(t.TempDir())
	require.NoError(t, err)
	defer reg.Close()

	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	contentType := "text/plain"
	pub := samplePublish(t, "sensors/temp", []byte("21.5"))
	pub.Properties.ContentType = &contentType

	require.NoError(t, reg.Publish(ctx, pub, now))

	msg, ok, err := reg.Lookup(ctx, mustTopic(t, "sensors/temp"), now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sensors/temp", msg.Topic)
	assert.Equal(t, []byte("21.5"), msg.Payload)
	assert.Equal(t, encoding.QoS1, msg.QoS)
	require.NotNil(t, msg.ContentType)
	assert.Equal(t, "text/plain", *msg.ContentType)

	count, err := reg.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNewPebbleRegistryClearsOnEmptyPayload(t *testing.T) {
	reg, err := NewPebbleRegistry(t.TempDir())
	require.NoError(t, err)
	defer reg.Close()

	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	require.NoError(t, reg.Publish(ctx, samplePublish(t, "a/b", []byte("x")), now))
	require.NoError(t, reg.Publish(ctx, samplePublish(t, "a/b", nil), now))

	_, ok, err := reg.Lookup(ctx, mustTopic(t, "a/b"), now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewPebbleRegistryDefaultsPrefixToRetained(t *testing.T) {
	dir := t.TempDir()
	reg, err := NewPebbleRegistry(dir)
	require.NoError(t, err)
	defer reg.Close()

	store, ok := reg.store.(*PebbleStore[RetainedMessage])
	require.True(t, ok)
	assert.Equal(t, "retained:", string(store.makeKey("")))
}
