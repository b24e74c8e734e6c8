// Package retained holds the server-side retained-message store: for
// each topic, at most one retained Publish is kept and handed to new
// subscribers matching that topic. The generic Store[T] interface and
// its Pebble/Redis/memory implementations in this package are
// domain-agnostic key-value stores; RetainedMessage is the CBOR/JSON-
// friendly shape this package stores through them, since encoding.Publish
// itself (private Topic field, interface-typed Kind) doesn't round-trip
// through a generic marshaler. NewPebbleRegistry and NewRedisRegistry wire
// Store[RetainedMessage] over the two durable backends directly, so the
// retained-message domain type is what Pebble/Redis actually persist.
package retained

import (
	"context"
	"time"

	"github.com/axmq/mqtt5codec/encoding"
	"github.com/axmq/mqtt5codec/pkg/logger"
)

// RetainedMessage is the durable, serializable projection of a retained
// encoding.Publish. It drops the transport-only fields (packet
// identifier, DUP) that retained delivery always re-derives, and adds
// StoredAt so expiry can be computed from MessageExpiryInterval without
// re-deriving it at read time.
type RetainedMessage struct {
	Topic                  string
	Payload                []byte
	QoS                    encoding.QoS
	PayloadFormatIndicator *encoding.FormatIndicator
	MessageExpiryInterval  *uint32
	ContentType            *string
	ResponseTopic          *string
	CorrelationData        []byte
	UserProperties         []encoding.UserProperty
	StoredAt               time.Time
}

// NewRetainedMessage projects a decoded PUBLISH carrying the RETAIN flag
// into its durable form. Callers are expected to have already checked
// pub.Retain; NewRetainedMessage does not re-check it.
func NewRetainedMessage(pub *encoding.Publish, storedAt time.Time) RetainedMessage {
	msg := RetainedMessage{
		Topic:                  pub.Topic.String(),
		Payload:                append([]byte(nil), pub.Payload...),
		PayloadFormatIndicator: pub.Properties.PayloadFormatIndicator,
		MessageExpiryInterval:  pub.Properties.MessageExpiryInterval,
		ContentType:            pub.Properties.ContentType,
		CorrelationData:        append([]byte(nil), pub.Properties.CorrelationData...),
		UserProperties:         append([]encoding.UserProperty(nil), pub.Properties.UserProperties...),
		StoredAt:               storedAt,
	}
	if pub.Properties.ResponseTopic != nil {
		s := pub.Properties.ResponseTopic.String()
		msg.ResponseTopic = &s
	}
	switch k := pub.Kind.(type) {
	case encoding.Repeatable:
		msg.QoS = encoding.QoS(k.QoS)
	default:
		msg.QoS = encoding.QoS0
	}
	return msg
}

// Expired reports whether msg's MessageExpiryInterval has elapsed as of
// now. A nil MessageExpiryInterval never expires.
func (m RetainedMessage) Expired(now time.Time) bool {
	if m.MessageExpiryInterval == nil {
		return false
	}
	return now.After(m.StoredAt.Add(time.Duration(*m.MessageExpiryInterval) * time.Second))
}

// ToPublish reconstructs the retained, non-DUP Publish a new subscriber
// receives. deliverQoS is the minimum of the stored message's QoS and
// the subscription's granted QoS, per MQTT v5 §3.3.1.3.
func (m RetainedMessage) ToPublish(deliverQoS encoding.QoS, packetID uint16) (*encoding.Publish, error) {
	topic, err := encoding.NewTopic(m.Topic)
	if err != nil {
		return nil, err
	}

	props := encoding.PublishProperties{
		PayloadFormatIndicator: m.PayloadFormatIndicator,
		MessageExpiryInterval:  m.MessageExpiryInterval,
		ContentType:            m.ContentType,
		CorrelationData:        append([]byte(nil), m.CorrelationData...),
		UserProperties:         append([]encoding.UserProperty(nil), m.UserProperties...),
	}
	if m.ResponseTopic != nil {
		rt, err := encoding.NewTopic(*m.ResponseTopic)
		if err != nil {
			return nil, err
		}
		props.ResponseTopic = &rt
	}

	var kind encoding.PublishKind = encoding.FireAndForget{}
	if deliverQoS != encoding.QoS0 {
		gqos, err := encoding.NewGuaranteedQoS(deliverQoS)
		if err != nil {
			return nil, err
		}
		kind = encoding.Repeatable{PacketID: packetID, QoS: gqos}
	}

	return &encoding.Publish{
		Topic:      topic,
		Retain:     true,
		Properties: props,
		Payload:    append([]byte(nil), m.Payload...),
		Kind:       kind,
	}, nil
}

// Registry is the retained-message half of a broker's session state: one
// RetainedMessage per topic, backed by any Store[RetainedMessage]
// (memory, Pebble, or Redis).
type Registry struct {
	store  Store[RetainedMessage]
	logger logger.Logger
}

// NewRegistry wraps an already-constructed Store[RetainedMessage]. The
// Registry logs nothing until SetLogger is called.
func NewRegistry(store Store[RetainedMessage]) *Registry {
	return &Registry{store: store, logger: logger.NoopLogger{}}
}

// SetLogger replaces the Registry's diagnostic logger.
func (r *Registry) SetLogger(l logger.Logger) {
	r.logger = l
}

// Publish stores pub as the new retained message for its topic, or
// clears it if pub's payload is empty (MQTT v5 §3.3.1.3: a retained
// message with a zero-length payload removes any existing retained
// message for that topic).
func (r *Registry) Publish(ctx context.Context, pub *encoding.Publish, now time.Time) error {
	topic := pub.Topic.String()
	if len(pub.Payload) == 0 {
		err := r.store.Delete(ctx, topic)
		if err != nil && err != ErrNotFound {
			r.logger.Error("retained message delete failed", "topic", topic, "err", err)
			return err
		}
		r.logger.Debug("retained message cleared", "topic", topic)
		return nil
	}
	if err := r.store.Save(ctx, topic, NewRetainedMessage(pub, now)); err != nil {
		r.logger.Error("retained message save failed", "topic", topic, "err", err)
		return err
	}
	r.logger.Debug("retained message stored", "topic", topic, "bytes", len(pub.Payload))
	return nil
}

// Lookup returns the live (non-expired) retained message for topic, if
// any.
func (r *Registry) Lookup(ctx context.Context, topic encoding.Topic, now time.Time) (RetainedMessage, bool, error) {
	msg, err := r.store.Load(ctx, topic.String())
	if err == ErrNotFound {
		return RetainedMessage{}, false, nil
	}
	if err != nil {
		r.logger.Error("retained message lookup failed", "topic", topic.String(), "err", err)
		return RetainedMessage{}, false, err
	}
	if msg.Expired(now) {
		r.logger.Debug("retained message expired, pruning", "topic", topic.String())
		_ = r.store.Delete(ctx, topic.String())
		return RetainedMessage{}, false, nil
	}
	return msg, true, nil
}

// Count returns the number of retained messages currently stored.
func (r *Registry) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}

// Close releases the underlying store.
func (r *Registry) Close() error {
	return r.store.Close()
}

// NewPebbleRegistry opens a Pebble-backed Registry rooted at dir. Each
// retained message is CBOR-encoded (RetainedMessage.CorrelationData and
// Payload are raw bytes, not strings, which is why Pebble storage goes
// through cbor rather than encoding/json) under the "retained:" key prefix.
func NewPebbleRegistry(dir string) (*Registry, error) {
	store, err := NewPebbleStore[RetainedMessage](PebbleStoreConfig{
		Path:   dir,
		Prefix: "retained:",
	})
	if err != nil {
		return nil, err
	}
	return NewRegistry(store), nil
}

// NewRedisRegistry opens a Redis-backed Registry. config.Prefix defaults to
// "retained:" when unset so a shared Redis instance doesn't collide with
// other users of Store[T].
func NewRedisRegistry(config RedisStoreConfig) (*Registry, error) {
	if config.Prefix == "" {
		config.Prefix = "retained:"
	}
	store, err := NewRedisStore[RetainedMessage](config)
	if err != nil {
		return nil, err
	}
	return NewRegistry(store), nil
}
