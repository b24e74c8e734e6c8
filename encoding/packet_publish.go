package encoding

import "io"

// PublishKind distinguishes an at-most-once delivery from an acknowledged
// one, matching spec.md's "Publish.kind is FireAndForget (QoS 0) or
// Repeatable{packet_id, qos, dup}".
type PublishKind interface {
	isPublishKind()
}

// FireAndForget is QoS 0 delivery: no packet identifier, no DUP.
type FireAndForget struct{}

func (FireAndForget) isPublishKind() {}

// Repeatable is QoS 1/2 delivery, carrying a packet identifier and the DUP
// flag.
type Repeatable struct {
	PacketID uint16
	QoS      GuaranteedQoS
	Dup      bool
}

func (Repeatable) isPublishKind() {}

// Publish carries application data from publisher to subscriber.
type Publish struct {
	Topic      Topic
	Retain     bool
	Properties PublishProperties
	Payload    []byte
	Kind       PublishKind
}

func (Publish) Type() PacketType { return TypePublish }

func parsePublish(flags byte, data []byte, settings Settings) (*Publish, error) {
	dup := flags&0x08 != 0
	qosBits := (flags >> 1) & 0x03
	retain := flags&0x01 != 0

	if qosBits == 3 {
		return nil, NewMalformedPacketError(ErrInvalidQoS, "PUBLISH")
	}
	if qosBits == 0 && dup {
		return nil, NewMalformedPacketError(ErrPublishDupWithoutQoS, "PUBLISH")
	}

	topicStr, n, err := readUTF8String(data, settings.MaxBytesString)
	if err != nil {
		return nil, err
	}
	offset := n
	topic, err := NewTopic(topicStr)
	if err != nil {
		return nil, err
	}

	var kind PublishKind
	if qosBits == 0 {
		kind = FireAndForget{}
	} else {
		packetID, n, err := readUint16(data[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		if packetID == 0 {
			return nil, NewMalformedPacketError(ErrZeroPacketID, "PUBLISH")
		}
		gqos, err := NewGuaranteedQoS(QoS(qosBits))
		if err != nil {
			return nil, err
		}
		kind = Repeatable{PacketID: packetID, QoS: gqos, Dup: dup}
	}

	var props PublishProperties
	n, err = parsePropertiesRegion(data[offset:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return nil, err
	}
	offset += n

	payload := data[offset:]

	return &Publish{
		Topic:      topic,
		Retain:     retain,
		Properties: props,
		Payload:    payload,
		Kind:       kind,
	}, nil
}

func (p *Publish) Encode(w io.Writer) error {
	var flags byte
	if p.Retain {
		flags |= 0x01
	}

	var packetID uint16
	switch k := p.Kind.(type) {
	case FireAndForget:
	case Repeatable:
		flags |= byte(k.QoS) << 1
		if k.Dup {
			flags |= 0x08
		}
		packetID = k.PacketID
	default:
		return NewProtocolError(ErrInvalidQoS, "unknown PublishKind")
	}

	var body []byte
	topicBytes := p.Topic.String()
	if len(topicBytes) > 65535 {
		return NewPacketTooLargeError(ErrPacketTooLarge, "PUBLISH topic")
	}
	body = append(body, byte(len(topicBytes)>>8), byte(len(topicBytes)))
	body = append(body, topicBytes...)

	if _, ok := p.Kind.(Repeatable); ok {
		body = append(body, byte(packetID>>8), byte(packetID))
	}

	propBytes, err := encodePublishProperties(&p.Properties)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}
	body = append(body, framed...)
	body = append(body, p.Payload...)

	return writeFixedHeader(w, TypePublish, flags, body)
}
