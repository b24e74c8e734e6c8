package encoding

import "io"

// Subscription is one (topic filter, options) pair inside a SUBSCRIBE.
type Subscription struct {
	Filter             TopicFilter
	QoS                QoS
	NoLocal            bool
	RetainAsPublished  bool
	RetainHandling     RetainHandling
}

func parseSubscriptionOptions(b byte) (QoS, bool, bool, RetainHandling, error) {
	if b&0xC0 != 0 {
		return 0, false, false, 0, NewMalformedPacketError(ErrInvalidSubscribeOptions, "reserved bits")
	}
	qos, err := ParseQoS(b & 0x03)
	if err != nil {
		return 0, false, false, 0, err
	}
	noLocal := b&0x04 != 0
	retainAsPublished := b&0x08 != 0
	rh := (b >> 4) & 0x03
	if rh > 2 {
		return 0, false, false, 0, NewMalformedPacketError(ErrInvalidSubscribeOptions, "retain handling")
	}
	return qos, noLocal, retainAsPublished, RetainHandling(rh), nil
}

func encodeSubscriptionOptions(s Subscription) byte {
	var b byte
	b |= byte(s.QoS)
	if s.NoLocal {
		b |= 0x04
	}
	if s.RetainAsPublished {
		b |= 0x08
	}
	b |= byte(s.RetainHandling) << 4
	return b
}

// Subscribe requests one or more subscriptions.
type Subscribe struct {
	PacketID      uint16
	Properties    SubscribeProperties
	Subscriptions []Subscription
}

func (Subscribe) Type() PacketType { return TypeSubscribe }

func parseSubscribe(data []byte, settings Settings) (*Subscribe, error) {
	packetID, n, err := readUint16(data)
	if err != nil {
		return nil, err
	}
	if packetID == 0 {
		return nil, NewMalformedPacketError(ErrZeroPacketID, "SUBSCRIBE")
	}
	offset := n

	var props SubscribeProperties
	n, err = parsePropertiesRegion(data[offset:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return nil, err
	}
	offset += n

	var subs []Subscription
	for offset < len(data) {
		filterStr, n, err := readUTF8String(data[offset:], settings.MaxBytesString)
		if err != nil {
			return nil, err
		}
		offset += n
		filter, err := NewTopicFilter(filterStr)
		if err != nil {
			return nil, err
		}

		if offset >= len(data) {
			return nil, NewMalformedPacketError(ErrUnexpectedEOF, "subscription options")
		}
		qos, noLocal, rap, rh, err := parseSubscriptionOptions(data[offset])
		if err != nil {
			return nil, err
		}
		offset++

		if uint32(len(subs)+1) > settings.MaxSubscriptionsLen {
			return nil, NewLimitExceededError(ErrTooManySubscriptions, "SUBSCRIBE")
		}
		subs = append(subs, Subscription{
			Filter:            filter,
			QoS:               qos,
			NoLocal:           noLocal,
			RetainAsPublished: rap,
			RetainHandling:    rh,
		})
	}

	if len(subs) == 0 {
		return nil, NewProtocolError(ErrEmptySubscriptionList, "SUBSCRIBE")
	}

	return &Subscribe{PacketID: packetID, Properties: props, Subscriptions: subs}, nil
}

func (s *Subscribe) Encode(w io.Writer) error {
	if len(s.Subscriptions) == 0 {
		return NewProtocolError(ErrEmptySubscriptionList, "SUBSCRIBE")
	}

	propBytes, err := encodeSubscribeProperties(&s.Properties)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}

	body := make([]byte, 0, 2+len(framed))
	body = append(body, byte(s.PacketID>>8), byte(s.PacketID))
	body = append(body, framed...)

	for _, sub := range s.Subscriptions {
		filterBytes := sub.Filter.String()
		if len(filterBytes) > 65535 {
			return NewPacketTooLargeError(ErrPacketTooLarge, "SUBSCRIBE topic filter")
		}
		body = append(body, byte(len(filterBytes)>>8), byte(len(filterBytes)))
		body = append(body, filterBytes...)
		body = append(body, encodeSubscriptionOptions(sub))
	}

	return writeFixedHeader(w, TypeSubscribe, 0x2, body)
}
