package encoding

import "io"

// Unsubscribe requests removal of one or more subscriptions.
type Unsubscribe struct {
	PacketID     uint16
	Properties   UnsubscribeProperties
	TopicFilters []TopicFilter
}

func (Unsubscribe) Type() PacketType { return TypeUnsubscribe }

func parseUnsubscribe(data []byte, settings Settings) (*Unsubscribe, error) {
	packetID, n, err := readUint16(data)
	if err != nil {
		return nil, err
	}
	if packetID == 0 {
		return nil, NewMalformedPacketError(ErrZeroPacketID, "UNSUBSCRIBE")
	}
	offset := n

	var props UnsubscribeProperties
	n, err = parsePropertiesRegion(data[offset:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return nil, err
	}
	offset += n

	var filters []TopicFilter
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
		if uint32(len(filters)+1) > settings.MaxSubscriptionsLen {
			return nil, NewLimitExceededError(ErrTooManySubscriptions, "UNSUBSCRIBE")
		}
		filters = append(filters, filter)
	}

	if len(filters) == 0 {
		return nil, NewProtocolError(ErrEmptyUnsubscribeList, "UNSUBSCRIBE")
	}

	return &Unsubscribe{PacketID: packetID, Properties: props, TopicFilters: filters}, nil
}

func (u *Unsubscribe) Encode(w io.Writer) error {
	if len(u.TopicFilters) == 0 {
		return NewProtocolError(ErrEmptyUnsubscribeList, "UNSUBSCRIBE")
	}

	propBytes, err := encodeUnsubscribeProperties(&u.Properties)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}

	body := make([]byte, 0, 2+len(framed))
	body = append(body, byte(u.PacketID>>8), byte(u.PacketID))
	body = append(body, framed...)

	for _, f := range u.TopicFilters {
		filterBytes := f.String()
		if len(filterBytes) > 65535 {
			return NewPacketTooLargeError(ErrPacketTooLarge, "UNSUBSCRIBE topic filter")
		}
		body = append(body, byte(len(filterBytes)>>8), byte(len(filterBytes)))
		body = append(body, filterBytes...)
	}

	return writeFixedHeader(w, TypeUnsubscribe, 0x2, body)
}
