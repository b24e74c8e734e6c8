package encoding

import "io"

func parseReasonCodeFamily(data []byte, settings Settings, project func(ReasonCode) (ReasonCode, error), label string) (uint16, ReasonProperties, []ReasonCode, error) {
	packetID, n, err := readUint16(data)
	if err != nil {
		return 0, ReasonProperties{}, nil, err
	}
	if packetID == 0 {
		return 0, ReasonProperties{}, nil, NewMalformedPacketError(ErrZeroPacketID, label)
	}
	offset := n

	var props ReasonProperties
	n, err = parsePropertiesRegion(data[offset:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return 0, ReasonProperties{}, nil, err
	}
	offset += n

	var reasons []ReasonCode
	for offset < len(data) {
		reason, err := project(ReasonCode(data[offset]))
		if err != nil {
			return 0, ReasonProperties{}, nil, err
		}
		offset++
		if uint32(len(reasons)+1) > settings.MaxSubscriptionsLen {
			return 0, ReasonProperties{}, nil, NewLimitExceededError(ErrTooManySubscriptions, label)
		}
		reasons = append(reasons, reason)
	}

	if len(reasons) == 0 {
		return 0, ReasonProperties{}, nil, NewMalformedPacketError(ErrUnexpectedEOF, label)
	}

	return packetID, props, reasons, nil
}

func encodeReasonCodeFamily(w io.Writer, packetType PacketType, packetID uint16, props *ReasonProperties, reasons []ReasonCode) error {
	propBytes, err := encodeReasonProperties(props)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}

	body := make([]byte, 0, 2+len(framed)+len(reasons))
	body = append(body, byte(packetID>>8), byte(packetID))
	body = append(body, framed...)
	for _, r := range reasons {
		body = append(body, byte(r))
	}

	return writeFixedHeader(w, packetType, 0x0, body)
}

// SubAck acknowledges a SUBSCRIBE, one reason code per requested
// subscription, in request order.
type SubAck struct {
	PacketID    uint16
	Properties  ReasonProperties
	ReasonCodes []ReasonCode
}

func (SubAck) Type() PacketType { return TypeSubAck }

func parseSubAck(data []byte, settings Settings) (*SubAck, error) {
	id, props, reasons, err := parseReasonCodeFamily(data, settings, ProjectSubAckReasonCode, "SUBACK")
	if err != nil {
		return nil, err
	}
	return &SubAck{PacketID: id, Properties: props, ReasonCodes: reasons}, nil
}

func (s *SubAck) Encode(w io.Writer) error {
	return encodeReasonCodeFamily(w, TypeSubAck, s.PacketID, &s.Properties, s.ReasonCodes)
}

// UnsubAck acknowledges an UNSUBSCRIBE, one reason code per requested
// topic filter, in request order.
type UnsubAck struct {
	PacketID    uint16
	Properties  ReasonProperties
	ReasonCodes []ReasonCode
}

func (UnsubAck) Type() PacketType { return TypeUnsubAck }

func parseUnsubAck(data []byte, settings Settings) (*UnsubAck, error) {
	id, props, reasons, err := parseReasonCodeFamily(data, settings, ProjectUnsubAckReasonCode, "UNSUBACK")
	if err != nil {
		return nil, err
	}
	return &UnsubAck{PacketID: id, Properties: props, ReasonCodes: reasons}, nil
}

func (u *UnsubAck) Encode(w io.Writer) error {
	return encodeReasonCodeFamily(w, TypeUnsubAck, u.PacketID, &u.Properties, u.ReasonCodes)
}
