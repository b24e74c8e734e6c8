package encoding

import "io"

// ConnAckKind distinguishes a session resumption from any other outcome,
// matching spec.md's "ConnAck.kind is ResumePreviousSession ... or Other".
type ConnAckKind interface {
	isConnAckKind()
}

// ResumePreviousSession means session-present=1 and reason=Success.
type ResumePreviousSession struct{}

func (ResumePreviousSession) isConnAckKind() {}

// ConnAckOther covers every outcome that is not a resumed session.
type ConnAckOther struct {
	ReasonCode ReasonCode
}

func (ConnAckOther) isConnAckKind() {}

// ConnAck acknowledges a CONNECT.
type ConnAck struct {
	Kind       ConnAckKind
	Properties ConnAckProperties
}

func (ConnAck) Type() PacketType { return TypeConnAck }

func parseConnAck(data []byte, settings Settings) (*ConnAck, error) {
	if len(data) < 2 {
		return nil, NewMalformedPacketError(ErrUnexpectedEOF, "CONNACK")
	}
	flagsByte := data[0]
	if flagsByte&0xFE != 0 {
		return nil, NewMalformedPacketError(ErrInvalidConnectFlags, "CONNACK acknowledge flags")
	}
	sessionPresent := flagsByte&0x01 != 0

	reason, err := ProjectConnAckReasonCode(ReasonCode(data[1]))
	if err != nil {
		return nil, err
	}
	if sessionPresent && reason != ReasonSuccess {
		return nil, NewMalformedPacketError(ErrSessionPresentMismatch, "CONNACK")
	}

	var props ConnAckProperties
	_, err = parsePropertiesRegion(data[2:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return nil, err
	}
	if err := props.validate(); err != nil {
		return nil, err
	}

	var kind ConnAckKind
	if sessionPresent && reason == ReasonSuccess {
		kind = ResumePreviousSession{}
	} else {
		kind = ConnAckOther{ReasonCode: reason}
	}

	return &ConnAck{Kind: kind, Properties: props}, nil
}

func (c *ConnAck) Encode(w io.Writer) error {
	var sessionPresent bool
	var reason ReasonCode
	switch k := c.Kind.(type) {
	case ResumePreviousSession:
		sessionPresent = true
		reason = ReasonSuccess
	case ConnAckOther:
		reason = k.ReasonCode
	default:
		return NewProtocolError(ErrInvalidReasonCode, "unknown ConnAckKind")
	}

	propBytes, err := encodeConnAckProperties(&c.Properties)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}

	body := make([]byte, 0, 2+len(framed))
	var flagsByte byte
	if sessionPresent {
		flagsByte = 1
	}
	body = append(body, flagsByte, byte(reason))
	body = append(body, framed...)

	return writeFixedHeader(w, TypeConnAck, 0x0, body)
}
