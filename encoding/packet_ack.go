package encoding

import "io"

// parseAckFamily implements the shared PUBACK/PUBREC/PUBREL/PUBCOMP parse
// shape: packet identifier, then either nothing more (remaining length 2,
// reason defaults to Success with empty properties) or a reason byte plus
// properties.
func parseAckFamily(data []byte, settings Settings, project func(ReasonCode) (ReasonCode, error), label string) (uint16, ReasonCode, AckProperties, error) {
	packetID, n, err := readUint16(data)
	if err != nil {
		return 0, 0, AckProperties{}, err
	}
	if packetID == 0 {
		return 0, 0, AckProperties{}, NewMalformedPacketError(ErrZeroPacketID, label)
	}

	if len(data) == n {
		return packetID, ReasonSuccess, AckProperties{}, nil
	}

	if len(data) < n+1 {
		return 0, 0, AckProperties{}, NewMalformedPacketError(ErrUnexpectedEOF, label)
	}
	reason, err := project(ReasonCode(data[n]))
	if err != nil {
		return 0, 0, AckProperties{}, err
	}

	var props AckProperties
	_, err = parsePropertiesRegion(data[n+1:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return 0, 0, AckProperties{}, err
	}

	return packetID, reason, props, nil
}

func encodeAckFamily(w io.Writer, packetType PacketType, flags byte, packetID uint16, reason ReasonCode, props *AckProperties) error {
	if reason == ReasonSuccess && props.isEmpty() {
		return writeFixedHeader(w, packetType, flags, []byte{byte(packetID >> 8), byte(packetID)})
	}

	propBytes, err := encodeAckProperties(props)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}

	body := make([]byte, 0, 3+len(framed))
	body = append(body, byte(packetID>>8), byte(packetID), byte(reason))
	body = append(body, framed...)

	return writeFixedHeader(w, packetType, flags, body)
}

// PubAck acknowledges a QoS 1 PUBLISH.
type PubAck struct {
	PacketID   uint16
	ReasonCode ReasonCode
	Properties AckProperties
}

func (PubAck) Type() PacketType { return TypePubAck }

func parsePubAck(data []byte, settings Settings) (*PubAck, error) {
	id, reason, props, err := parseAckFamily(data, settings, ProjectPubAckPubRecReasonCode, "PUBACK")
	if err != nil {
		return nil, err
	}
	return &PubAck{PacketID: id, ReasonCode: reason, Properties: props}, nil
}

func (p *PubAck) Encode(w io.Writer) error {
	return encodeAckFamily(w, TypePubAck, 0x0, p.PacketID, p.ReasonCode, &p.Properties)
}

// PubRec is the first acknowledgement of a QoS 2 PUBLISH.
type PubRec struct {
	PacketID   uint16
	ReasonCode ReasonCode
	Properties AckProperties
}

func (PubRec) Type() PacketType { return TypePubRec }

func parsePubRec(data []byte, settings Settings) (*PubRec, error) {
	id, reason, props, err := parseAckFamily(data, settings, ProjectPubAckPubRecReasonCode, "PUBREC")
	if err != nil {
		return nil, err
	}
	return &PubRec{PacketID: id, ReasonCode: reason, Properties: props}, nil
}

func (p *PubRec) Encode(w io.Writer) error {
	return encodeAckFamily(w, TypePubRec, 0x0, p.PacketID, p.ReasonCode, &p.Properties)
}

// PubRel completes a QoS 2 publish handshake's second step.
type PubRel struct {
	PacketID   uint16
	ReasonCode ReasonCode
	Properties AckProperties
}

func (PubRel) Type() PacketType { return TypePubRel }

func parsePubRel(data []byte, settings Settings) (*PubRel, error) {
	id, reason, props, err := parseAckFamily(data, settings, ProjectPubRelPubCompReasonCode, "PUBREL")
	if err != nil {
		return nil, err
	}
	return &PubRel{PacketID: id, ReasonCode: reason, Properties: props}, nil
}

func (p *PubRel) Encode(w io.Writer) error {
	return encodeAckFamily(w, TypePubRel, 0x2, p.PacketID, p.ReasonCode, &p.Properties)
}

// PubComp completes a QoS 2 publish handshake.
type PubComp struct {
	PacketID   uint16
	ReasonCode ReasonCode
	Properties AckProperties
}

func (PubComp) Type() PacketType { return TypePubComp }

func parsePubComp(data []byte, settings Settings) (*PubComp, error) {
	id, reason, props, err := parseAckFamily(data, settings, ProjectPubRelPubCompReasonCode, "PUBCOMP")
	if err != nil {
		return nil, err
	}
	return &PubComp{PacketID: id, ReasonCode: reason, Properties: props}, nil
}

func (p *PubComp) Encode(w io.Writer) error {
	return encodeAckFamily(w, TypePubComp, 0x0, p.PacketID, p.ReasonCode, &p.Properties)
}
