package encoding

import "io"

// Disconnect signals the end of a session, with a reason, from either peer.
type Disconnect struct {
	ReasonCode ReasonCode
	Properties DisconnectProperties
}

func (Disconnect) Type() PacketType { return TypeDisconnect }

func parseDisconnect(data []byte, settings Settings) (*Disconnect, error) {
	if len(data) == 0 {
		return &Disconnect{ReasonCode: ReasonNormalDisconnection}, nil
	}

	reason, err := ProjectDisconnectReasonCode(ReasonCode(data[0]))
	if err != nil {
		return nil, err
	}

	var props DisconnectProperties
	_, err = parsePropertiesRegion(data[1:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return nil, err
	}

	return &Disconnect{ReasonCode: reason, Properties: props}, nil
}

func (d *Disconnect) Encode(w io.Writer) error {
	if d.ReasonCode == ReasonNormalDisconnection && d.Properties.isEmpty() {
		return writeFixedHeader(w, TypeDisconnect, 0x0, nil)
	}

	propBytes, err := encodeDisconnectProperties(&d.Properties)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}

	body := make([]byte, 0, 1+len(framed))
	body = append(body, byte(d.ReasonCode))
	body = append(body, framed...)

	return writeFixedHeader(w, TypeDisconnect, 0x0, body)
}
