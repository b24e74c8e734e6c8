package encoding

import "io"

// Will is CONNECT's optional Will Message: delivered by the server on the
// client's behalf if the network connection is lost without a prior
// DISCONNECT.
type Will struct {
	Retain     bool
	QoS        QoS
	Properties WillProperties
	Topic      Topic
	Payload    []byte
}

// Connect is the first packet on every connection.
type Connect struct {
	ClientID   string
	CleanStart bool
	KeepAlive  uint16
	Properties ConnectProperties
	Will       *Will
	Username   *string
	Password   []byte
}

func (Connect) Type() PacketType { return TypeConnect }

const connectProtocolName = "MQTT"
const connectProtocolVersion = 5

func parseConnect(data []byte, settings Settings) (*Connect, error) {
	name, n, err := readUTF8String(data, settings.MaxBytesString)
	if err != nil {
		return nil, err
	}
	if name != connectProtocolName {
		return nil, NewMalformedPacketError(ErrInvalidProtocolName, name)
	}
	offset := n

	if len(data) < offset+1 {
		return nil, NewMalformedPacketError(ErrUnexpectedEOF, "protocol version")
	}
	version := data[offset]
	offset++
	if version != connectProtocolVersion {
		return nil, NewMalformedPacketError(ErrInvalidProtocolVersion, "CONNECT")
	}

	if len(data) < offset+1 {
		return nil, NewMalformedPacketError(ErrUnexpectedEOF, "connect flags")
	}
	connectFlags := data[offset]
	offset++

	if connectFlags&0x01 != 0 {
		return nil, NewMalformedPacketError(ErrInvalidConnectFlags, "reserved bit")
	}
	usernameFlag := connectFlags&0x80 != 0
	passwordFlag := connectFlags&0x40 != 0
	willRetainFlag := connectFlags&0x20 != 0
	willQoSBits := (connectFlags >> 3) & 0x03
	willFlag := connectFlags&0x04 != 0
	cleanStart := connectFlags&0x02 != 0

	if willQoSBits == 3 {
		return nil, NewMalformedPacketError(ErrInvalidQoS, "will QoS")
	}
	if !willFlag && (willRetainFlag || willQoSBits != 0) {
		return nil, NewProtocolError(ErrWillFlagMismatch, "CONNECT")
	}

	keepAlive, n, err := readUint16(data[offset:])
	if err != nil {
		return nil, err
	}
	offset += n

	var props ConnectProperties
	consumed, err := parsePropertiesRegion(data[offset:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return nil, err
	}
	offset += consumed
	if err := props.validate(); err != nil {
		return nil, err
	}

	clientID, n, err := readUTF8String(data[offset:], settings.MaxBytesString)
	if err != nil {
		return nil, err
	}
	offset += n

	var will *Will
	if willFlag {
		var willProps WillProperties
		n, err := parsePropertiesRegion(data[offset:], settings, func(p Property) error {
			return willProps.apply(p, settings.MaxUserPropertiesLen)
		})
		if err != nil {
			return nil, err
		}
		offset += n

		willTopicStr, n, err := readUTF8String(data[offset:], settings.MaxBytesString)
		if err != nil {
			return nil, err
		}
		offset += n
		willTopic, err := NewTopic(willTopicStr)
		if err != nil {
			return nil, err
		}

		willPayload, n, err := readBinaryData(data[offset:], settings.MaxBytesBinaryData)
		if err != nil {
			return nil, err
		}
		offset += n

		willQoS, err := ParseQoS(willQoSBits)
		if err != nil {
			return nil, err
		}

		will = &Will{
			Retain:     willRetainFlag,
			QoS:        willQoS,
			Properties: willProps,
			Topic:      willTopic,
			Payload:    willPayload,
		}
	}

	var username *string
	if usernameFlag {
		u, n, err := readUTF8String(data[offset:], settings.MaxBytesString)
		if err != nil {
			return nil, err
		}
		offset += n
		username = &u
	}

	var password []byte
	if passwordFlag {
		pw, n, err := readBinaryData(data[offset:], settings.MaxBytesBinaryData)
		if err != nil {
			return nil, err
		}
		offset += n
		password = pw
	}

	if offset != len(data) {
		return nil, NewMalformedPacketError(ErrTrailingBytes, "CONNECT")
	}

	return &Connect{
		ClientID:   clientID,
		CleanStart: cleanStart,
		KeepAlive:  keepAlive,
		Properties: props,
		Will:       will,
		Username:   username,
		Password:   password,
	}, nil
}

func (c *Connect) Encode(w io.Writer) error {
	var body []byte
	appendStr := func(s string) error {
		if len(s) > 65535 {
			return NewPacketTooLargeError(ErrPacketTooLarge, "CONNECT")
		}
		body = append(body, byte(len(s)>>8), byte(len(s)))
		body = append(body, s...)
		return nil
	}

	if err := appendStr(connectProtocolName); err != nil {
		return err
	}
	body = append(body, connectProtocolVersion)

	var flags byte
	if c.Username != nil {
		flags |= 0x80
	}
	if c.Password != nil {
		flags |= 0x40
	}
	if c.Will != nil {
		if c.Will.Retain {
			flags |= 0x20
		}
		flags |= byte(c.Will.QoS) << 3
		flags |= 0x04
	}
	if c.CleanStart {
		flags |= 0x02
	}
	body = append(body, flags)
	body = append(body, byte(c.KeepAlive>>8), byte(c.KeepAlive))

	propBytes, err := encodeConnectProperties(&c.Properties)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}
	body = append(body, framed...)

	if err := appendStr(c.ClientID); err != nil {
		return err
	}

	if c.Will != nil {
		willPropBytes, err := encodeWillProperties(&c.Will.Properties)
		if err != nil {
			return err
		}
		willFramed, err := encodePropertiesBlock(willPropBytes)
		if err != nil {
			return err
		}
		body = append(body, willFramed...)
		if err := appendStr(c.Will.Topic.String()); err != nil {
			return err
		}
		if len(c.Will.Payload) > 65535 {
			return NewPacketTooLargeError(ErrBinaryDataOverLimit, "will payload")
		}
		body = append(body, byte(len(c.Will.Payload)>>8), byte(len(c.Will.Payload)))
		body = append(body, c.Will.Payload...)
	}

	if c.Username != nil {
		if err := appendStr(*c.Username); err != nil {
			return err
		}
	}
	if c.Password != nil {
		if len(c.Password) > 65535 {
			return NewPacketTooLargeError(ErrBinaryDataOverLimit, "password")
		}
		body = append(body, byte(len(c.Password)>>8), byte(len(c.Password)))
		body = append(body, c.Password...)
	}

	return writeFixedHeader(w, TypeConnect, 0x0, body)
}
