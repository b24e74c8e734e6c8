package encoding

import "io"

// Auth carries an extended (challenge/response) authentication exchange.
type Auth struct {
	ReasonCode ReasonCode
	Properties AuthProperties
}

func (Auth) Type() PacketType { return TypeAuth }

func parseAuth(data []byte, settings Settings) (*Auth, error) {
	if len(data) == 0 {
		return &Auth{ReasonCode: ReasonSuccess}, nil
	}

	reason, err := ProjectAuthReasonCode(ReasonCode(data[0]))
	if err != nil {
		return nil, err
	}

	var props AuthProperties
	_, err = parsePropertiesRegion(data[1:], settings, func(p Property) error {
		return props.apply(p, settings.MaxUserPropertiesLen)
	})
	if err != nil {
		return nil, err
	}
	if err := props.validate(); err != nil {
		return nil, err
	}

	return &Auth{ReasonCode: reason, Properties: props}, nil
}

func (a *Auth) Encode(w io.Writer) error {
	if a.ReasonCode == ReasonSuccess && a.Properties.isEmpty() {
		return writeFixedHeader(w, TypeAuth, 0x0, nil)
	}

	propBytes, err := encodeAuthProperties(&a.Properties)
	if err != nil {
		return err
	}
	framed, err := encodePropertiesBlock(propBytes)
	if err != nil {
		return err
	}

	body := make([]byte, 0, 1+len(framed))
	body = append(body, byte(a.ReasonCode))
	body = append(body, framed...)

	return writeFixedHeader(w, TypeAuth, 0x0, body)
}
