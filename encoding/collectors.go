package encoding

// Each collector below is a mutable properties record, the "option (b)"
// shape design-notes §9 calls out: the parser loops over the properties
// region and calls apply(Property) for each one, which checks containment
// (is this ID permitted here?), cardinality (is this an at-most-once field
// already set?), and writes the value into the correct struct field.
// Duplication is detected by checking the destination pointer/slice is nil
// before assigning, rather than folding into an accumulator.

func appendUserProperty(props *[]UserProperty, up UserProperty, limit int) error {
	if len(*props) >= limit {
		return NewLimitExceededError(ErrTooManyUserProperties, "UserProperty")
	}
	*props = append(*props, up)
	return nil
}

// ConnectProperties holds CONNECT's own (non-Will) properties.
type ConnectProperties struct {
	SessionExpiryInterval      *uint32
	ReceiveMaximum             *uint16
	MaximumPacketSize          *uint32
	TopicAliasMaximum          *uint16
	RequestResponseInformation *bool
	RequestProblemInformation  *bool
	UserProperties             []UserProperty
	AuthenticationMethod       *string
	AuthenticationData         []byte
}

func (p *ConnectProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertySessionExpiryInterval:
		return setU32(&p.SessionExpiryInterval, prop)
	case PropertyReceiveMaximum:
		return setNonZeroU16(&p.ReceiveMaximum, prop)
	case PropertyMaximumPacketSize:
		return setNonZeroU32(&p.MaximumPacketSize, prop)
	case PropertyTopicAliasMaximum:
		return setU16(&p.TopicAliasMaximum, prop)
	case PropertyRequestResponseInformation:
		return setBool(&p.RequestResponseInformation, prop)
	case PropertyRequestProblemInformation:
		return setBool(&p.RequestProblemInformation, prop)
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	case PropertyAuthenticationMethod:
		return setString(&p.AuthenticationMethod, prop)
	case PropertyAuthenticationData:
		return setBytes(&p.AuthenticationData, prop)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "CONNECT: "+prop.ID.String())
	}
}

func (p *ConnectProperties) validate() error {
	if p.AuthenticationData != nil && p.AuthenticationMethod == nil {
		return NewProtocolError(ErrMissingAuthMethod, "CONNECT")
	}
	return nil
}

// WillProperties holds the properties of CONNECT's optional Will Message.
type WillProperties struct {
	WillDelayInterval      *uint32
	PayloadFormatIndicator *FormatIndicator
	MessageExpiryInterval  *uint32
	ContentType            *string
	ResponseTopic          *Topic
	CorrelationData        []byte
	UserProperties         []UserProperty
}

func (p *WillProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertyWillDelayInterval:
		return setU32(&p.WillDelayInterval, prop)
	case PropertyPayloadFormatIndicator:
		if p.PayloadFormatIndicator != nil {
			return NewProtocolError(ErrDuplicateProperty, "PayloadFormatIndicator")
		}
		fi, err := ParseFormatIndicator(prop.Value.(byte))
		if err != nil {
			return err
		}
		p.PayloadFormatIndicator = &fi
		return nil
	case PropertyMessageExpiryInterval:
		return setU32(&p.MessageExpiryInterval, prop)
	case PropertyContentType:
		return setString(&p.ContentType, prop)
	case PropertyResponseTopic:
		if p.ResponseTopic != nil {
			return NewProtocolError(ErrDuplicateProperty, "ResponseTopic")
		}
		t, err := NewTopic(prop.Value.(string))
		if err != nil {
			return err
		}
		p.ResponseTopic = &t
		return nil
	case PropertyCorrelationData:
		return setBytes(&p.CorrelationData, prop)
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "Will: "+prop.ID.String())
	}
}

// ConnAckProperties holds CONNACK's properties.
type ConnAckProperties struct {
	SessionExpiryInterval             *uint32
	ReceiveMaximum                    *uint16
	MaximumQoS                        *MaximumQoS
	RetainAvailable                   *bool
	MaximumPacketSize                 *uint32
	AssignedClientIdentifier          *string
	TopicAliasMaximum                 *uint16
	ReasonString                      *string
	UserProperties                    []UserProperty
	WildcardSubscriptionAvailable     *bool
	SubscriptionIdentifiersAvailable  *bool
	SharedSubscriptionAvailable       *bool
	ServerKeepAlive                   *uint16
	ResponseInformation               *string
	ServerReference                   *string
	AuthenticationMethod              *string
	AuthenticationData                []byte
}

func (p *ConnAckProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertySessionExpiryInterval:
		return setU32(&p.SessionExpiryInterval, prop)
	case PropertyReceiveMaximum:
		return setNonZeroU16(&p.ReceiveMaximum, prop)
	case PropertyMaximumQoS:
		if p.MaximumQoS != nil {
			return NewProtocolError(ErrDuplicateProperty, "MaximumQoS")
		}
		q, err := ParseMaximumQoS(prop.Value.(byte))
		if err != nil {
			return err
		}
		p.MaximumQoS = &q
		return nil
	case PropertyRetainAvailable:
		return setBool(&p.RetainAvailable, prop)
	case PropertyMaximumPacketSize:
		return setNonZeroU32(&p.MaximumPacketSize, prop)
	case PropertyAssignedClientIdentifier:
		return setString(&p.AssignedClientIdentifier, prop)
	case PropertyTopicAliasMaximum:
		return setU16(&p.TopicAliasMaximum, prop)
	case PropertyReasonString:
		return setString(&p.ReasonString, prop)
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	case PropertyWildcardSubscriptionAvailable:
		return setBool(&p.WildcardSubscriptionAvailable, prop)
	case PropertySubscriptionIdentifiersAvail:
		return setBool(&p.SubscriptionIdentifiersAvailable, prop)
	case PropertySharedSubscriptionAvailable:
		return setBool(&p.SharedSubscriptionAvailable, prop)
	case PropertyServerKeepAlive:
		return setU16(&p.ServerKeepAlive, prop)
	case PropertyResponseInformation:
		return setString(&p.ResponseInformation, prop)
	case PropertyServerReference:
		return setString(&p.ServerReference, prop)
	case PropertyAuthenticationMethod:
		return setString(&p.AuthenticationMethod, prop)
	case PropertyAuthenticationData:
		return setBytes(&p.AuthenticationData, prop)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "CONNACK: "+prop.ID.String())
	}
}

func (p *ConnAckProperties) validate() error {
	if p.AuthenticationData != nil && p.AuthenticationMethod == nil {
		return NewProtocolError(ErrMissingAuthMethod, "CONNACK")
	}
	return nil
}

// PublishProperties holds PUBLISH's properties. SubscriptionIdentifier is
// the one non-UserProperty repeatable field: MQTT v5 §3.3.2.3.8 permits a
// forwarded PUBLISH to carry more than one distinct subscription identifier.
type PublishProperties struct {
	PayloadFormatIndicator  *FormatIndicator
	MessageExpiryInterval   *uint32
	TopicAlias              *uint16
	ResponseTopic           *Topic
	CorrelationData         []byte
	UserProperties          []UserProperty
	SubscriptionIdentifiers []uint32
	ContentType             *string
}

func (p *PublishProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertyPayloadFormatIndicator:
		if p.PayloadFormatIndicator != nil {
			return NewProtocolError(ErrDuplicateProperty, "PayloadFormatIndicator")
		}
		fi, err := ParseFormatIndicator(prop.Value.(byte))
		if err != nil {
			return err
		}
		p.PayloadFormatIndicator = &fi
		return nil
	case PropertyMessageExpiryInterval:
		return setU32(&p.MessageExpiryInterval, prop)
	case PropertyTopicAlias:
		return setNonZeroU16(&p.TopicAlias, prop)
	case PropertyResponseTopic:
		if p.ResponseTopic != nil {
			return NewProtocolError(ErrDuplicateProperty, "ResponseTopic")
		}
		t, err := NewTopic(prop.Value.(string))
		if err != nil {
			return err
		}
		p.ResponseTopic = &t
		return nil
	case PropertyCorrelationData:
		return setBytes(&p.CorrelationData, prop)
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	case PropertySubscriptionIdentifier:
		p.SubscriptionIdentifiers = append(p.SubscriptionIdentifiers, prop.Value.(uint32))
		return nil
	case PropertyContentType:
		return setString(&p.ContentType, prop)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "PUBLISH: "+prop.ID.String())
	}
}

// AckProperties is shared by PUBACK, PUBREC, PUBREL, and PUBCOMP.
type AckProperties struct {
	ReasonString   *string
	UserProperties []UserProperty
}

func (p *AckProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertyReasonString:
		return setString(&p.ReasonString, prop)
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "ack packet: "+prop.ID.String())
	}
}

// SubscribeProperties holds SUBSCRIBE's properties.
type SubscribeProperties struct {
	SubscriptionIdentifier *uint32
	UserProperties         []UserProperty
}

func (p *SubscribeProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertySubscriptionIdentifier:
		if p.SubscriptionIdentifier != nil {
			return NewProtocolError(ErrDuplicateProperty, "SubscriptionIdentifier")
		}
		v := prop.Value.(uint32)
		p.SubscriptionIdentifier = &v
		return nil
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "SUBSCRIBE: "+prop.ID.String())
	}
}

// ReasonProperties is shared by SUBACK and UNSUBACK.
type ReasonProperties struct {
	ReasonString   *string
	UserProperties []UserProperty
}

func (p *ReasonProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertyReasonString:
		return setString(&p.ReasonString, prop)
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "SUBACK/UNSUBACK: "+prop.ID.String())
	}
}

// UnsubscribeProperties holds UNSUBSCRIBE's properties.
type UnsubscribeProperties struct {
	UserProperties []UserProperty
}

func (p *UnsubscribeProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "UNSUBSCRIBE: "+prop.ID.String())
	}
}

// DisconnectProperties holds DISCONNECT's properties.
type DisconnectProperties struct {
	SessionExpiryInterval *uint32
	ReasonString          *string
	UserProperties        []UserProperty
	ServerReference       *string
}

func (p *DisconnectProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertySessionExpiryInterval:
		return setU32(&p.SessionExpiryInterval, prop)
	case PropertyReasonString:
		return setString(&p.ReasonString, prop)
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	case PropertyServerReference:
		return setString(&p.ServerReference, prop)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "DISCONNECT: "+prop.ID.String())
	}
}

// AuthProperties holds AUTH's properties.
type AuthProperties struct {
	ReasonString         *string
	AuthenticationMethod *string
	AuthenticationData   []byte
	UserProperties       []UserProperty
}

func (p *AuthProperties) apply(prop Property, limit int) error {
	switch prop.ID {
	case PropertyReasonString:
		return setString(&p.ReasonString, prop)
	case PropertyAuthenticationMethod:
		return setString(&p.AuthenticationMethod, prop)
	case PropertyAuthenticationData:
		return setBytes(&p.AuthenticationData, prop)
	case PropertyUserProperty:
		return appendUserProperty(&p.UserProperties, prop.Value.(UserProperty), limit)
	default:
		return NewProtocolError(ErrPropertyNotAllowed, "AUTH: "+prop.ID.String())
	}
}

func (p *AuthProperties) validate() error {
	if p.AuthenticationData != nil && p.AuthenticationMethod == nil {
		return NewProtocolError(ErrMissingAuthMethod, "AUTH")
	}
	return nil
}

// setU32/setU16/setString/setBytes/setBool/setNonZeroU16/setNonZeroU32 are
// the check-before-assign primitives every collector's apply method uses to
// detect a second occurrence of an at-most-once property.

func setU32(dst **uint32, prop Property) error {
	if *dst != nil {
		return NewProtocolError(ErrDuplicateProperty, prop.ID.String())
	}
	v := prop.Value.(uint32)
	*dst = &v
	return nil
}

func setNonZeroU32(dst **uint32, prop Property) error {
	v := prop.Value.(uint32)
	if v == 0 {
		return NewProtocolError(ErrZeroValueProperty, prop.ID.String())
	}
	if *dst != nil {
		return NewProtocolError(ErrDuplicateProperty, prop.ID.String())
	}
	*dst = &v
	return nil
}

func setU16(dst **uint16, prop Property) error {
	if *dst != nil {
		return NewProtocolError(ErrDuplicateProperty, prop.ID.String())
	}
	v := prop.Value.(uint16)
	*dst = &v
	return nil
}

func setNonZeroU16(dst **uint16, prop Property) error {
	v := prop.Value.(uint16)
	if v == 0 {
		return NewProtocolError(ErrZeroValueProperty, prop.ID.String())
	}
	if *dst != nil {
		return NewProtocolError(ErrDuplicateProperty, prop.ID.String())
	}
	*dst = &v
	return nil
}

func setString(dst **string, prop Property) error {
	if *dst != nil {
		return NewProtocolError(ErrDuplicateProperty, prop.ID.String())
	}
	v := prop.Value.(string)
	*dst = &v
	return nil
}

func setBytes(dst *[]byte, prop Property) error {
	if *dst != nil {
		return NewProtocolError(ErrDuplicateProperty, prop.ID.String())
	}
	*dst = prop.Value.([]byte)
	return nil
}

func setBool(dst **bool, prop Property) error {
	if *dst != nil {
		return NewProtocolError(ErrDuplicateProperty, prop.ID.String())
	}
	raw := prop.Value.(byte)
	v := raw != 0
	*dst = &v
	return nil
}
