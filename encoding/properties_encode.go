package encoding

import "bytes"

// The encodeXxxProperties functions below are the encode-side mirror of
// collectors.go: each walks its properties record field by field (the
// spec places no ordering requirement on encode — see spec.md §5) and
// writes whichever fields are set. Properties are written in declaration
// order, except that UserProperty entries follow the record's other
// fields (in DISCONNECT they precede ServerReference); a decoder must not
// depend on the order.

func propID(buf *bytes.Buffer, id PropertyID) {
	idBytes, _ := EncodeVariableByteInteger(uint32(id))
	buf.Write(idBytes)
}

func writeByteProp(buf *bytes.Buffer, id PropertyID, v byte) {
	propID(buf, id)
	buf.WriteByte(v)
}

func writeBoolProp(buf *bytes.Buffer, id PropertyID, v bool) {
	if v {
		writeByteProp(buf, id, 1)
	} else {
		writeByteProp(buf, id, 0)
	}
}

func writeU16Prop(buf *bytes.Buffer, id PropertyID, v uint16) {
	propID(buf, id)
	buf.Write([]byte{byte(v >> 8), byte(v)})
}

func writeU32Prop(buf *bytes.Buffer, id PropertyID, v uint32) {
	propID(buf, id)
	buf.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func writeVarIntProp(buf *bytes.Buffer, id PropertyID, v uint32) error {
	propID(buf, id)
	enc, err := EncodeVariableByteInteger(v)
	if err != nil {
		return NewPacketTooLargeError(err, id.String())
	}
	buf.Write(enc)
	return nil
}

func writeStringProp(buf *bytes.Buffer, id PropertyID, s string) error {
	propID(buf, id)
	return writeUTF8String(buf, s)
}

func writeBinaryProp(buf *bytes.Buffer, id PropertyID, data []byte) error {
	propID(buf, id)
	return writeBinaryData(buf, data)
}

func writePairProp(buf *bytes.Buffer, id PropertyID, up UserProperty) error {
	propID(buf, id)
	return writeUTF8Pair(buf, up.Key, up.Value)
}

func writeUserProperties(buf *bytes.Buffer, ups []UserProperty) error {
	for _, up := range ups {
		if err := writePairProp(buf, PropertyUserProperty, up); err != nil {
			return err
		}
	}
	return nil
}

func encodeConnectProperties(p *ConnectProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.SessionExpiryInterval != nil {
		writeU32Prop(&buf, PropertySessionExpiryInterval, *p.SessionExpiryInterval)
	}
	if p.ReceiveMaximum != nil {
		writeU16Prop(&buf, PropertyReceiveMaximum, *p.ReceiveMaximum)
	}
	if p.MaximumPacketSize != nil {
		writeU32Prop(&buf, PropertyMaximumPacketSize, *p.MaximumPacketSize)
	}
	if p.TopicAliasMaximum != nil {
		writeU16Prop(&buf, PropertyTopicAliasMaximum, *p.TopicAliasMaximum)
	}
	if p.RequestResponseInformation != nil {
		writeBoolProp(&buf, PropertyRequestResponseInformation, *p.RequestResponseInformation)
	}
	if p.RequestProblemInformation != nil {
		writeBoolProp(&buf, PropertyRequestProblemInformation, *p.RequestProblemInformation)
	}
	if p.AuthenticationMethod != nil {
		if err := writeStringProp(&buf, PropertyAuthenticationMethod, *p.AuthenticationMethod); err != nil {
			return nil, err
		}
	}
	if p.AuthenticationData != nil {
		if err := writeBinaryProp(&buf, PropertyAuthenticationData, p.AuthenticationData); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWillProperties(p *WillProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.WillDelayInterval != nil {
		writeU32Prop(&buf, PropertyWillDelayInterval, *p.WillDelayInterval)
	}
	if p.PayloadFormatIndicator != nil {
		writeByteProp(&buf, PropertyPayloadFormatIndicator, byte(*p.PayloadFormatIndicator))
	}
	if p.MessageExpiryInterval != nil {
		writeU32Prop(&buf, PropertyMessageExpiryInterval, *p.MessageExpiryInterval)
	}
	if p.ContentType != nil {
		if err := writeStringProp(&buf, PropertyContentType, *p.ContentType); err != nil {
			return nil, err
		}
	}
	if p.ResponseTopic != nil {
		if err := writeStringProp(&buf, PropertyResponseTopic, p.ResponseTopic.String()); err != nil {
			return nil, err
		}
	}
	if p.CorrelationData != nil {
		if err := writeBinaryProp(&buf, PropertyCorrelationData, p.CorrelationData); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeConnAckProperties(p *ConnAckProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.SessionExpiryInterval != nil {
		writeU32Prop(&buf, PropertySessionExpiryInterval, *p.SessionExpiryInterval)
	}
	if p.ReceiveMaximum != nil {
		writeU16Prop(&buf, PropertyReceiveMaximum, *p.ReceiveMaximum)
	}
	if p.MaximumQoS != nil {
		writeByteProp(&buf, PropertyMaximumQoS, byte(*p.MaximumQoS))
	}
	if p.RetainAvailable != nil {
		writeBoolProp(&buf, PropertyRetainAvailable, *p.RetainAvailable)
	}
	if p.MaximumPacketSize != nil {
		writeU32Prop(&buf, PropertyMaximumPacketSize, *p.MaximumPacketSize)
	}
	if p.AssignedClientIdentifier != nil {
		if err := writeStringProp(&buf, PropertyAssignedClientIdentifier, *p.AssignedClientIdentifier); err != nil {
			return nil, err
		}
	}
	if p.TopicAliasMaximum != nil {
		writeU16Prop(&buf, PropertyTopicAliasMaximum, *p.TopicAliasMaximum)
	}
	if p.ReasonString != nil {
		if err := writeStringProp(&buf, PropertyReasonString, *p.ReasonString); err != nil {
			return nil, err
		}
	}
	if p.WildcardSubscriptionAvailable != nil {
		writeBoolProp(&buf, PropertyWildcardSubscriptionAvailable, *p.WildcardSubscriptionAvailable)
	}
	if p.SubscriptionIdentifiersAvailable != nil {
		writeBoolProp(&buf, PropertySubscriptionIdentifiersAvail, *p.SubscriptionIdentifiersAvailable)
	}
	if p.SharedSubscriptionAvailable != nil {
		writeBoolProp(&buf, PropertySharedSubscriptionAvailable, *p.SharedSubscriptionAvailable)
	}
	if p.ServerKeepAlive != nil {
		writeU16Prop(&buf, PropertyServerKeepAlive, *p.ServerKeepAlive)
	}
	if p.ResponseInformation != nil {
		if err := writeStringProp(&buf, PropertyResponseInformation, *p.ResponseInformation); err != nil {
			return nil, err
		}
	}
	if p.ServerReference != nil {
		if err := writeStringProp(&buf, PropertyServerReference, *p.ServerReference); err != nil {
			return nil, err
		}
	}
	if p.AuthenticationMethod != nil {
		if err := writeStringProp(&buf, PropertyAuthenticationMethod, *p.AuthenticationMethod); err != nil {
			return nil, err
		}
	}
	if p.AuthenticationData != nil {
		if err := writeBinaryProp(&buf, PropertyAuthenticationData, p.AuthenticationData); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePublishProperties(p *PublishProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.PayloadFormatIndicator != nil {
		writeByteProp(&buf, PropertyPayloadFormatIndicator, byte(*p.PayloadFormatIndicator))
	}
	if p.MessageExpiryInterval != nil {
		writeU32Prop(&buf, PropertyMessageExpiryInterval, *p.MessageExpiryInterval)
	}
	if p.TopicAlias != nil {
		writeU16Prop(&buf, PropertyTopicAlias, *p.TopicAlias)
	}
	if p.ResponseTopic != nil {
		if err := writeStringProp(&buf, PropertyResponseTopic, p.ResponseTopic.String()); err != nil {
			return nil, err
		}
	}
	if p.CorrelationData != nil {
		if err := writeBinaryProp(&buf, PropertyCorrelationData, p.CorrelationData); err != nil {
			return nil, err
		}
	}
	for _, id := range p.SubscriptionIdentifiers {
		if err := writeVarIntProp(&buf, PropertySubscriptionIdentifier, id); err != nil {
			return nil, err
		}
	}
	if p.ContentType != nil {
		if err := writeStringProp(&buf, PropertyContentType, *p.ContentType); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeAckProperties(p *AckProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.ReasonString != nil {
		if err := writeStringProp(&buf, PropertyReasonString, *p.ReasonString); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *AckProperties) isEmpty() bool {
	return p.ReasonString == nil && len(p.UserProperties) == 0
}

func encodeSubscribeProperties(p *SubscribeProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.SubscriptionIdentifier != nil {
		if err := writeVarIntProp(&buf, PropertySubscriptionIdentifier, *p.SubscriptionIdentifier); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeReasonProperties(p *ReasonProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.ReasonString != nil {
		if err := writeStringProp(&buf, PropertyReasonString, *p.ReasonString); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeUnsubscribeProperties(p *UnsubscribeProperties) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeDisconnectProperties(p *DisconnectProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.SessionExpiryInterval != nil {
		writeU32Prop(&buf, PropertySessionExpiryInterval, *p.SessionExpiryInterval)
	}
	if p.ReasonString != nil {
		if err := writeStringProp(&buf, PropertyReasonString, *p.ReasonString); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	if p.ServerReference != nil {
		if err := writeStringProp(&buf, PropertyServerReference, *p.ServerReference); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (p *DisconnectProperties) isEmpty() bool {
	return p.SessionExpiryInterval == nil && p.ReasonString == nil &&
		len(p.UserProperties) == 0 && p.ServerReference == nil
}

func encodeAuthProperties(p *AuthProperties) ([]byte, error) {
	var buf bytes.Buffer
	if p.ReasonString != nil {
		if err := writeStringProp(&buf, PropertyReasonString, *p.ReasonString); err != nil {
			return nil, err
		}
	}
	if p.AuthenticationMethod != nil {
		if err := writeStringProp(&buf, PropertyAuthenticationMethod, *p.AuthenticationMethod); err != nil {
			return nil, err
		}
	}
	if p.AuthenticationData != nil {
		if err := writeBinaryProp(&buf, PropertyAuthenticationData, p.AuthenticationData); err != nil {
			return nil, err
		}
	}
	if err := writeUserProperties(&buf, p.UserProperties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *AuthProperties) isEmpty() bool {
	return p.ReasonString == nil && p.AuthenticationMethod == nil &&
		p.AuthenticationData == nil && len(p.UserProperties) == 0
}
