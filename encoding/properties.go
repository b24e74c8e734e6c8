package encoding

// PropertyID is the Variable Byte Integer wire identifier of an MQTT 5.0
// property. Identifier 0 is unused; every other gap in the numbering is a
// reserved/unassigned value and is rejected by parseProperty.
type PropertyID uint32

const (
	PropertyPayloadFormatIndicator         PropertyID = 0x01
	PropertyMessageExpiryInterval          PropertyID = 0x02
	PropertyContentType                    PropertyID = 0x03
	PropertyResponseTopic                  PropertyID = 0x08
	PropertyCorrelationData                PropertyID = 0x09
	PropertySubscriptionIdentifier         PropertyID = 0x0B
	PropertySessionExpiryInterval          PropertyID = 0x11
	PropertyAssignedClientIdentifier       PropertyID = 0x12
	PropertyServerKeepAlive                PropertyID = 0x13
	PropertyAuthenticationMethod           PropertyID = 0x15
	PropertyAuthenticationData             PropertyID = 0x16
	PropertyRequestProblemInformation      PropertyID = 0x17
	PropertyWillDelayInterval              PropertyID = 0x18
	PropertyRequestResponseInformation     PropertyID = 0x19
	PropertyResponseInformation            PropertyID = 0x1A
	PropertyServerReference                PropertyID = 0x1C
	PropertyReasonString                   PropertyID = 0x1F
	PropertyReceiveMaximum                 PropertyID = 0x21
	PropertyTopicAliasMaximum              PropertyID = 0x22
	PropertyTopicAlias                     PropertyID = 0x23
	PropertyMaximumQoS                     PropertyID = 0x24
	PropertyRetainAvailable                PropertyID = 0x25
	PropertyUserProperty                   PropertyID = 0x26
	PropertyMaximumPacketSize              PropertyID = 0x27
	PropertyWildcardSubscriptionAvailable  PropertyID = 0x28
	PropertySubscriptionIdentifiersAvail   PropertyID = 0x29
	PropertySharedSubscriptionAvailable    PropertyID = 0x2A
)

func (id PropertyID) String() string {
	switch id {
	case PropertyPayloadFormatIndicator:
		return "PayloadFormatIndicator"
	case PropertyMessageExpiryInterval:
		return "MessageExpiryInterval"
	case PropertyContentType:
		return "ContentType"
	case PropertyResponseTopic:
		return "ResponseTopic"
	case PropertyCorrelationData:
		return "CorrelationData"
	case PropertySubscriptionIdentifier:
		return "SubscriptionIdentifier"
	case PropertySessionExpiryInterval:
		return "SessionExpiryInterval"
	case PropertyAssignedClientIdentifier:
		return "AssignedClientIdentifier"
	case PropertyServerKeepAlive:
		return "ServerKeepAlive"
	case PropertyAuthenticationMethod:
		return "AuthenticationMethod"
	case PropertyAuthenticationData:
		return "AuthenticationData"
	case PropertyRequestProblemInformation:
		return "RequestProblemInformation"
	case PropertyWillDelayInterval:
		return "WillDelayInterval"
	case PropertyRequestResponseInformation:
		return "RequestResponseInformation"
	case PropertyResponseInformation:
		return "ResponseInformation"
	case PropertyServerReference:
		return "ServerReference"
	case PropertyReasonString:
		return "ReasonString"
	case PropertyReceiveMaximum:
		return "ReceiveMaximum"
	case PropertyTopicAliasMaximum:
		return "TopicAliasMaximum"
	case PropertyTopicAlias:
		return "TopicAlias"
	case PropertyMaximumQoS:
		return "MaximumQoS"
	case PropertyRetainAvailable:
		return "RetainAvailable"
	case PropertyUserProperty:
		return "UserProperty"
	case PropertyMaximumPacketSize:
		return "MaximumPacketSize"
	case PropertyWildcardSubscriptionAvailable:
		return "WildcardSubscriptionAvailable"
	case PropertySubscriptionIdentifiersAvail:
		return "SubscriptionIdentifiersAvailable"
	case PropertySharedSubscriptionAvailable:
		return "SharedSubscriptionAvailable"
	default:
		return "Unknown"
	}
}

// propertyKind is the wire value-shape a PropertyID decodes as.
type propertyKind int

const (
	kindByte propertyKind = iota
	kindTwoByteInt
	kindFourByteInt
	kindVarInt
	kindUTF8String
	kindUTF8Pair
	kindBinaryData
)

var propertyKinds = map[PropertyID]propertyKind{
	PropertyPayloadFormatIndicator:        kindByte,
	PropertyMessageExpiryInterval:         kindFourByteInt,
	PropertyContentType:                   kindUTF8String,
	PropertyResponseTopic:                 kindUTF8String,
	PropertyCorrelationData:               kindBinaryData,
	PropertySubscriptionIdentifier:        kindVarInt,
	PropertySessionExpiryInterval:         kindFourByteInt,
	PropertyAssignedClientIdentifier:      kindUTF8String,
	PropertyServerKeepAlive:               kindTwoByteInt,
	PropertyAuthenticationMethod:          kindUTF8String,
	PropertyAuthenticationData:            kindBinaryData,
	PropertyRequestProblemInformation:     kindByte,
	PropertyWillDelayInterval:             kindFourByteInt,
	PropertyRequestResponseInformation:    kindByte,
	PropertyResponseInformation:           kindUTF8String,
	PropertyServerReference:               kindUTF8String,
	PropertyReasonString:                  kindUTF8String,
	PropertyReceiveMaximum:                kindTwoByteInt,
	PropertyTopicAliasMaximum:             kindTwoByteInt,
	PropertyTopicAlias:                    kindTwoByteInt,
	PropertyMaximumQoS:                    kindByte,
	PropertyRetainAvailable:               kindByte,
	PropertyUserProperty:                  kindUTF8Pair,
	PropertyMaximumPacketSize:             kindFourByteInt,
	PropertyWildcardSubscriptionAvailable: kindByte,
	PropertySubscriptionIdentifiersAvail:  kindByte,
	PropertySharedSubscriptionAvailable:   kindByte,
}

// UserProperty is one (name, value) pair of an MQTT User Property.
type UserProperty struct {
	Key   string
	Value string
}

// Property is a decoded property: ID plus its wire-kind-appropriate Go
// value. Value holds one of: byte, uint16, uint32, string, []byte,
// UserProperty — exactly the Go types the kind table above selects.
type Property struct {
	ID    PropertyID
	Value interface{}
}

// parseProperty reads one [VBI identifier][value] pair from the front of
// data. Returns the property, the number of bytes consumed, and any error.
func parseProperty(data []byte, settings Settings) (Property, int, error) {
	id, n, err := DecodeVariableByteIntegerFromBytes(data)
	if err != nil {
		return Property{}, 0, NewMalformedPacketError(err, "property identifier")
	}
	kind, ok := propertyKinds[PropertyID(id)]
	if !ok {
		return Property{}, n, NewMalformedPacketError(ErrUnknownPropertyID, "property identifier")
	}

	rest := data[n:]
	var value interface{}
	var consumed int

	switch kind {
	case kindByte:
		if len(rest) < 1 {
			return Property{}, n, NewMalformedPacketError(ErrUnexpectedEOF, "property value")
		}
		value = rest[0]
		consumed = 1
	case kindTwoByteInt:
		v, c, err := readUint16(rest)
		if err != nil {
			return Property{}, n, err
		}
		value, consumed = v, c
	case kindFourByteInt:
		v, c, err := readUint32(rest)
		if err != nil {
			return Property{}, n, err
		}
		value, consumed = v, c
	case kindVarInt:
		v, c, err := DecodeVariableByteIntegerFromBytes(rest)
		if err != nil {
			return Property{}, n, NewMalformedPacketError(err, "property value")
		}
		if v == 0 {
			return Property{}, n, NewProtocolError(ErrZeroValueProperty, "SubscriptionIdentifier")
		}
		value, consumed = v, c
	case kindUTF8String:
		v, c, err := readUTF8String(rest, settings.MaxBytesString)
		if err != nil {
			return Property{}, n, err
		}
		value, consumed = v, c
	case kindUTF8Pair:
		k, v, c, err := readUTF8Pair(rest, settings.MaxBytesString)
		if err != nil {
			return Property{}, n, err
		}
		value, consumed = UserProperty{Key: k, Value: v}, c
	case kindBinaryData:
		v, c, err := readBinaryData(rest, settings.MaxBytesBinaryData)
		if err != nil {
			return Property{}, n, err
		}
		value, consumed = v, c
	}

	return Property{ID: PropertyID(id), Value: value}, n + consumed, nil
}

// parsePropertiesRegion reads the VBI property-length prefix, then folds
// every property in that region through apply. apply enforces containment,
// cardinality, and cross-property rules for the packet type in question.
func parsePropertiesRegion(data []byte, settings Settings, apply func(Property) error) (int, error) {
	length, n, err := DecodeVariableByteIntegerFromBytes(data)
	if err != nil {
		return 0, NewMalformedPacketError(err, "properties length")
	}
	if uint64(n)+uint64(length) > uint64(len(data)) {
		return 0, NewMalformedPacketError(ErrUnexpectedEOF, "properties region")
	}
	region := data[n : n+int(length)]

	offset := 0
	for offset < len(region) {
		prop, consumed, err := parseProperty(region[offset:], settings)
		if err != nil {
			return 0, err
		}
		if err := apply(prop); err != nil {
			return 0, err
		}
		offset += consumed
	}

	return n + int(length), nil
}
