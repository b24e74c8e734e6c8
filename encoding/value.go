package encoding

import "strings"

// ReasonCode is the single numeric space MQTT 5.0 uses for acknowledgement
// status across every packet type that carries one. Not every value is
// valid in every packet; the per-packet ProjectXxxReasonCode functions
// reject codes outside that packet's own subset, following design-notes
// option (b): one universal enum plus per-packet decode functions.
type ReasonCode uint8

const (
	ReasonSuccess                           ReasonCode = 0x00
	ReasonNormalDisconnection               ReasonCode = 0x00
	ReasonGrantedQoS0                       ReasonCode = 0x00
	ReasonGrantedQoS1                       ReasonCode = 0x01
	ReasonGrantedQoS2                       ReasonCode = 0x02
	ReasonDisconnectWithWillMessage         ReasonCode = 0x04
	ReasonNoMatchingSubscribers             ReasonCode = 0x10
	ReasonNoSubscriptionExisted             ReasonCode = 0x11
	ReasonContinueAuthentication            ReasonCode = 0x18
	ReasonReAuthenticate                    ReasonCode = 0x19
	ReasonUnspecifiedError                  ReasonCode = 0x80
	ReasonMalformedPacket                   ReasonCode = 0x81
	ReasonProtocolError                     ReasonCode = 0x82
	ReasonImplementationSpecificError       ReasonCode = 0x83
	ReasonUnsupportedProtocolVersion        ReasonCode = 0x84
	ReasonClientIdentifierNotValid          ReasonCode = 0x85
	ReasonBadUserNameOrPassword             ReasonCode = 0x86
	ReasonNotAuthorized                     ReasonCode = 0x87
	ReasonServerUnavailable                 ReasonCode = 0x88
	ReasonServerBusy                        ReasonCode = 0x89
	ReasonBanned                            ReasonCode = 0x8A
	ReasonServerShuttingDown                ReasonCode = 0x8B
	ReasonBadAuthenticationMethod           ReasonCode = 0x8C
	ReasonKeepAliveTimeout                  ReasonCode = 0x8D
	ReasonSessionTakenOver                  ReasonCode = 0x8E
	ReasonTopicFilterInvalid                ReasonCode = 0x8F
	ReasonTopicNameInvalid                  ReasonCode = 0x90
	ReasonPacketIdentifierInUse             ReasonCode = 0x91
	ReasonPacketIdentifierNotFound          ReasonCode = 0x92
	ReasonReceiveMaximumExceeded            ReasonCode = 0x93
	ReasonTopicAliasInvalid                 ReasonCode = 0x94
	ReasonPacketTooLarge                    ReasonCode = 0x95
	ReasonMessageRateTooHigh                ReasonCode = 0x96
	ReasonQuotaExceeded                     ReasonCode = 0x97
	ReasonAdministrativeAction              ReasonCode = 0x98
	ReasonPayloadFormatInvalid              ReasonCode = 0x99
	ReasonRetainNotSupported                ReasonCode = 0x9A
	ReasonQoSNotSupported                   ReasonCode = 0x9B
	ReasonUseAnotherServer                  ReasonCode = 0x9C
	ReasonServerMoved                       ReasonCode = 0x9D
	ReasonSharedSubscriptionsNotSupported   ReasonCode = 0x9E
	ReasonConnectionRateExceeded            ReasonCode = 0x9F
	ReasonMaximumConnectTime                ReasonCode = 0xA0
	ReasonSubscriptionIdentifiersNotSupport ReasonCode = 0xA1
	ReasonWildcardSubscriptionsNotSupported ReasonCode = 0xA2
)

func (r ReasonCode) String() string {
	switch r {
	case ReasonSuccess:
		return "Success"
	case ReasonGrantedQoS1:
		return "GrantedQoS1"
	case ReasonGrantedQoS2:
		return "GrantedQoS2"
	case ReasonDisconnectWithWillMessage:
		return "DisconnectWithWillMessage"
	case ReasonNoMatchingSubscribers:
		return "NoMatchingSubscribers"
	case ReasonNoSubscriptionExisted:
		return "NoSubscriptionExisted"
	case ReasonContinueAuthentication:
		return "ContinueAuthentication"
	case ReasonReAuthenticate:
		return "ReAuthenticate"
	case ReasonUnspecifiedError:
		return "UnspecifiedError"
	case ReasonMalformedPacket:
		return "MalformedPacket"
	case ReasonProtocolError:
		return "ProtocolError"
	case ReasonImplementationSpecificError:
		return "ImplementationSpecificError"
	case ReasonUnsupportedProtocolVersion:
		return "UnsupportedProtocolVersion"
	case ReasonClientIdentifierNotValid:
		return "ClientIdentifierNotValid"
	case ReasonBadUserNameOrPassword:
		return "BadUserNameOrPassword"
	case ReasonNotAuthorized:
		return "NotAuthorized"
	case ReasonServerUnavailable:
		return "ServerUnavailable"
	case ReasonServerBusy:
		return "ServerBusy"
	case ReasonBanned:
		return "Banned"
	case ReasonServerShuttingDown:
		return "ServerShuttingDown"
	case ReasonBadAuthenticationMethod:
		return "BadAuthenticationMethod"
	case ReasonKeepAliveTimeout:
		return "KeepAliveTimeout"
	case ReasonSessionTakenOver:
		return "SessionTakenOver"
	case ReasonTopicFilterInvalid:
		return "TopicFilterInvalid"
	case ReasonTopicNameInvalid:
		return "TopicNameInvalid"
	case ReasonPacketIdentifierInUse:
		return "PacketIdentifierInUse"
	case ReasonPacketIdentifierNotFound:
		return "PacketIdentifierNotFound"
	case ReasonReceiveMaximumExceeded:
		return "ReceiveMaximumExceeded"
	case ReasonTopicAliasInvalid:
		return "TopicAliasInvalid"
	case ReasonPacketTooLarge:
		return "PacketTooLarge"
	case ReasonMessageRateTooHigh:
		return "MessageRateTooHigh"
	case ReasonQuotaExceeded:
		return "QuotaExceeded"
	case ReasonAdministrativeAction:
		return "AdministrativeAction"
	case ReasonPayloadFormatInvalid:
		return "PayloadFormatInvalid"
	case ReasonRetainNotSupported:
		return "RetainNotSupported"
	case ReasonQoSNotSupported:
		return "QoSNotSupported"
	case ReasonUseAnotherServer:
		return "UseAnotherServer"
	case ReasonServerMoved:
		return "ServerMoved"
	case ReasonSharedSubscriptionsNotSupported:
		return "SharedSubscriptionsNotSupported"
	case ReasonConnectionRateExceeded:
		return "ConnectionRateExceeded"
	case ReasonMaximumConnectTime:
		return "MaximumConnectTime"
	case ReasonSubscriptionIdentifiersNotSupport:
		return "SubscriptionIdentifiersNotSupported"
	case ReasonWildcardSubscriptionsNotSupported:
		return "WildcardSubscriptionsNotSupported"
	default:
		return "Unknown"
	}
}

// projection validates r against a packet type's permitted reason-code set.
func projection(r ReasonCode, allowed map[ReasonCode]struct{}, packet string) (ReasonCode, error) {
	if _, ok := allowed[r]; !ok {
		return 0, NewMalformedPacketError(ErrInvalidReasonCode, packet)
	}
	return r, nil
}

var connAckReasons = setOf(
	ReasonSuccess, ReasonUnspecifiedError, ReasonMalformedPacket, ReasonProtocolError,
	ReasonImplementationSpecificError, ReasonUnsupportedProtocolVersion, ReasonClientIdentifierNotValid,
	ReasonBadUserNameOrPassword, ReasonNotAuthorized, ReasonServerUnavailable, ReasonServerBusy,
	ReasonBanned, ReasonBadAuthenticationMethod, ReasonTopicNameInvalid, ReasonPacketTooLarge,
	ReasonQuotaExceeded, ReasonPayloadFormatInvalid, ReasonRetainNotSupported, ReasonQoSNotSupported,
	ReasonUseAnotherServer, ReasonServerMoved, ReasonConnectionRateExceeded,
)

var pubAckPubRecReasons = setOf(
	ReasonSuccess, ReasonNoMatchingSubscribers, ReasonUnspecifiedError, ReasonImplementationSpecificError,
	ReasonNotAuthorized, ReasonTopicNameInvalid, ReasonPacketIdentifierInUse, ReasonQuotaExceeded,
	ReasonPayloadFormatInvalid,
)

var pubRelPubCompReasons = setOf(
	ReasonSuccess, ReasonPacketIdentifierNotFound,
)

var subAckReasons = setOf(
	ReasonGrantedQoS0, ReasonGrantedQoS1, ReasonGrantedQoS2, ReasonUnspecifiedError,
	ReasonImplementationSpecificError, ReasonNotAuthorized, ReasonTopicFilterInvalid,
	ReasonPacketIdentifierInUse, ReasonQuotaExceeded, ReasonSharedSubscriptionsNotSupported,
	ReasonSubscriptionIdentifiersNotSupport, ReasonWildcardSubscriptionsNotSupported,
)

var unsubAckReasons = setOf(
	ReasonSuccess, ReasonNoSubscriptionExisted, ReasonUnspecifiedError, ReasonImplementationSpecificError,
	ReasonNotAuthorized, ReasonTopicFilterInvalid, ReasonPacketIdentifierInUse,
)

var disconnectReasons = setOf(
	ReasonNormalDisconnection, ReasonDisconnectWithWillMessage, ReasonUnspecifiedError, ReasonMalformedPacket,
	ReasonProtocolError, ReasonImplementationSpecificError, ReasonNotAuthorized, ReasonServerBusy,
	ReasonServerShuttingDown, ReasonKeepAliveTimeout, ReasonSessionTakenOver, ReasonTopicFilterInvalid,
	ReasonTopicNameInvalid, ReasonReceiveMaximumExceeded, ReasonTopicAliasInvalid, ReasonPacketTooLarge,
	ReasonMessageRateTooHigh, ReasonQuotaExceeded, ReasonAdministrativeAction, ReasonPayloadFormatInvalid,
	ReasonRetainNotSupported, ReasonQoSNotSupported, ReasonUseAnotherServer, ReasonServerMoved,
	ReasonSharedSubscriptionsNotSupported, ReasonConnectionRateExceeded, ReasonMaximumConnectTime,
	ReasonSubscriptionIdentifiersNotSupport, ReasonWildcardSubscriptionsNotSupported,
)

var authReasons = setOf(
	ReasonSuccess, ReasonContinueAuthentication, ReasonReAuthenticate,
)

func setOf(codes ...ReasonCode) map[ReasonCode]struct{} {
	m := make(map[ReasonCode]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return m
}

func ProjectConnAckReasonCode(r ReasonCode) (ReasonCode, error) {
	return projection(r, connAckReasons, "CONNACK")
}

func ProjectPubAckPubRecReasonCode(r ReasonCode) (ReasonCode, error) {
	return projection(r, pubAckPubRecReasons, "PUBACK/PUBREC")
}

func ProjectPubRelPubCompReasonCode(r ReasonCode) (ReasonCode, error) {
	return projection(r, pubRelPubCompReasons, "PUBREL/PUBCOMP")
}

func ProjectSubAckReasonCode(r ReasonCode) (ReasonCode, error) {
	return projection(r, subAckReasons, "SUBACK")
}

func ProjectUnsubAckReasonCode(r ReasonCode) (ReasonCode, error) {
	return projection(r, unsubAckReasons, "UNSUBACK")
}

func ProjectDisconnectReasonCode(r ReasonCode) (ReasonCode, error) {
	return projection(r, disconnectReasons, "DISCONNECT")
}

func ProjectAuthReasonCode(r ReasonCode) (ReasonCode, error) {
	return projection(r, authReasons, "AUTH")
}

// QoS is the publish quality of service: 0 (at most once), 1 (at least
// once), 2 (exactly once).
type QoS uint8

const (
	QoS0 QoS = 0
	QoS1 QoS = 1
	QoS2 QoS = 2
)

func ParseQoS(b byte) (QoS, error) {
	switch b {
	case 0, 1, 2:
		return QoS(b), nil
	default:
		return 0, NewMalformedPacketError(ErrInvalidQoS, "QoS")
	}
}

// GuaranteedQoS is QoS restricted to {1, 2} — the subset valid for a
// Repeatable (acknowledged) PUBLISH.
type GuaranteedQoS uint8

const (
	GuaranteedQoS1 GuaranteedQoS = 1
	GuaranteedQoS2 GuaranteedQoS = 2
)

func NewGuaranteedQoS(q QoS) (GuaranteedQoS, error) {
	switch q {
	case QoS1:
		return GuaranteedQoS1, nil
	case QoS2:
		return GuaranteedQoS2, nil
	default:
		return 0, NewProtocolError(ErrInvalidQoS, "guaranteed QoS must be 1 or 2")
	}
}

func (g GuaranteedQoS) QoS() QoS { return QoS(g) }

// MaximumQoS is QoS restricted to {0, 1} — the CONNACK MaximumQoS property.
type MaximumQoS uint8

const (
	MaximumQoS0 MaximumQoS = 0
	MaximumQoS1 MaximumQoS = 1
)

func ParseMaximumQoS(b byte) (MaximumQoS, error) {
	switch b {
	case 0, 1:
		return MaximumQoS(b), nil
	default:
		return 0, NewProtocolError(ErrInvalidQoS, "MaximumQoS")
	}
}

// FormatIndicator describes the interpretation of a PUBLISH payload.
type FormatIndicator uint8

const (
	FormatUnspecified FormatIndicator = 0
	FormatUTF8        FormatIndicator = 1
)

func ParseFormatIndicator(b byte) (FormatIndicator, error) {
	switch b {
	case 0, 1:
		return FormatIndicator(b), nil
	default:
		return 0, NewMalformedPacketError(ErrInvalidFormatIndicator, "PayloadFormatIndicator")
	}
}

// RetainHandling controls whether the server sends retained messages when
// a subscription is established.
type RetainHandling uint8

const (
	SendRetained                         RetainHandling = 0
	SendRetainedIfSubscriptionDoesNotExist RetainHandling = 1
	DoNotSendRetained                    RetainHandling = 2
)

// Topic is a validated Publish Topic: a UTF-8 string containing neither
// '#' nor '+'. The zero value is not a valid Topic; use NewTopic.
type Topic struct {
	value string
}

func NewTopic(s string) (Topic, error) {
	if err := ValidateUTF8String([]byte(s)); err != nil {
		return Topic{}, NewMalformedPacketError(err, "topic")
	}
	if strings.ContainsAny(s, "#+") {
		return Topic{}, NewMalformedPacketError(ErrInvalidTopic, "topic")
	}
	return Topic{value: s}, nil
}

func (t Topic) String() string { return t.value }

// TopicFilter is a validated Topic Filter: wildcards are allowed, but '#'
// must be the last and sole character of its level, and '+' must be the
// sole character of its level.
type TopicFilter struct {
	value string
}

func NewTopicFilter(s string) (TopicFilter, error) {
	if s == "" {
		return TopicFilter{}, NewMalformedPacketError(ErrEmptyTopicFilter, "topic filter")
	}
	if err := ValidateUTF8String([]byte(s)); err != nil {
		return TopicFilter{}, NewMalformedPacketError(err, "topic filter")
	}
	levels := strings.Split(s, "/")
	for i, level := range levels {
		if strings.Contains(level, "#") && (level != "#" || i != len(levels)-1) {
			return TopicFilter{}, NewMalformedPacketError(ErrInvalidTopicFilter, "'#' must be the last, standalone level")
		}
		if strings.Contains(level, "+") && level != "+" {
			return TopicFilter{}, NewMalformedPacketError(ErrInvalidTopicFilter, "'+' must be a standalone level")
		}
	}
	return TopicFilter{value: s}, nil
}

func (f TopicFilter) String() string { return f.value }
