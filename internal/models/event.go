package models

import "encoding/json"

// ChallengePayload is Slack's url_verification handshake, sent once
// when the events endpoint is registered. The challenge string must be
// echoed back verbatim.
type ChallengePayload struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
}

// MessageEvent is the inner message object of an event_callback
// envelope.
type MessageEvent struct {
	ClientMsgID string `json:"client_msg_id"`
	Type        string `json:"type"`
	Text        string `json:"text"`
	User        string `json:"user"`
	TS          string `json:"ts"`
	Team        string `json:"team"`
	Channel     string `json:"channel"`
	EventTS     string `json:"event_ts"`
}

// EventEnvelope is an event_callback delivery. EventID is the
// delivery identifier used for duplicate suppression.
type EventEnvelope struct {
	Token              string          `json:"token"`
	TeamID             string          `json:"team_id"`
	APIAppID           string          `json:"api_app_id"`
	Event              MessageEvent    `json:"event"`
	Type               string          `json:"type"`
	EventID            string          `json:"event_id"`
	EventTime          int64           `json:"event_time"`
	Authorizations     json.RawMessage `json:"authorizations,omitempty"`
	IsExtSharedChannel bool            `json:"is_ext_shared_channel"`
	EventContext       string          `json:"event_context"`
}

// InboundKind discriminates the payloads Slack posts to the events
// endpoint.
type InboundKind int

const (
	// KindUnknown covers any payload that is neither a challenge nor
	// an event callback. These are acknowledged and ignored.
	KindUnknown InboundKind = iota
	KindChallenge
	KindEvent
)

// Inbound is the decoded form of one request body: exactly one of
// Challenge or Event is set, per Kind.
type Inbound struct {
	Kind      InboundKind
	Challenge *ChallengePayload
	Event     *EventEnvelope
}

// DecodeInbound classifies and decodes a request body. Malformed JSON
// and unrecognized shapes both come back as KindUnknown — the endpoint
// accepts everything and only acts on what it recognizes.
func DecodeInbound(body []byte) Inbound {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return Inbound{Kind: KindUnknown}
	}

	switch probe.Type {
	case "url_verification":
		var ch ChallengePayload
		if err := json.Unmarshal(body, &ch); err != nil || ch.Challenge == "" {
			return Inbound{Kind: KindUnknown}
		}
		return Inbound{Kind: KindChallenge, Challenge: &ch}

	case "event_callback":
		var env EventEnvelope
		if err := json.Unmarshal(body, &env); err != nil || env.Event.Type == "" {
			return Inbound{Kind: KindUnknown}
		}
		return Inbound{Kind: KindEvent, Event: &env}

	default:
		return Inbound{Kind: KindUnknown}
	}
}
