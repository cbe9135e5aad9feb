package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrInvalidEvent is the root of every event contract violation.
var ErrInvalidEvent = errors.New("invalid event")

// EventError names the event type and field that broke the contract.
type EventError struct {
	Type   EventType
	Field  string
	Reason string
}

func (e *EventError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid event %q: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("invalid event %q: field %q %s", e.Type, e.Field, e.Reason)
}

func (e *EventError) Unwrap() error { return ErrInvalidEvent }

type EventType string

const (
	EventHubViewed              EventType = "hub.viewed"
	EventProposalViewed         EventType = "proposal.viewed"
	EventProposalSlideTime      EventType = "proposal.slide_time"
	EventVideoWatched           EventType = "video.watched"
	EventVideoCompleted         EventType = "video.completed"
	EventDocumentViewed         EventType = "document.viewed"
	EventDocumentDownloaded     EventType = "document.downloaded"
	EventMeetingJoined          EventType = "meeting.joined"
	EventMessageSent            EventType = "message.sent"
	EventMessageRead            EventType = "message.read"
	EventQuestionnaireStarted   EventType = "questionnaire.started"
	EventQuestionnaireCompleted EventType = "questionnaire.completed"
	EventShareSent              EventType = "share.sent"
	EventShareAccepted          EventType = "share.accepted"
)

// Event is the closed set of engagement event payloads. Only types in this
// package implement it.
type Event interface {
	Type() EventType
	Validate() error
	event()
}

type HubViewed struct {
	Section string `json:"section"`
}

type ProposalViewed struct {
	ProposalID string `json:"proposalId"`
	SlideNum   int    `json:"slideNum"`
}

type ProposalSlideTime struct {
	ProposalID string  `json:"proposalId"`
	SlideNum   int     `json:"slideNum"`
	Seconds    float64 `json:"seconds"`
}

type VideoWatched struct {
	VideoID         string  `json:"videoId"`
	WatchTime       float64 `json:"watchTime"`
	PercentComplete float64 `json:"percentComplete"`
}

type VideoCompleted struct {
	VideoID string `json:"videoId"`
}

type DocumentViewed struct {
	DocumentID string `json:"documentId"`
}

type DocumentDownloaded struct {
	DocumentID string `json:"documentId"`
}

type MeetingJoined struct {
	MeetingID string `json:"meetingId"`
}

type MessageSent struct {
	ThreadID string `json:"threadId"`
}

type MessageRead struct {
	ThreadID  string `json:"threadId"`
	MessageID string `json:"messageId"`
}

type QuestionnaireStarted struct {
	QuestionnaireID string `json:"questionnaireId"`
}

type QuestionnaireCompleted struct {
	QuestionnaireID string `json:"questionnaireId"`
}

// ResourceRef points at the thing that was shared.
type ResourceRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type ShareSent struct {
	RecipientEmail string      `json:"recipientEmail"`
	Resource       ResourceRef `json:"resource"`
}

type ShareAccepted struct {
	InviteID string `json:"inviteId"`
}

func (HubViewed) Type() EventType              { return EventHubViewed }
func (ProposalViewed) Type() EventType         { return EventProposalViewed }
func (ProposalSlideTime) Type() EventType      { return EventProposalSlideTime }
func (VideoWatched) Type() EventType           { return EventVideoWatched }
func (VideoCompleted) Type() EventType         { return EventVideoCompleted }
func (DocumentViewed) Type() EventType         { return EventDocumentViewed }
func (DocumentDownloaded) Type() EventType     { return EventDocumentDownloaded }
func (MeetingJoined) Type() EventType          { return EventMeetingJoined }
func (MessageSent) Type() EventType            { return EventMessageSent }
func (MessageRead) Type() EventType            { return EventMessageRead }
func (QuestionnaireStarted) Type() EventType   { return EventQuestionnaireStarted }
func (QuestionnaireCompleted) Type() EventType { return EventQuestionnaireCompleted }
func (ShareSent) Type() EventType              { return EventShareSent }
func (ShareAccepted) Type() EventType          { return EventShareAccepted }

func (HubViewed) event()              {}
func (ProposalViewed) event()         {}
func (ProposalSlideTime) event()      {}
func (VideoWatched) event()           {}
func (VideoCompleted) event()         {}
func (DocumentViewed) event()         {}
func (DocumentDownloaded) event()     {}
func (MeetingJoined) event()          {}
func (MessageSent) event()            {}
func (MessageRead) event()            {}
func (QuestionnaireStarted) event()   {}
func (QuestionnaireCompleted) event() {}
func (ShareSent) event()              {}
func (ShareAccepted) event()          {}

func (e HubViewed) Validate() error {
	return requireText(e.Type(), "section", e.Section)
}

func (e ProposalViewed) Validate() error {
	return errors.Join(
		requireText(e.Type(), "proposalId", e.ProposalID),
		requireSlide(e.Type(), e.SlideNum),
	)
}

func (e ProposalSlideTime) Validate() error {
	return errors.Join(
		requireText(e.Type(), "proposalId", e.ProposalID),
		requireSlide(e.Type(), e.SlideNum),
		requireRange(e.Type(), "seconds", e.Seconds, 0, -1),
	)
}

func (e VideoWatched) Validate() error {
	return errors.Join(
		requireText(e.Type(), "videoId", e.VideoID),
		requireRange(e.Type(), "watchTime", e.WatchTime, 0, -1),
		requireRange(e.Type(), "percentComplete", e.PercentComplete, 0, 100),
	)
}

func (e VideoCompleted) Validate() error {
	return requireText(e.Type(), "videoId", e.VideoID)
}

func (e DocumentViewed) Validate() error {
	return requireText(e.Type(), "documentId", e.DocumentID)
}

func (e DocumentDownloaded) Validate() error {
	return requireText(e.Type(), "documentId", e.DocumentID)
}

func (e MeetingJoined) Validate() error {
	return requireText(e.Type(), "meetingId", e.MeetingID)
}

func (e MessageSent) Validate() error {
	return requireText(e.Type(), "threadId", e.ThreadID)
}

func (e MessageRead) Validate() error {
	return errors.Join(
		requireText(e.Type(), "threadId", e.ThreadID),
		requireText(e.Type(), "messageId", e.MessageID),
	)
}

func (e QuestionnaireStarted) Validate() error {
	return requireText(e.Type(), "questionnaireId", e.QuestionnaireID)
}

func (e QuestionnaireCompleted) Validate() error {
	return requireText(e.Type(), "questionnaireId", e.QuestionnaireID)
}

func (e ShareSent) Validate() error {
	err := errors.Join(
		requireText(e.Type(), "resource.type", e.Resource.Type),
		requireText(e.Type(), "resource.id", e.Resource.ID),
	)
	if _, emailErr := NormalizeEmail(e.RecipientEmail); emailErr != nil {
		err = errors.Join(&EventError{Type: e.Type(), Field: "recipientEmail", Reason: "must be an email address"}, err)
	}
	return err
}

func (e ShareAccepted) Validate() error {
	return requireText(e.Type(), "inviteId", e.InviteID)
}

func requireText(t EventType, field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &EventError{Type: t, Field: field, Reason: "must not be empty"}
	}
	return nil
}

func requireSlide(t EventType, n int) error {
	if n < 1 {
		return &EventError{Type: t, Field: "slideNum", Reason: "must be at least 1"}
	}
	return nil
}

// requireRange checks lo <= v <= hi; a negative hi means unbounded.
func requireRange(t EventType, field string, v, lo, hi float64) error {
	if v < lo || (hi >= 0 && v > hi) {
		if hi < 0 {
			return &EventError{Type: t, Field: field, Reason: fmt.Sprintf("must be at least %g", lo)}
		}
		return &EventError{Type: t, Field: field, Reason: fmt.Sprintf("must be between %g and %g", lo, hi)}
	}
	return nil
}

type eventCodec struct {
	required []string
	decode   func(dec *json.Decoder) (Event, error)
}

func codecFor[T Event](required ...string) eventCodec {
	return eventCodec{
		required: required,
		decode: func(dec *json.Decoder) (Event, error) {
			var e T
			if err := dec.Decode(&e); err != nil {
				return nil, err
			}
			return e, nil
		},
	}
}

var codecs = map[EventType]eventCodec{
	EventHubViewed:              codecFor[HubViewed]("section"),
	EventProposalViewed:         codecFor[ProposalViewed]("proposalId", "slideNum"),
	EventProposalSlideTime:      codecFor[ProposalSlideTime]("proposalId", "slideNum", "seconds"),
	EventVideoWatched:           codecFor[VideoWatched]("videoId", "watchTime", "percentComplete"),
	EventVideoCompleted:         codecFor[VideoCompleted]("videoId"),
	EventDocumentViewed:         codecFor[DocumentViewed]("documentId"),
	EventDocumentDownloaded:     codecFor[DocumentDownloaded]("documentId"),
	EventMeetingJoined:          codecFor[MeetingJoined]("meetingId"),
	EventMessageSent:            codecFor[MessageSent]("threadId"),
	EventMessageRead:            codecFor[MessageRead]("threadId", "messageId"),
	EventQuestionnaireStarted:   codecFor[QuestionnaireStarted]("questionnaireId"),
	EventQuestionnaireCompleted: codecFor[QuestionnaireCompleted]("questionnaireId"),
	EventShareSent:              codecFor[ShareSent]("recipientEmail", "resource"),
	EventShareAccepted:          codecFor[ShareAccepted]("inviteId"),
}

// EventTypes returns every known event type in sorted order.
func EventTypes() []EventType {
	out := make([]EventType, 0, len(codecs))
	for t := range codecs {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func ParseEventType(s string) (EventType, error) {
	t := EventType(s)
	if _, ok := codecs[t]; !ok {
		return "", &EventError{Type: t, Reason: "unknown event type"}
	}
	return t, nil
}

// DecodeEvent turns untrusted JSON metadata into a validated Event. It
// rejects unknown event types, unknown or null fields, missing required
// fields and out of range values.
func DecodeEvent(eventType string, metadata []byte) (Event, error) {
	t, err := ParseEventType(eventType)
	if err != nil {
		return nil, err
	}
	codec := codecs[t]

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(metadata, &fields); err != nil || fields == nil {
		return nil, &EventError{Type: t, Reason: "metadata must be a JSON object"}
	}
	for _, name := range codec.required {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			return nil, &EventError{Type: t, Field: name, Reason: "is required"}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(metadata))
	dec.DisallowUnknownFields()
	ev, err := codec.decode(dec)
	if err != nil {
		return nil, &EventError{Type: t, Reason: err.Error()}
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return ev, nil
}

// ActivityEvent is one persisted engagement event. Seq is the store's
// insertion sequence and breaks timestamp ties.
type ActivityEvent struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	EventType EventType `json:"eventType"`
	HubID     string    `json:"hubId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  Event     `json:"metadata"`
}

// UnmarshalJSON restores Metadata through DecodeEvent.
func (a *ActivityEvent) UnmarshalJSON(b []byte) error {
	type plain ActivityEvent
	var aux struct {
		plain
		Metadata json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	ev, err := DecodeEvent(string(aux.EventType), aux.Metadata)
	if err != nil {
		return err
	}
	*a = ActivityEvent(aux.plain)
	a.Metadata = ev
	return nil
}

// ServerEmitted reports whether events of type t are only ever recorded by
// the portal itself. Share events come from the invitation flow and are
// never accepted from clients.
func (t EventType) ServerEmitted() bool {
	return t == EventShareSent || t == EventShareAccepted
}

// ReportPermission returns the permission guarding the section ev happened
// in. A hub.viewed event naming an unknown section is an EventError.
func ReportPermission(ev Event) (Permission, error) {
	switch e := ev.(type) {
	case HubViewed:
		perm, ok := SectionPermission(e.Section)
		if !ok {
			return PermissionNone, &EventError{Type: e.Type(), Field: "section", Reason: "is not a portal section"}
		}
		return perm, nil
	case ProposalViewed, ProposalSlideTime:
		return PermissionViewProposal, nil
	case VideoWatched, VideoCompleted:
		return PermissionViewVideos, nil
	case DocumentViewed, DocumentDownloaded:
		return PermissionViewDocuments, nil
	case MeetingJoined:
		return PermissionViewMeetings, nil
	case MessageSent, MessageRead:
		return PermissionViewMessages, nil
	case QuestionnaireStarted, QuestionnaireCompleted:
		return PermissionViewQuestionnaire, nil
	default:
		return PermissionNone, nil
	}
}
