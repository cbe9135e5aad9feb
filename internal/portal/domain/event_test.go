package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventAcceptsEveryType(t *testing.T) {
	valid := map[domain.EventType]string{
		domain.EventHubViewed:              `{"section":"overview"}`,
		domain.EventProposalViewed:         `{"proposalId":"p1","slideNum":1}`,
		domain.EventProposalSlideTime:      `{"proposalId":"p1","slideNum":3,"seconds":12.5}`,
		domain.EventVideoWatched:           `{"videoId":"v1","watchTime":30,"percentComplete":50}`,
		domain.EventVideoCompleted:         `{"videoId":"v1"}`,
		domain.EventDocumentViewed:         `{"documentId":"d1"}`,
		domain.EventDocumentDownloaded:     `{"documentId":"d1"}`,
		domain.EventMeetingJoined:          `{"meetingId":"m1"}`,
		domain.EventMessageSent:            `{"threadId":"t1"}`,
		domain.EventMessageRead:            `{"threadId":"t1","messageId":"msg1"}`,
		domain.EventQuestionnaireStarted:   `{"questionnaireId":"q1"}`,
		domain.EventQuestionnaireCompleted: `{"questionnaireId":"q1"}`,
		domain.EventShareSent:              `{"recipientEmail":"jim@acme.com","resource":{"type":"hub","id":"h1"}}`,
		domain.EventShareAccepted:          `{"inviteId":"i1"}`,
	}

	require.Len(t, domain.EventTypes(), len(valid), "every event type needs a fixture")

	for typ, raw := range valid {
		t.Run(string(typ), func(t *testing.T) {
			ev, err := domain.DecodeEvent(string(typ), []byte(raw))
			require.NoError(t, err)
			require.Equal(t, typ, ev.Type())

			out, err := json.Marshal(ev)
			require.NoError(t, err)
			require.JSONEq(t, raw, string(out))
		})
	}
}

func TestDecodeEventRejections(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		metadata  string
		field     string
	}{
		{"unknown type", "hub.deleted", `{}`, ""},
		{"missing percentComplete", "video.watched", `{"videoId":"v1","watchTime":30}`, "percentComplete"},
		{"null required field", "video.completed", `{"videoId":null}`, "videoId"},
		{"unknown field", "document.viewed", `{"documentId":"d1","extra":true}`, ""},
		{"unknown nested field", "share.sent", `{"recipientEmail":"a@b.com","resource":{"type":"hub","id":"h","x":1}}`, ""},
		{"wrong type", "proposal.viewed", `{"proposalId":"p1","slideNum":"one"}`, ""},
		{"not an object", "hub.viewed", `["overview"]`, ""},
		{"empty id", "meeting.joined", `{"meetingId":"  "}`, "meetingId"},
		{"percent over 100", "video.watched", `{"videoId":"v1","watchTime":30,"percentComplete":101}`, "percentComplete"},
		{"negative seconds", "proposal.slide_time", `{"proposalId":"p1","slideNum":1,"seconds":-1}`, "seconds"},
		{"slide zero", "proposal.viewed", `{"proposalId":"p1","slideNum":0}`, "slideNum"},
		{"bad recipient", "share.sent", `{"recipientEmail":"nobody","resource":{"type":"hub","id":"h"}}`, "recipientEmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := domain.DecodeEvent(tt.eventType, []byte(tt.metadata))
			require.Nil(t, ev)
			require.ErrorIs(t, err, domain.ErrInvalidEvent)

			if tt.field != "" {
				var evErr *domain.EventError
				require.True(t, errors.As(err, &evErr))
				require.Equal(t, tt.field, evErr.Field)
			}
		})
	}
}

func TestConstructedEventsValidate(t *testing.T) {
	require.NoError(t, domain.VideoWatched{VideoID: "v1", WatchTime: 10, PercentComplete: 100}.Validate())
	require.ErrorIs(t, domain.VideoWatched{VideoID: "v1", PercentComplete: -1}.Validate(), domain.ErrInvalidEvent)
	require.ErrorIs(t, domain.ShareSent{RecipientEmail: "jim@acme.com"}.Validate(), domain.ErrInvalidEvent)
}

func TestActivityEventJSONRoundTrip(t *testing.T) {
	in := domain.ActivityEvent{
		ID:        "01J0000000000000000000000A",
		Seq:       7,
		EventType: domain.EventMessageRead,
		HubID:     "h1",
		UserID:    "u1",
		UserName:  "Sarah",
		UserEmail: "sarah@acme.com",
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Metadata:  domain.MessageRead{ThreadID: "t1", MessageID: "m1"},
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out domain.ActivityEvent
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, in, out)
}
