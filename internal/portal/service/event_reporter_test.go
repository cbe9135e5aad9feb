package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []domain.Event
}

func (s *recordingSink) Log(_ context.Context, _ string, _ domain.Principal, ev domain.Event) error {
	s.events = append(s.events, ev)
	return nil
}

func TestEventReporter(t *testing.T) {
	f := newFixture(t)
	f.join(t, sarah, domain.AccessDocumentsOnly)

	sink := &recordingSink{}
	r := &service.EventReporter{Store: f.store, Sink: sink}
	ctx := t.Context()

	t.Run("server emitted types are refused", func(t *testing.T) {
		for _, p := range []domain.Principal{sarah, staff} {
			err := r.Report(ctx, f.hub.ID, p, domain.ShareAccepted{InviteID: "inv-1"})
			require.ErrorIs(t, err, domain.ErrInvalidEvent)
		}
	})

	t.Run("sections outside the permission set are forbidden", func(t *testing.T) {
		require.ErrorIs(t, r.Report(ctx, f.hub.ID, sarah, domain.ProposalViewed{ProposalID: "p-1", SlideNum: 1}), service.ErrForbidden)
		require.ErrorIs(t, r.Report(ctx, f.hub.ID, sarah, domain.HubViewed{Section: "proposal"}), service.ErrForbidden)
	})

	t.Run("unknown hub section is invalid", func(t *testing.T) {
		var ee *domain.EventError
		require.ErrorAs(t, r.Report(ctx, f.hub.ID, sarah, domain.HubViewed{Section: "billing"}), &ee)
		require.Equal(t, "section", ee.Field)
	})

	t.Run("non members are forbidden", func(t *testing.T) {
		require.ErrorIs(t, r.Report(ctx, f.hub.ID, john, domain.HubViewed{Section: "overview"}), service.ErrForbidden)
	})

	t.Run("permitted events reach the sink", func(t *testing.T) {
		require.NoError(t, r.Report(ctx, f.hub.ID, sarah, domain.DocumentViewed{DocumentID: "doc-1"}))
		require.NoError(t, r.Report(ctx, f.hub.ID, sarah, domain.HubViewed{Section: "documents"}))
		require.NoError(t, r.Report(ctx, f.hub.ID, staff, domain.ProposalViewed{ProposalID: "p-1", SlideNum: 2}))
	})

	require.Len(t, sink.events, 3)
	for _, ev := range sink.events {
		require.False(t, ev.Type().ServerEmitted())
	}
}
