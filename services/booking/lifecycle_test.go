package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"quikka/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from  models.BookingStatus
		event Event
		want  models.BookingStatus
		ok    bool
	}{
		{models.StatusPending, EventConfirm, models.StatusConfirmed, true},
		{models.StatusPending, EventCancel, models.StatusCancelled, true},
		{models.StatusPending, EventRescheduleRequest, models.StatusRescheduleRequested, true},
		{models.StatusPending, EventComplete, "", false},
		{models.StatusPending, EventNoShow, "", false},
		{models.StatusConfirmed, EventCancel, models.StatusCancelled, true},
		{models.StatusConfirmed, EventComplete, models.StatusCompleted, true},
		{models.StatusConfirmed, EventNoShow, models.StatusNoShow, true},
		{models.StatusConfirmed, EventConfirm, "", false},
		{models.StatusRescheduleRequested, EventRescheduleApprove, models.StatusConfirmed, true},
		{models.StatusRescheduleRequested, EventCancel, "", false},
		{models.StatusCompleted, EventCancel, "", false},
		{models.StatusCancelled, EventConfirm, "", false},
		{models.StatusNoShow, EventComplete, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.event), func(t *testing.T) {
			got, err := nextStatus(tt.from, tt.event)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				var tErr *InvalidTransitionError
				require.ErrorAs(t, err, &tErr)
				assert.Equal(t, tt.from, tErr.Status)
				assert.Equal(t, tt.event, tErr.Event)
			}
		})
	}
}

func TestCreateBooking(t *testing.T) {
	engine, _ := newTestEngine()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, 600, b.Start)
	assert.Equal(t, 660, b.End)
	assert.Equal(t, 60, b.Duration())

	got, err := engine.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestCreateBookingAutoConfirm(t *testing.T) {
	engine, _ := newTestEngine()
	engine.AutoConfirm = true

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)
}

func TestCreateBookingValidation(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	base := CreateBookingRequest{
		ProviderID:  testProvider,
		ClientName:  "Wanjiku",
		ClientPhone: "+254700000001",
		Date:        testDate,
		Start:       600,
		Duration:    60,
	}

	var vErr *ValidationError

	req := base
	req.ClientName = "  "
	_, err := engine.CreateBooking(ctx, req)
	assert.ErrorAs(t, err, &vErr)

	req = base
	req.Duration = -30
	_, err = engine.CreateBooking(ctx, req)
	assert.ErrorAs(t, err, &vErr)

	req = base
	req.Date = "next monday"
	_, err = engine.CreateBooking(ctx, req)
	assert.ErrorAs(t, err, &vErr)

	req = base
	req.Start = 25 * 60
	_, err = engine.CreateBooking(ctx, req)
	assert.ErrorAs(t, err, &vErr)
}

func TestCreateBookingOutsideWindow(t *testing.T) {
	engine, _ := newTestEngine()

	// Before opening.
	_, err := mustCreate(engine, 540, 60)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Runs past closing.
	_, err = mustCreate(engine, 660, 60)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Closed day.
	_, err = engine.CreateBooking(context.Background(), CreateBookingRequest{
		ProviderID:  testProvider,
		ClientName:  "Wanjiku",
		ClientPhone: "+254700000001",
		Date:        "2026-03-04",
		Start:       600,
		Duration:    60,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateBookingLeadTimeCutoff(t *testing.T) {
	engine, _ := newTestEngine()
	// 09:45 on the booking date; a 10:00 start is inside the 30-minute lead.
	engine.Clock = func() time.Time {
		return time.Date(2026, 3, 2, 9, 45, 0, 0, time.UTC)
	}

	_, err := mustCreate(engine, 600, 60)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	b, err := mustCreate(engine, 630, 60)
	require.NoError(t, err)
	assert.Equal(t, 630, b.Start)
}

func TestCreateBookingOccupiedSlot(t *testing.T) {
	engine, _ := newTestEngine()

	_, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)

	// Identical interval.
	_, err = mustCreate(engine, 600, 60)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Partial overlap.
	_, err = mustCreate(engine, 630, 60)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Touching endpoints do not conflict.
	b, err := mustCreate(engine, 660, 30)
	require.NoError(t, err)
	assert.Equal(t, 660, b.Start)
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	engine, _ := newTestEngine()

	const attempts = 16
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mustCreate(engine, 600, 60)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case err == ErrSlotUnavailable:
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent create may claim the slot")
	assert.Equal(t, attempts-1, losses)
}

func TestConfirmAndCancel(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)

	confirmed, err := engine.Confirm(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	cancelled, err := engine.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// Terminal: nothing further is allowed.
	_, err = engine.Confirm(ctx, b.ID)
	var tErr *InvalidTransitionError
	assert.ErrorAs(t, err, &tErr)
}

func TestCancelReleasesInterval(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	_, err = engine.Cancel(ctx, b.ID)
	require.NoError(t, err)

	again, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, again.ID)
}

func TestCompleteFromPendingIsInvalid(t *testing.T) {
	engine, _ := newTestEngine()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)

	_, err = engine.Complete(context.Background(), b.ID)
	var tErr *InvalidTransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, models.StatusPending, tErr.Status)
	assert.Equal(t, EventComplete, tErr.Event)
}

func TestCompleteRequiresElapsedAppointment(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	_, err = engine.Confirm(ctx, b.ID)
	require.NoError(t, err)

	// Clock is still a week before the appointment.
	_, err = engine.Complete(ctx, b.ID)
	var tErr *InvalidTransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Contains(t, tErr.Reason, "not elapsed")

	// Move past the appointment start.
	engine.Clock = func() time.Time {
		return time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC)
	}
	done, err := engine.Complete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
}

func TestMarkNoShow(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	_, err = engine.Confirm(ctx, b.ID)
	require.NoError(t, err)

	engine.Clock = func() time.Time {
		return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	}
	b, err = engine.MarkNoShow(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNoShow, b.Status)
}

func TestRescheduleRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, prior := range []models.BookingStatus{models.StatusPending, models.StatusConfirmed} {
		t.Run(string(prior), func(t *testing.T) {
			engine, _ := newTestEngine()
			b, err := mustCreate(engine, 600, 60)
			require.NoError(t, err)
			if prior == models.StatusConfirmed {
				_, err = engine.Confirm(ctx, b.ID)
				require.NoError(t, err)
			}

			requested, err := engine.RequestReschedule(ctx, b.ID, RescheduleProposal{
				Date:        "2026-03-10",
				Start:       540,
				Reason:      "client asked to move",
				RequestedBy: "client",
			})
			require.NoError(t, err)
			assert.Equal(t, models.StatusRescheduleRequested, requested.Status)
			require.NotNil(t, requested.Reschedule)
			assert.Equal(t, prior, requested.Reschedule.PriorStatus)

			declined, err := engine.DeclineReschedule(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, prior, declined.Status)
			assert.Nil(t, declined.Reschedule)
			assert.Equal(t, testDate, declined.Date)
			assert.Equal(t, 600, declined.Start)
			assert.Equal(t, 660, declined.End)
		})
	}
}

func TestRescheduleApprove(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	_, err = engine.Confirm(ctx, b.ID)
	require.NoError(t, err)

	_, err = engine.RequestReschedule(ctx, b.ID, RescheduleProposal{
		Date:        "2026-03-10",
		Start:       540,
		RequestedBy: "stylist",
	})
	require.NoError(t, err)

	approved, err := engine.ApproveReschedule(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, approved.Status)
	assert.Equal(t, "2026-03-10", approved.Date)
	assert.Equal(t, 540, approved.Start)
	assert.Equal(t, 600, approved.End)
	assert.Nil(t, approved.Reschedule)

	// The original Monday interval is released.
	again, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, again.ID)
}

func TestRescheduleApproveConflictKeepsState(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	blocker, err := engine.CreateBooking(ctx, CreateBookingRequest{
		ProviderID:  testProvider,
		ClientName:  "Atieno",
		ClientPhone: "+254700000002",
		Date:        "2026-03-10",
		Start:       540,
		Duration:    60,
	})
	require.NoError(t, err)
	_, err = engine.Confirm(ctx, blocker.ID)
	require.NoError(t, err)

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)
	_, err = engine.RequestReschedule(ctx, b.ID, RescheduleProposal{
		Date:        "2026-03-10",
		Start:       570,
		RequestedBy: "client",
	})
	require.NoError(t, err)

	_, err = engine.ApproveReschedule(ctx, b.ID)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// The booking keeps its proposal and original interval; declining still works.
	current, err := engine.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRescheduleRequested, current.Status)
	require.NotNil(t, current.Reschedule)
	assert.Equal(t, testDate, current.Date)

	declined, err := engine.DeclineReschedule(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, declined.Status)
}

func TestRescheduleSameSlotSelfOverlap(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)

	// Propose a shift that overlaps the booking's own current interval; the
	// original interval must not block its replacement.
	_, err = engine.RequestReschedule(ctx, b.ID, RescheduleProposal{
		Date:        testDate,
		Start:       630,
		RequestedBy: "client",
	})
	require.NoError(t, err)

	approved, err := engine.ApproveReschedule(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 630, approved.Start)
	assert.Equal(t, 690, approved.End)
}

func TestRescheduleValidation(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)

	var vErr *ValidationError
	_, err = engine.RequestReschedule(ctx, b.ID, RescheduleProposal{Date: "soon", Start: 600, RequestedBy: "client"})
	assert.ErrorAs(t, err, &vErr)

	_, err = engine.RequestReschedule(ctx, b.ID, RescheduleProposal{Date: testDate, Start: -10, RequestedBy: "client"})
	assert.ErrorAs(t, err, &vErr)

	_, err = engine.RequestReschedule(ctx, b.ID, RescheduleProposal{Date: testDate, Start: 600, RequestedBy: "receptionist"})
	assert.ErrorAs(t, err, &vErr)

	// Approve and decline require an outstanding request.
	var tErr *InvalidTransitionError
	_, err = engine.ApproveReschedule(ctx, b.ID)
	assert.ErrorAs(t, err, &tErr)
	_, err = engine.DeclineReschedule(ctx, b.ID)
	assert.ErrorAs(t, err, &tErr)
}

func TestStaleTransitionReportsCurrentStatus(t *testing.T) {
	engine, ledger := newTestEngine()
	ctx := context.Background()

	b, err := mustCreate(engine, 600, 60)
	require.NoError(t, err)

	// Another actor cancels between our read and commit.
	stored := *b
	stored.Status = models.StatusCancelled
	ledger.bookings[b.ID] = stored

	_, err = engine.Confirm(ctx, b.ID)
	var tErr *InvalidTransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, models.StatusCancelled, tErr.Status)
}
