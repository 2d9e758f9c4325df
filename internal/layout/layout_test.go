package layout

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
)

var taipei = time.FixedZone("UTC+08:00", 8*3600)

// juneWeek is Sunday 2026-06-07 through Saturday 2026-06-13.
func juneWeek() [Days]time.Time {
	weeks := dateutil.MonthWeeks(2026, time.June, time.Sunday)
	return weeks[1]
}

func newEvent(id int, start, end string) event.Event {
	return event.Normalize(id, event.Raw{
		Title:  fmt.Sprintf("event %d", id),
		Start:  start,
		End:    end,
		Status: "confirmed",
	}, event.DefaultVocabulary(), taipei)
}

func TestPack_SingleDay(t *testing.T) {
	ev := newEvent(1, "2026-06-10T09:00+08:00", "2026-06-10T17:00+08:00")

	placements := Pack(juneWeek(), []event.Event{ev})

	require.Len(t, placements, 1)
	p := placements[0]
	assert.Equal(t, 3, p.StartCol, "2026-06-10 is the wednesday column")
	assert.Equal(t, 3, p.EndCol)
	assert.Equal(t, 0, p.Slot)
	assert.False(t, p.ContinuesLeft)
	assert.False(t, p.ContinuesRight)
	assert.Equal(t, 1, p.Span())
}

func TestPack_IdenticalSpansStack(t *testing.T) {
	a := newEvent(1, "2026-06-10", "2026-06-12")
	b := newEvent(2, "2026-06-10", "2026-06-12")

	placements := Pack(juneWeek(), []event.Event{a, b})

	require.Len(t, placements, 2)
	assert.Equal(t, 1, placements[0].Event.ID)
	assert.Equal(t, 0, placements[0].Slot)
	assert.Equal(t, 2, placements[1].Event.ID)
	assert.Equal(t, 1, placements[1].Slot)
	assert.Equal(t, 2, SlotCount(placements))
}

func TestPack_LongerEventsFirst(t *testing.T) {
	short := newEvent(1, "2026-06-08T09:00+08:00", "2026-06-08T10:00+08:00")
	long := newEvent(2, "2026-06-08T09:00+08:00", "2026-06-11T18:00+08:00")

	placements := Pack(juneWeek(), []event.Event{short, long})

	require.Len(t, placements, 2)
	assert.Equal(t, 2, placements[0].Event.ID, "longest event is placed first")
	assert.Equal(t, 0, placements[0].Slot)
	assert.Equal(t, 1, placements[1].Slot)
}

func TestPack_TieBrokenByStart(t *testing.T) {
	later := newEvent(1, "2026-06-12T09:00+08:00", "2026-06-12T11:00+08:00")
	earlier := newEvent(2, "2026-06-08T09:00+08:00", "2026-06-08T11:00+08:00")

	placements := Pack(juneWeek(), []event.Event{later, earlier})

	require.Len(t, placements, 2)
	assert.Equal(t, 2, placements[0].Event.ID)
	assert.Equal(t, 0, placements[0].Slot)
	assert.Equal(t, 0, placements[1].Slot, "disjoint columns share slot 0")
}

func TestPack_ClipsToWeek(t *testing.T) {
	ev := newEvent(1, "2026-06-01", "2026-06-20")

	placements := Pack(juneWeek(), []event.Event{ev})

	require.Len(t, placements, 1)
	p := placements[0]
	assert.Equal(t, 0, p.StartCol)
	assert.Equal(t, 6, p.EndCol)
	assert.True(t, p.ContinuesLeft)
	assert.True(t, p.ContinuesRight)
}

func TestPack_ContinuesOneSide(t *testing.T) {
	left := newEvent(1, "2026-06-05", "2026-06-08")
	right := newEvent(2, "2026-06-12", "2026-06-15")

	placements := Pack(juneWeek(), []event.Event{left, right})

	require.Len(t, placements, 2)
	byID := map[int]Placement{}
	for _, p := range placements {
		byID[p.Event.ID] = p
	}

	assert.Equal(t, 0, byID[1].StartCol)
	assert.Equal(t, 1, byID[1].EndCol)
	assert.True(t, byID[1].ContinuesLeft)
	assert.False(t, byID[1].ContinuesRight)

	assert.Equal(t, 5, byID[2].StartCol)
	assert.Equal(t, 6, byID[2].EndCol)
	assert.False(t, byID[2].ContinuesLeft)
	assert.True(t, byID[2].ContinuesRight)
}

func TestPack_IgnoresEventsOutsideWeek(t *testing.T) {
	outside := newEvent(1, "2026-07-01", "2026-07-02")
	undated := newEvent(2, "", "")

	assert.Empty(t, Pack(juneWeek(), []event.Event{outside, undated}))
}

func TestPack_SlotIsHeightOfSpannedColumns(t *testing.T) {
	// Monday-Wednesday takes slot 0, Tuesday-Thursday stacks on it, and the
	// short Wednesday event has to clear both.
	a := newEvent(1, "2026-06-08", "2026-06-10T23:00+08:00")
	b := newEvent(2, "2026-06-10T09:00+08:00", "2026-06-10T12:00+08:00")
	c := newEvent(3, "2026-06-09", "2026-06-11")

	placements := Pack(juneWeek(), []event.Event{a, b, c})

	slots := map[int]int{}
	for _, p := range placements {
		slots[p.Event.ID] = p.Slot
	}
	assert.Equal(t, 0, slots[1])
	assert.Equal(t, 1, slots[3])
	assert.Equal(t, 2, slots[2])
}

func TestPack_NoSharedSlotInSharedColumn(t *testing.T) {
	week := juneWeek()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rng.Intn(12) + 1
		events := make([]event.Event, n)
		for i := range events {
			startOffset := rng.Intn(11) - 2
			length := rng.Intn(5)
			start := week[0].AddDate(0, 0, startOffset)
			end := start.AddDate(0, 0, length)
			events[i] = newEvent(i+1, dateutil.FormatDay(start), dateutil.FormatDay(end))
		}

		placements := Pack(week, events)

		for i := range placements {
			for j := i + 1; j < len(placements); j++ {
				a, b := placements[i], placements[j]
				if a.StartCol > b.EndCol || b.StartCol > a.EndCol {
					continue
				}
				require.NotEqual(t, a.Slot, b.Slot,
					"round %d: events %d and %d share columns and slot %d", round, a.Event.ID, b.Event.ID, a.Slot)
			}
		}

		// Each slot is the lowest one above everything placed earlier in its columns.
		var heights [Days]int
		for _, p := range placements {
			want := 0
			for col := p.StartCol; col <= p.EndCol; col++ {
				if heights[col] > want {
					want = heights[col]
				}
			}
			require.Equal(t, want, p.Slot, "round %d: event %d", round, p.Event.ID)
			for col := p.StartCol; col <= p.EndCol; col++ {
				heights[col] = p.Slot + 1
			}
		}
	}
}

func TestInColumn(t *testing.T) {
	a := newEvent(1, "2026-06-08", "2026-06-10")
	b := newEvent(2, "2026-06-10", "2026-06-10")

	placements := Pack(juneWeek(), []event.Event{a, b})

	wednesday := InColumn(placements, 3)
	require.Len(t, wednesday, 2)
	assert.Equal(t, 0, wednesday[0].Slot)
	assert.Equal(t, 1, wednesday[1].Slot)

	assert.Empty(t, InColumn(placements, 6))
}
