package usecase

import (
	"context"
	"testing"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotStatuses(slots []response.SlotResponse) map[string]response.SlotStatus {
	statuses := make(map[string]response.SlotStatus, len(slots))
	for _, slot := range slots {
		statuses[slot.StartTime] = slot.Status
	}
	return statuses
}

func TestGetAvailability_SlotStatuses(t *testing.T) {
	env := newTestEnv()
	booth := env.store.addBooth(entity.VenueManor, "Booth A", 8, 5000)

	// Live hold over 20:00-21:00.
	held, err := env.service.Hold.CreateHold(context.Background(), holdRequest(booth, "20:00", "21:00"))
	require.NoError(t, err)

	// Confirmed booking over 21:00-22:00.
	bHold, err := env.service.Hold.CreateHold(context.Background(), holdRequest(booth, "21:00", "22:00"))
	require.NoError(t, err)
	_, err = env.service.Booking.FinalizeKaraoke(context.Background(), karaokeRequest(bHold.ID))
	require.NoError(t, err)

	availability, err := env.service.Availability.GetAvailability(context.Background(), "manor", "2026-09-12", 1, nil)
	require.NoError(t, err)
	require.Len(t, availability.Booths, 1)

	slots := availability.Booths[0].Slots
	require.Len(t, slots, 6) // 18:00 through 24:00

	statuses := slotStatuses(slots)
	assert.Equal(t, response.SlotStatusAvailable, statuses["18:00"])
	assert.Equal(t, response.SlotStatusAvailable, statuses["19:00"])
	assert.Equal(t, response.SlotStatusHeld, statuses["20:00"])
	assert.Equal(t, response.SlotStatusBooked, statuses["21:00"])
	assert.Equal(t, response.SlotStatusAvailable, statuses["22:00"])
	assert.Equal(t, response.SlotStatusAvailable, statuses["23:00"])

	// The holder itself sees its own slot as available.
	own, err := env.service.Availability.GetAvailability(context.Background(), "manor", "2026-09-12", 1, &held.ID)
	require.NoError(t, err)
	ownStatuses := slotStatuses(own.Booths[0].Slots)
	assert.Equal(t, response.SlotStatusAvailable, ownStatuses["20:00"])
	assert.Equal(t, response.SlotStatusBooked, ownStatuses["21:00"])
}

func TestGetAvailability_FiltersByPartySize(t *testing.T) {
	env := newTestEnv()
	env.store.addBooth(entity.VenueManor, "Small", 4, 5000)
	env.store.addBooth(entity.VenueManor, "Large", 12, 9000)

	availability, err := env.service.Availability.GetAvailability(context.Background(), "manor", "2026-09-12", 6, nil)
	require.NoError(t, err)
	require.Len(t, availability.Booths, 1)
	assert.Equal(t, "Large", availability.Booths[0].Booth.Name)
}

func TestGetAvailability_UnknownVenue(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Availability.GetAvailability(context.Background(), "warehouse", "2026-09-12", 1, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBoothsForSlot(t *testing.T) {
	env := newTestEnv()
	boothA := env.store.addBooth(entity.VenueManor, "Booth A", 8, 5000)
	env.store.addBooth(entity.VenueManor, "Booth B", 8, 5000)

	_, err := env.service.Hold.CreateHold(context.Background(), holdRequest(boothA, "20:00", "21:00"))
	require.NoError(t, err)

	booths, err := env.service.Availability.BoothsForSlot(context.Background(), "manor", "2026-09-12", "20:00", "21:00", 1)
	require.NoError(t, err)
	require.Len(t, booths, 1)
	assert.Equal(t, "Booth B", booths[0].Name)

	// Two-hour window overlapping the hold excludes booth A too.
	booths, err = env.service.Availability.BoothsForSlot(context.Background(), "manor", "2026-09-12", "19:00", "21:00", 1)
	require.NoError(t, err)
	require.Len(t, booths, 1)
	assert.Equal(t, "Booth B", booths[0].Name)

	_, err = env.service.Availability.BoothsForSlot(context.Background(), "manor", "2026-09-12", "19:00", "22:00", 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListBooths_Catalog(t *testing.T) {
	env := newTestEnv()
	env.store.addBooth(entity.VenueManor, "Booth A", 8, 5000)
	env.store.addBooth(entity.VenueManor, "Booth B", 4, 4000)
	env.store.addBooth(entity.VenueHippie, "Booth C", 8, 5000)

	booths, err := env.service.Availability.ListBooths(context.Background(), "manor", 1)
	require.NoError(t, err)
	assert.Len(t, booths, 2)

	booths, err = env.service.Availability.ListBooths(context.Background(), "manor", 6)
	require.NoError(t, err)
	require.Len(t, booths, 1)
	assert.Equal(t, "Booth A", booths[0].Name)

	_, err = env.service.Availability.ListBooths(context.Background(), "warehouse", 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCombineSessions(t *testing.T) {
	grid := buildGrid(utils.SlotConfig{OpenHour: 18, CloseHour: 24})
	slots := make([]response.SlotResponse, 0, len(grid))
	for _, window := range grid {
		status := response.SlotStatusAvailable
		if window.Start == "20:00" {
			status = response.SlotStatusBooked
		}
		slots = append(slots, response.SlotResponse{
			StartTime: window.Start,
			EndTime:   window.End,
			Status:    status,
		})
	}

	// One-hour sessions skip only the booked hour.
	oneHour := CombineSessions(slots, 1)
	require.Len(t, oneHour, 5)

	// Two-hour sessions must avoid any window touching 20:00-21:00.
	twoHour := CombineSessions(slots, 2)
	starts := make([]string, 0, len(twoHour))
	for _, session := range twoHour {
		starts = append(starts, session.StartTime)
		assert.Equal(t, response.SlotStatusAvailable, session.Status)
	}
	assert.Equal(t, []string{"18:00", "21:00", "22:00"}, starts)
	assert.Equal(t, "24:00", twoHour[len(twoHour)-1].EndTime)
}

func TestSessionHours(t *testing.T) {
	tests := []struct {
		start, end string
		hours      int
		wantErr    bool
	}{
		{"20:00", "21:00", 1, false},
		{"20:00", "22:00", 2, false},
		{"23:00", "24:00", 1, false},
		{"22:00", "24:00", 2, false},
		{"20:00", "20:30", 0, true},
		{"20:30", "21:30", 0, true},
		{"21:00", "20:00", 0, true},
		{"20:00", "20:00", 0, true},
	}

	for _, tt := range tests {
		hours, err := sessionHours(tt.start, tt.end)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrValidation, "%s-%s", tt.start, tt.end)
			continue
		}
		require.NoError(t, err, "%s-%s", tt.start, tt.end)
		assert.Equal(t, tt.hours, hours, "%s-%s", tt.start, tt.end)
	}
}
