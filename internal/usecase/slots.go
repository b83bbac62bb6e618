package usecase

import (
	"fmt"
	"time"

	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"
)

// MaxSessionHours caps a single karaoke session.
const MaxSessionHours = 2

type slotWindow struct {
	Start string
	End   string
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// buildGrid expands the configured opening window into hourly slots.
// CloseHour 24 yields a final slot ending at "24:00" so string
// comparison stays consistent across the whole grid.
func buildGrid(cfg utils.SlotConfig) []slotWindow {
	if cfg.CloseHour <= cfg.OpenHour {
		return nil
	}

	grid := make([]slotWindow, 0, cfg.CloseHour-cfg.OpenHour)
	for hour := cfg.OpenHour; hour < cfg.CloseHour; hour++ {
		grid = append(grid, slotWindow{Start: hourLabel(hour), End: hourLabel(hour + 1)})
	}
	return grid
}

// overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Times are zero-padded HH:MM so string order is time order.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// sessionHours returns the whole-hour length of [start, end), or an
// error when the window is not a positive whole-hour span on the grid.
func sessionHours(start, end string) (int, error) {
	startAt, err := time.Parse("15:04", start)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid start time %q", ErrValidation, start)
	}

	var endAt time.Time
	if end == "24:00" {
		endAt = time.Date(0, 1, 2, 0, 0, 0, 0, time.UTC)
	} else {
		endAt, err = time.Parse("15:04", end)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid end time %q", ErrValidation, end)
		}
	}

	span := endAt.Sub(startAt)
	if span <= 0 {
		return 0, fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	if span%time.Hour != 0 || startAt.Minute() != 0 {
		return 0, fmt.Errorf("%w: sessions run on whole hours", ErrValidation)
	}

	return int(span / time.Hour), nil
}

// CombineSessions derives the bookable multi-hour session starts from an
// hourly availability row. A session of the given length is offerable
// from a slot only when that slot and the following hours-1 slots are
// all available.
func CombineSessions(slots []response.SlotResponse, hours int) []response.SlotResponse {
	if hours < 1 {
		return nil
	}

	var sessions []response.SlotResponse
	for i := 0; i+hours <= len(slots); i++ {
		free := true
		for j := i; j < i+hours; j++ {
			if slots[j].Status != response.SlotStatusAvailable {
				free = false
				break
			}
		}
		if free {
			sessions = append(sessions, response.SlotResponse{
				StartTime: slots[i].StartTime,
				EndTime:   slots[i+hours-1].EndTime,
				Status:    response.SlotStatusAvailable,
			})
		}
	}
	return sessions
}
