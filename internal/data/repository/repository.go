package repository

import (
	"venue-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	DB      database.PgxIface
	Booth   BoothRepository
	Hold    HoldRepository
	Booking BookingRepository
	Guest   GuestRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		DB:      db,
		Booth:   NewBoothRepository(db, log),
		Hold:    NewHoldRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Guest:   NewGuestRepository(db, log),
	}
}
