package usecase

import (
	"context"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/dto/request"
	"venue-booking/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rosterFixture finalizes a group ticket root and returns its id with a
// valid guest-list token.
func rosterFixture(t *testing.T, env *testEnv, quantity int) (string, string) {
	t.Helper()

	booking, err := env.service.Booking.FinalizeTickets(context.Background(), ticketsRequest("group_ticket", quantity))
	require.NoError(t, err)

	return booking.ID, booking.GuestListToken
}

func TestGetRoster_PadsToTicketQuantity(t *testing.T) {
	env := newTestEnv()
	bookingID, linkToken := rosterFixture(t, env, 3)

	roster, err := env.service.Roster.GetRoster(context.Background(), bookingID, linkToken)
	require.NoError(t, err)

	require.Len(t, roster.OwnGuests, 3)
	assert.True(t, roster.OwnGuests[0].IsOrganiser)
	assert.Equal(t, "Sam Reed", roster.OwnGuests[0].Name)
	assert.Nil(t, roster.OwnGuests[1].ID)
	assert.Nil(t, roster.OwnGuests[2].ID)
	assert.Equal(t, 3, roster.TotalGroupSize)
	require.NotNil(t, roster.ShareURL)
}

func TestGetRoster_TokenChecks(t *testing.T) {
	env := newTestEnv()
	bookingID, linkToken := rosterFixture(t, env, 3)

	// Missing/garbage token.
	_, err := env.service.Roster.GetRoster(context.Background(), bookingID, "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// A valid token minted for a different booking.
	otherToken, err := env.tokens.Issue(uuid.New(), token.PurposeGuestList, time.Hour)
	require.NoError(t, err)
	_, err = env.service.Roster.GetRoster(context.Background(), bookingID, otherToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// A share-purpose token is not a guest-list credential.
	shareToken, err := env.tokens.Issue(uuid.MustParse(bookingID), token.PurposeShare, time.Hour)
	require.NoError(t, err)
	_, err = env.service.Roster.GetRoster(context.Background(), bookingID, shareToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.service.Roster.GetRoster(context.Background(), bookingID, linkToken)
	assert.NoError(t, err)
}

func TestSaveOwnGuests_DropsBlanksAndKeepsOrder(t *testing.T) {
	env := newTestEnv()
	bookingID, linkToken := rosterFixture(t, env, 4)

	roster, err := env.service.Roster.SaveOwnGuests(context.Background(), bookingID, linkToken, &request.SaveGuestsRequest{
		GuestNames: []string{"Jane", "", "Sam"},
	})
	require.NoError(t, err)

	require.Len(t, roster.OwnGuests, 4)
	assert.True(t, roster.OwnGuests[0].IsOrganiser)
	assert.Equal(t, "Jane", roster.OwnGuests[1].Name)
	assert.Equal(t, "Sam", roster.OwnGuests[2].Name)
	assert.Nil(t, roster.OwnGuests[3].ID)
}

func TestSaveOwnGuests_ReplacesPreviousNames(t *testing.T) {
	env := newTestEnv()
	bookingID, linkToken := rosterFixture(t, env, 3)

	_, err := env.service.Roster.SaveOwnGuests(context.Background(), bookingID, linkToken, &request.SaveGuestsRequest{
		GuestNames: []string{"Jane", "Sam"},
	})
	require.NoError(t, err)

	roster, err := env.service.Roster.SaveOwnGuests(context.Background(), bookingID, linkToken, &request.SaveGuestsRequest{
		GuestNames: []string{"Alex"},
	})
	require.NoError(t, err)

	require.Len(t, roster.OwnGuests, 3)
	assert.Equal(t, "Alex", roster.OwnGuests[1].Name)
	assert.Nil(t, roster.OwnGuests[2].ID)
}

func TestSaveOwnGuests_RenamesOrganiser(t *testing.T) {
	env := newTestEnv()
	bookingID, linkToken := rosterFixture(t, env, 2)

	newName := "Sam R."
	roster, err := env.service.Roster.SaveOwnGuests(context.Background(), bookingID, linkToken, &request.SaveGuestsRequest{
		OrganiserName: &newName,
		GuestNames:    []string{"Jane"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Sam R.", roster.OwnGuests[0].Name)
	assert.True(t, roster.OwnGuests[0].IsOrganiser)
}

func TestSaveOwnGuests_BlankOrganiserRejected(t *testing.T) {
	env := newTestEnv()
	bookingID, linkToken := rosterFixture(t, env, 2)

	blank := "   "
	_, err := env.service.Roster.SaveOwnGuests(context.Background(), bookingID, linkToken, &request.SaveGuestsRequest{
		OrganiserName: &blank,
		GuestNames:    []string{"Jane"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaveOwnGuests_TooManyNames(t *testing.T) {
	env := newTestEnv()
	bookingID, linkToken := rosterFixture(t, env, 2)

	// One slot belongs to the organiser, leaving one editable.
	_, err := env.service.Roster.SaveOwnGuests(context.Background(), bookingID, linkToken, &request.SaveGuestsRequest{
		GuestNames: []string{"Jane", "Sam"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetRoster_MergesLinkedGroups(t *testing.T) {
	env := newTestEnv()
	bookingID, linkToken := rosterFixture(t, env, 2)

	root, err := env.repo.Booking.FindByID(context.Background(), uuid.MustParse(bookingID))
	require.NoError(t, err)

	// Two linked purchases in arrival order, plus a cancelled one that
	// must not appear.
	first := env.store.addBooking(&entity.Booking{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC().Add(time.Minute)},
		BookingType:     entity.BookingTypeGroupTicket,
		Venue:           root.Venue,
		ParentBookingID: &root.ID,
		BookingDate:     root.BookingDate,
		TicketQuantity:  2,
		CustomerName:    "Casey",
		Status:          entity.BookingStatusConfirmed,
	})
	env.store.addGuest(&entity.Guest{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		BookingID:   first.ID,
		GuestName:   "Casey",
		IsOrganiser: true,
	})
	env.store.addBooking(&entity.Booking{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC().Add(2 * time.Minute)},
		BookingType:     entity.BookingTypeGroupTicket,
		Venue:           root.Venue,
		ParentBookingID: &root.ID,
		BookingDate:     root.BookingDate,
		TicketQuantity:  1,
		CustomerName:    "Riley",
		Status:          entity.BookingStatusConfirmed,
	})
	env.store.addBooking(&entity.Booking{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC().Add(3 * time.Minute)},
		BookingType:     entity.BookingTypeGroupTicket,
		Venue:           root.Venue,
		ParentBookingID: &root.ID,
		BookingDate:     root.BookingDate,
		TicketQuantity:  5,
		CustomerName:    "Ghost",
		Status:          entity.BookingStatusCancelled,
	})

	roster, err := env.service.Roster.GetRoster(context.Background(), bookingID, linkToken)
	require.NoError(t, err)

	require.Len(t, roster.LinkedGroups, 2)
	assert.Equal(t, "Casey", roster.LinkedGroups[0].CustomerName)
	assert.Equal(t, "Riley", roster.LinkedGroups[1].CustomerName)

	// Linked sections are padded to their own quantities.
	require.Len(t, roster.LinkedGroups[0].Guests, 2)
	assert.True(t, roster.LinkedGroups[0].Guests[0].IsOrganiser)
	assert.Nil(t, roster.LinkedGroups[0].Guests[1].ID)
	require.Len(t, roster.LinkedGroups[1].Guests, 1)
	assert.Nil(t, roster.LinkedGroups[1].Guests[0].ID)

	// 2 own + 2 + 1 linked; the cancelled 5 are excluded.
	assert.Equal(t, 5, roster.TotalGroupSize)
}
