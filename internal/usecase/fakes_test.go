package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/queue"
	"venue-booking/pkg/database"
	"venue-booking/pkg/payment"
	"venue-booking/pkg/token"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const testLinkSecret = "test-link-secret"

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Name:         "venue-booking-test",
			ShareBaseURL: "https://example.test",
		},
		Hold:    utils.HoldConfig{TTLMinutes: 10},
		Slots:   utils.SlotConfig{OpenHour: 18, CloseHour: 24},
		Payment: utils.PaymentConfig{Currency: "AUD"},
		Pricing: utils.PricingConfig{TicketPriceCents: 1000},
		Link:    utils.LinkConfig{Secret: testLinkSecret, GuestListExpiryDays: 90, ShareExpiryDays: 90},
	}
}

// ---------------- in-memory store ----------------

// fakeStore backs all fake repositories with one shared state so
// cross-repo invariants (hold vs booking conflicts, capacity sums)
// behave like the real schema.
type fakeStore struct {
	mu       sync.Mutex
	booths   map[uuid.UUID]*entity.Booth
	holds    map[uuid.UUID]*entity.Hold
	bookings map[uuid.UUID]*entity.Booking
	guests   map[uuid.UUID]*entity.Guest

	// onLockRoot runs inside LockRootTx, letting tests interleave a
	// competing write between the pre-check and the locked re-check.
	onLockRoot func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		booths:   make(map[uuid.UUID]*entity.Booth),
		holds:    make(map[uuid.UUID]*entity.Hold),
		bookings: make(map[uuid.UUID]*entity.Booking),
		guests:   make(map[uuid.UUID]*entity.Guest),
	}
}

func newTestRepository(store *fakeStore) *repository.Repository {
	return &repository.Repository{
		DB:      &fakeDB{},
		Booth:   &fakeBoothRepo{store: store},
		Hold:    &fakeHoldRepo{store: store},
		Booking: &fakeBookingRepo{store: store},
		Guest:   &fakeGuestRepo{store: store},
	}
}

func (s *fakeStore) addBooth(venue entity.Venue, name string, capacity int, rateCents int64) *entity.Booth {
	booth := &entity.Booth{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Venue:           venue,
		Name:            name,
		Capacity:        capacity,
		HourlyRateCents: rateCents,
		IsActive:        true,
	}
	s.mu.Lock()
	s.booths[booth.ID] = booth
	s.mu.Unlock()
	return booth
}

func (s *fakeStore) addBooking(b *entity.Booking) *entity.Booking {
	s.mu.Lock()
	s.bookings[b.ID] = b
	s.mu.Unlock()
	return b
}

func (s *fakeStore) addGuest(g *entity.Guest) *entity.Guest {
	s.mu.Lock()
	s.guests[g.ID] = g
	s.mu.Unlock()
	return g
}

// ---------------- fake DB / Tx ----------------

// fakeTx satisfies pgx.Tx via embedding; only Commit and Rollback are
// ever called because the fake repositories ignore the handle.
type fakeTx struct {
	pgx.Tx
}

func (t *fakeTx) Commit(ctx context.Context) error   { return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeDB struct{}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not used")
}
func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not used")
}
func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	panic("not used")
}
func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return &fakeTx{}, nil }
func (db *fakeDB) Ping(ctx context.Context) error            { return nil }
func (db *fakeDB) Close()                                    {}

var _ database.PgxIface = (*fakeDB)(nil)

// ---------------- booth repo ----------------

type fakeBoothRepo struct {
	store *fakeStore
}

func (r *fakeBoothRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booth, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.booths[id], nil
}

func (r *fakeBoothRepo) FindByVenue(ctx context.Context, venue entity.Venue, minCapacity int) ([]*entity.Booth, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var booths []*entity.Booth
	for _, booth := range r.store.booths {
		if booth.Venue == venue && booth.IsActive && booth.Capacity >= minCapacity {
			booths = append(booths, booth)
		}
	}
	sort.Slice(booths, func(i, j int) bool { return booths[i].Name < booths[j].Name })
	return booths, nil
}

func (r *fakeBoothRepo) FindAvailableForSlot(ctx context.Context, venue entity.Venue, date, start, end string, minCapacity int) ([]*entity.Booth, error) {
	booths, _ := r.FindByVenue(ctx, venue, minCapacity)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var free []*entity.Booth
	for _, booth := range booths {
		if r.store.boothOccupied(booth.ID, date, start, end, uuid.Nil) {
			continue
		}
		free = append(free, booth)
	}
	return free, nil
}

// boothOccupied mirrors the overlap predicates of the real queries.
// Callers hold the store mutex.
func (s *fakeStore) boothOccupied(boothID uuid.UUID, date, start, end string, excludeHold uuid.UUID) bool {
	now := time.Now().UTC()
	for _, hold := range s.holds {
		if hold.BoothID != boothID || hold.BookingDate != date || hold.ID == excludeHold {
			continue
		}
		if hold.Live(now) && overlaps(start, end, hold.StartTime, hold.EndTime) {
			return true
		}
	}
	for _, booking := range s.bookings {
		if booking.BoothID == nil || *booking.BoothID != boothID {
			continue
		}
		if booking.BookingDate != date || booking.Status != entity.BookingStatusConfirmed {
			continue
		}
		if booking.StartTime != nil && booking.EndTime != nil &&
			overlaps(start, end, *booking.StartTime, *booking.EndTime) {
			return true
		}
	}
	return false
}

// ---------------- hold repo ----------------

type fakeHoldRepo struct {
	store *fakeStore
}

func (r *fakeHoldRepo) CreateExclusive(ctx context.Context, hold *entity.Hold) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.boothOccupied(hold.BoothID, hold.BookingDate, hold.StartTime, hold.EndTime, uuid.Nil) {
		return repository.ErrHoldConflict
	}

	copied := *hold
	r.store.holds[hold.ID] = &copied
	return nil
}

func (r *fakeHoldRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if hold, ok := r.store.holds[id]; ok {
		copied := *hold
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeHoldRepo) Release(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if hold, ok := r.store.holds[id]; ok && hold.Status == entity.HoldStatusActive {
		hold.Status = entity.HoldStatusReleased
	}
	return nil
}

func (r *fakeHoldRepo) ConsumeTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	hold, ok := r.store.holds[id]
	if !ok || !hold.Live(time.Now().UTC()) {
		return repository.ErrHoldNotActive
	}
	hold.Status = entity.HoldStatusConsumed
	return nil
}

func (r *fakeHoldRepo) FindLiveByVenueDate(ctx context.Context, venue entity.Venue, date string) ([]*entity.Hold, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	var holds []*entity.Hold
	for _, hold := range r.store.holds {
		if hold.Venue == venue && hold.BookingDate == date && hold.Live(now) {
			copied := *hold
			holds = append(holds, &copied)
		}
	}
	sort.Slice(holds, func(i, j int) bool { return holds[i].StartTime < holds[j].StartTime })
	return holds, nil
}

// ---------------- booking repo ----------------

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *booking
	r.store.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if booking, ok := r.store.bookings[id]; ok {
		copied := *booking
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByShareToken(ctx context.Context, shareToken string) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, booking := range r.store.bookings {
		if booking.ShareToken != nil && *booking.ShareToken == shareToken {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var children []*entity.Booking
	for _, booking := range r.store.bookings {
		if booking.ParentBookingID != nil && *booking.ParentBookingID == parentID {
			copied := *booking
			children = append(children, &copied)
		}
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].CreatedAt.Before(children[j].CreatedAt)
	})
	return children, nil
}

func (r *fakeBookingRepo) FindConfirmedBoothBookings(ctx context.Context, venue entity.Venue, date string) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var bookings []*entity.Booking
	for _, booking := range r.store.bookings {
		if booking.Venue == venue && booking.BookingDate == date &&
			booking.BoothID != nil && booking.Status == entity.BookingStatusConfirmed {
			copied := *booking
			bookings = append(bookings, &copied)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if booking, ok := r.store.bookings[id]; ok {
		booking.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) RemainingCapacity(ctx context.Context, rootID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	root, ok := r.store.bookings[rootID]
	if !ok {
		return 0, nil
	}
	capacity := 0
	if root.Capacity != nil {
		capacity = *root.Capacity
	}
	return capacity - r.store.childQuantity(rootID), nil
}

func (r *fakeBookingRepo) LockRootTx(ctx context.Context, tx pgx.Tx, rootID uuid.UUID) (*entity.Booking, error) {
	if r.store.onLockRoot != nil {
		r.store.onLockRoot()
	}
	return r.FindByID(ctx, rootID)
}

func (r *fakeBookingRepo) SumActiveChildrenTx(ctx context.Context, tx pgx.Tx, rootID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.childQuantity(rootID), nil
}

// childQuantity sums non-cancelled children. Callers hold the mutex.
func (s *fakeStore) childQuantity(rootID uuid.UUID) int {
	total := 0
	for _, booking := range s.bookings {
		if booking.ParentBookingID != nil && *booking.ParentBookingID == rootID &&
			booking.Status != entity.BookingStatusCancelled {
			total += booking.TicketQuantity
		}
	}
	return total
}

// ---------------- guest repo ----------------

type fakeGuestRepo struct {
	store *fakeStore
}

func (r *fakeGuestRepo) CreateBatchTx(ctx context.Context, tx pgx.Tx, guests []*entity.Guest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, guest := range guests {
		copied := *guest
		r.store.guests[guest.ID] = &copied
	}
	return nil
}

func (r *fakeGuestRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Guest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.guestsOf(bookingID), nil
}

func (r *fakeGuestRepo) FindByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]*entity.Guest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	grouped := make(map[uuid.UUID][]*entity.Guest, len(bookingIDs))
	for _, id := range bookingIDs {
		if guests := r.store.guestsOf(id); len(guests) > 0 {
			grouped[id] = guests
		}
	}
	return grouped, nil
}

func (r *fakeGuestRepo) ReplaceNonOrganisersTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, guests []*entity.Guest) error {
	r.store.mu.Lock()
	for id, guest := range r.store.guests {
		if guest.BookingID == bookingID && !guest.IsOrganiser {
			delete(r.store.guests, id)
		}
	}
	r.store.mu.Unlock()
	return r.CreateBatchTx(ctx, tx, guests)
}

func (r *fakeGuestRepo) UpdateOrganiserNameTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, name string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, guest := range r.store.guests {
		if guest.BookingID == bookingID && guest.IsOrganiser {
			guest.GuestName = name
		}
	}
	return nil
}

// guestsOf sorts organiser-first then by creation time. Callers hold
// the mutex.
func (s *fakeStore) guestsOf(bookingID uuid.UUID) []*entity.Guest {
	var guests []*entity.Guest
	for _, guest := range s.guests {
		if guest.BookingID == bookingID {
			copied := *guest
			guests = append(guests, &copied)
		}
	}
	sort.Slice(guests, func(i, j int) bool {
		if guests[i].IsOrganiser != guests[j].IsOrganiser {
			return guests[i].IsOrganiser
		}
		return guests[i].CreatedAt.Before(guests[j].CreatedAt)
	})
	return guests
}

// ---------------- payment / events ----------------

type chargeCall struct {
	CardToken string
	Amount    payment.Amount
	Reference string
}

type refundCall struct {
	PaymentID string
	Amount    payment.Amount
	Reason    string
}

type fakeCharger struct {
	mu      sync.Mutex
	charges []chargeCall
	refunds []refundCall
	decline bool
}

func (c *fakeCharger) Charge(ctx context.Context, cardToken string, amount payment.Amount, reference string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.decline {
		return "", payment.ErrDeclined
	}
	c.charges = append(c.charges, chargeCall{CardToken: cardToken, Amount: amount, Reference: reference})
	return uuid.NewString(), nil
}

func (c *fakeCharger) Refund(ctx context.Context, paymentID string, amount payment.Amount, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refunds = append(c.refunds, refundCall{PaymentID: paymentID, Amount: amount, Reason: reason})
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.BookingConfirmedEvent
}

func (p *fakePublisher) PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// ---------------- wiring shortcut ----------------

type testEnv struct {
	store     *fakeStore
	repo      *repository.Repository
	charger   *fakeCharger
	publisher *fakePublisher
	tokens    *token.Issuer
	config    *utils.Config
	service   *Service
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	repo := newTestRepository(store)
	charger := &fakeCharger{}
	publisher := &fakePublisher{}
	config := testConfig()
	tokens := token.NewIssuer(config.Link.Secret)

	return &testEnv{
		store:     store,
		repo:      repo,
		charger:   charger,
		publisher: publisher,
		tokens:    tokens,
		config:    config,
		service:   NewService(repo, charger, tokens, publisher, config, zap.NewNop()),
	}
}
