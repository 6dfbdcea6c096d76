package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	assessmentRepo "hrbridge/database/repository/assessment"
	slotRepo "hrbridge/database/repository/slot"
	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]models.MeetingSlot
}

func newFakeSlotRepo(slots ...models.MeetingSlot) *fakeSlotRepo {
	f := &fakeSlotRepo{slots: make(map[string]models.MeetingSlot)}
	for _, s := range slots {
		f.slots[s.ID] = s
	}
	return f
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *models.MeetingSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if s.HRReviewerID == slot.HRReviewerID && s.Date == slot.Date && s.Start == slot.Start {
			return slotRepo.ErrDuplicateStart
		}
		if slot.SelfAssessmentID != "" && s.SelfAssessmentID == slot.SelfAssessmentID {
			return slotRepo.ErrAssessmentLinked
		}
	}
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	f.slots[slot.ID] = *slot
	return nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id string) (*models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	out := s
	return &out, nil
}

func (f *fakeSlotRepo) FindAvailable(ctx context.Context, flt slotRepo.AvailableFilter) ([]models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	today := flt.Now.Format(models.DateLayout)
	minute := flt.Now.Hour()*60 + flt.Now.Minute()
	out := []models.MeetingSlot{}
	for _, s := range f.slots {
		if s.IsBooked {
			continue
		}
		if s.Date < today || (s.Date == today && s.Start < minute) {
			continue
		}
		if flt.HRReviewerID != "" && s.HRReviewerID != flt.HRReviewerID {
			continue
		}
		if flt.SelfAssessmentID != "" && s.SelfAssessmentID != flt.SelfAssessmentID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSlotRepo) FindBookedBy(ctx context.Context, employeeID string, now time.Time) ([]models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.MeetingSlot{}
	for _, s := range f.slots {
		if s.IsBooked && s.BookedByEmployee == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) FindForAdmin(ctx context.Context, flt slotRepo.AdminFilter) ([]models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.MeetingSlot{}
	for _, s := range f.slots {
		if flt.HRReviewerID != "" && s.HRReviewerID != flt.HRReviewerID {
			continue
		}
		if flt.DateFrom != "" && s.Date < flt.DateFrom {
			continue
		}
		if flt.DateTo != "" && s.Date > flt.DateTo {
			continue
		}
		if flt.IsBooked != nil && s.IsBooked != *flt.IsBooked {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSlotRepo) Book(ctx context.Context, slotID, employeeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.IsBooked {
		return false, nil
	}
	s.IsBooked = true
	s.BookedByEmployee = employeeID
	s.UpdatedAt = time.Now()
	f.slots[slotID] = s
	return true, nil
}

func (f *fakeSlotRepo) Unbook(ctx context.Context, slotID, employeeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || !s.IsBooked || s.BookedByEmployee != employeeID {
		return false, nil
	}
	s.IsBooked = false
	s.BookedByEmployee = ""
	s.UpdatedAt = time.Now()
	f.slots[slotID] = s
	return true, nil
}

func (f *fakeSlotRepo) ApplyPatch(ctx context.Context, slotID string, expectBooked bool, set bson.M) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.IsBooked != expectBooked {
		return false, nil
	}
	if v, ok := set["date"].(string); ok {
		s.Date = v
	}
	if v, ok := set["start"].(int); ok {
		s.Start = v
	}
	if v, ok := set["end"].(int); ok {
		s.End = v
	}
	if v, ok := set["self_assessment_id"].(string); ok {
		s.SelfAssessmentID = v
	}
	if v, ok := set["is_booked"].(bool); ok {
		s.IsBooked = v
		if !v {
			s.BookedByEmployee = ""
		}
	}
	s.UpdatedAt = time.Now()
	f.slots[slotID] = s
	return true, nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[id]; !ok {
		return slotRepo.ErrNotFound
	}
	delete(f.slots, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	out := u
	return &out, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	return nil
}

type fakeAssessmentRepo struct {
	assessments map[string]models.SelfAssessment
}

func newFakeAssessmentRepo(items ...models.SelfAssessment) *fakeAssessmentRepo {
	f := &fakeAssessmentRepo{assessments: make(map[string]models.SelfAssessment)}
	for _, a := range items {
		f.assessments[a.ID] = a
	}
	return f
}

func (f *fakeAssessmentRepo) Create(ctx context.Context, a *models.SelfAssessment) error {
	for _, existing := range f.assessments {
		if existing.EmployeeID == a.EmployeeID && existing.QuarterNumber == a.QuarterNumber && existing.Year == a.Year {
			return assessmentRepo.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.assessments[a.ID] = *a
	return nil
}

func (f *fakeAssessmentRepo) GetByID(ctx context.Context, id string) (*models.SelfAssessment, error) {
	a, ok := f.assessments[id]
	if !ok {
		return nil, assessmentRepo.ErrNotFound
	}
	out := a
	return &out, nil
}

func (f *fakeAssessmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]models.SelfAssessment, error) {
	out := []models.SelfAssessment{}
	for _, a := range f.assessments {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssessmentRepo) ExistsForEmployee(ctx context.Context, employeeID string) (bool, error) {
	for _, a := range f.assessments {
		if a.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

type notifyCall struct {
	SlotID    string
	Recipient string
	Event     string
}

type recorderDispatcher struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (r *recorderDispatcher) Notify(ctx context.Context, slot models.MeetingSlot, recipient models.User, event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notifyCall{SlotID: slot.ID, Recipient: recipient.ID, Event: event})
}

func (r *recorderDispatcher) all() []notifyCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifyCall, len(r.calls))
	copy(out, r.calls)
	return out
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(models.DateLayout)
}

func pastDate() string {
	return time.Now().AddDate(0, 0, -7).Format(models.DateLayout)
}

func futureSlot(id, reviewerID string) models.MeetingSlot {
	return models.MeetingSlot{
		ID:           id,
		HRReviewerID: reviewerID,
		Date:         futureDate(),
		Start:        9 * 60,
		End:          9*60 + 30,
	}
}

func newEngine(slots *fakeSlotRepo, users *fakeUserRepo, assessments *fakeAssessmentRepo, notifier *recorderDispatcher) *DefaultBookingEngine {
	return &DefaultBookingEngine{
		Slots:       slots,
		Users:       users,
		Assessments: assessments,
		Notifier:    notifier,
		Logger:      zap.NewNop(),
	}
}

var (
	alice = models.User{ID: "emp-alice", Username: "alice", Email: "alice@corp.test", Role: models.RoleEmployee}
	bob   = models.User{ID: "emp-bob", Username: "bob", Email: "bob@corp.test", Role: models.RoleEmployee}
	hr    = models.User{ID: "hr-1", Username: "hrlead", Email: "hr@corp.test", Role: models.RoleAdmin}
)

func TestBookClaimsAvailableSlot(t *testing.T) {
	slots := newFakeSlotRepo(futureSlot("s1", hr.ID))
	assessments := newFakeAssessmentRepo(models.SelfAssessment{ID: "a1", EmployeeID: alice.ID, QuarterNumber: 1, Year: 2026})
	notifier := &recorderDispatcher{}
	e := newEngine(slots, newFakeUserRepo(alice, hr), assessments, notifier)

	got, err := e.Book(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	require.NoError(t, err)
	assert.True(t, got.IsBooked)
	assert.Equal(t, alice.ID, got.BookedByEmployee)

	calls := notifier.all()
	require.Len(t, calls, 1)
	assert.Equal(t, models.MeetingEventBooked, calls[0].Event)
	assert.Equal(t, alice.ID, calls[0].Recipient)
}

func TestBookOwnSlotAgainIsIdempotent(t *testing.T) {
	s := futureSlot("s1", hr.ID)
	s.IsBooked = true
	s.BookedByEmployee = alice.ID
	slots := newFakeSlotRepo(s)
	assessments := newFakeAssessmentRepo(models.SelfAssessment{ID: "a1", EmployeeID: alice.ID})
	notifier := &recorderDispatcher{}
	e := newEngine(slots, newFakeUserRepo(alice, hr), assessments, notifier)

	got, err := e.Book(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.BookedByEmployee)
	assert.Empty(t, notifier.all(), "re-booking an already held slot must not re-notify")
}

func TestBookUnbookRebookRoundTrip(t *testing.T) {
	slots := newFakeSlotRepo(futureSlot("s1", hr.ID))
	assessments := newFakeAssessmentRepo(models.SelfAssessment{ID: "a1", EmployeeID: alice.ID, QuarterNumber: 2, Year: 2026})
	notifier := &recorderDispatcher{}
	e := newEngine(slots, newFakeUserRepo(alice, hr), assessments, notifier)
	p := models.Principal{ID: alice.ID, Role: models.RoleEmployee}

	got, err := e.Book(context.Background(), p, "s1")
	require.NoError(t, err)
	require.True(t, got.IsBooked)

	got, err = e.Unbook(context.Background(), p, "s1")
	require.NoError(t, err)
	require.False(t, got.IsBooked)
	require.Empty(t, got.BookedByEmployee)

	got, err = e.Book(context.Background(), p, "s1")
	require.NoError(t, err)
	assert.True(t, got.IsBooked)
	assert.Equal(t, alice.ID, got.BookedByEmployee)

	events := []string{}
	for _, call := range notifier.all() {
		events = append(events, call.Event)
	}
	assert.Equal(t, []string{
		models.MeetingEventBooked,
		models.MeetingEventUnbooked,
		models.MeetingEventBooked,
	}, events)
}

func TestBookHeldByOtherEmployeeConflicts(t *testing.T) {
	s := futureSlot("s1", hr.ID)
	s.IsBooked = true
	s.BookedByEmployee = bob.ID
	e := newEngine(newFakeSlotRepo(s), newFakeUserRepo(alice, bob, hr),
		newFakeAssessmentRepo(models.SelfAssessment{ID: "a1", EmployeeID: alice.ID}), &recorderDispatcher{})

	_, err := e.Book(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	var conflict models.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestBookPastSlotRejected(t *testing.T) {
	s := futureSlot("s1", hr.ID)
	s.Date = pastDate()
	e := newEngine(newFakeSlotRepo(s), newFakeUserRepo(alice, hr),
		newFakeAssessmentRepo(models.SelfAssessment{ID: "a1", EmployeeID: alice.ID}), &recorderDispatcher{})

	_, err := e.Book(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	var invalid models.ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestBookPastSlotHeldByOtherConflicts(t *testing.T) {
	// The booking-state checks run before the past-slot check, so a past
	// slot held by someone else reads as a conflict, not invalid input.
	s := futureSlot("s1", hr.ID)
	s.Date = pastDate()
	s.IsBooked = true
	s.BookedByEmployee = bob.ID
	e := newEngine(newFakeSlotRepo(s), newFakeUserRepo(alice, bob, hr),
		newFakeAssessmentRepo(models.SelfAssessment{ID: "a1", EmployeeID: alice.ID}), &recorderDispatcher{})

	_, err := e.Book(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	var conflict models.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestStartsBeforeMinute(t *testing.T) {
	slot := &models.MeetingSlot{Date: "2026-09-15", Start: 10 * 60}

	// Mid-minute "now" does not make a slot starting this minute past.
	now := time.Date(2026, 9, 15, 10, 0, 30, 0, time.Local)
	assert.False(t, startsBeforeMinute(slot, now))

	now = time.Date(2026, 9, 15, 10, 1, 0, 0, time.Local)
	assert.True(t, startsBeforeMinute(slot, now))

	now = time.Date(2026, 9, 15, 9, 59, 59, 0, time.Local)
	assert.False(t, startsBeforeMinute(slot, now))
}

func TestBookRequiresSelfAssessmentOnRecord(t *testing.T) {
	e := newEngine(newFakeSlotRepo(futureSlot("s1", hr.ID)), newFakeUserRepo(alice, hr),
		newFakeAssessmentRepo(), &recorderDispatcher{})

	_, err := e.Book(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	var precondition models.PreconditionError
	require.ErrorAs(t, err, &precondition)
}

func TestBookLinkedAssessmentMustBelongToCaller(t *testing.T) {
	s := futureSlot("s1", hr.ID)
	s.SelfAssessmentID = "a-bob"
	assessments := newFakeAssessmentRepo(
		models.SelfAssessment{ID: "a-bob", EmployeeID: bob.ID},
		models.SelfAssessment{ID: "a-alice", EmployeeID: alice.ID},
	)
	e := newEngine(newFakeSlotRepo(s), newFakeUserRepo(alice, bob, hr), assessments, &recorderDispatcher{})

	_, err := e.Book(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	var authz models.AuthorizationError
	require.ErrorAs(t, err, &authz)

	got, err := e.Book(context.Background(), models.Principal{ID: bob.ID, Role: models.RoleEmployee}, "s1")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.BookedByEmployee)
}

func TestBookRejectsStaff(t *testing.T) {
	e := newEngine(newFakeSlotRepo(futureSlot("s1", hr.ID)), newFakeUserRepo(hr),
		newFakeAssessmentRepo(), &recorderDispatcher{})

	_, err := e.Book(context.Background(), models.Principal{ID: hr.ID, Role: models.RoleAdmin}, "s1")
	var authz models.AuthorizationError
	require.ErrorAs(t, err, &authz)
}

func TestBookUnknownSlot(t *testing.T) {
	e := newEngine(newFakeSlotRepo(), newFakeUserRepo(alice),
		newFakeAssessmentRepo(models.SelfAssessment{ID: "a1", EmployeeID: alice.ID}), &recorderDispatcher{})

	_, err := e.Book(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "nope")
	var notFound models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestBookConcurrentSingleWinner(t *testing.T) {
	const contenders = 16

	slots := newFakeSlotRepo(futureSlot("s1", hr.ID))
	users := newFakeUserRepo(hr)
	assessments := newFakeAssessmentRepo()
	for i := 0; i < contenders; i++ {
		u := models.User{ID: uuid.NewString(), Username: uuid.NewString(), Role: models.RoleEmployee}
		users.users[u.ID] = u
		assessments.assessments[uuid.NewString()] = models.SelfAssessment{ID: uuid.NewString(), EmployeeID: u.ID}
	}
	notifier := &recorderDispatcher{}
	e := newEngine(slots, users, assessments, notifier)

	var wg sync.WaitGroup
	var winners int32
	var winnersMu sync.Mutex
	winnerIDs := map[string]bool{}
	for id := range users.users {
		if id == hr.ID {
			continue
		}
		wg.Add(1)
		go func(employeeID string) {
			defer wg.Done()
			got, err := e.Book(context.Background(), models.Principal{ID: employeeID, Role: models.RoleEmployee}, "s1")
			if err == nil {
				winnersMu.Lock()
				winners++
				winnerIDs[got.BookedByEmployee] = true
				winnersMu.Unlock()
				return
			}
			var conflict models.ConflictError
			assert.ErrorAs(t, err, &conflict)
		}(id)
	}
	wg.Wait()

	assert.EqualValues(t, 1, winners, "exactly one contender may win the slot")
	assert.Len(t, winnerIDs, 1)
	assert.Len(t, notifier.all(), 1, "only the winner is notified")
}

func TestUnbookReleasesOwnBooking(t *testing.T) {
	s := futureSlot("s1", hr.ID)
	s.IsBooked = true
	s.BookedByEmployee = alice.ID
	notifier := &recorderDispatcher{}
	e := newEngine(newFakeSlotRepo(s), newFakeUserRepo(alice, hr),
		newFakeAssessmentRepo(models.SelfAssessment{ID: "a1", EmployeeID: alice.ID}), notifier)

	got, err := e.Unbook(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	require.NoError(t, err)
	assert.False(t, got.IsBooked)
	assert.Empty(t, got.BookedByEmployee)

	calls := notifier.all()
	require.Len(t, calls, 1)
	assert.Equal(t, models.MeetingEventUnbooked, calls[0].Event)
}

func TestUnbookUnbookedSlotConflicts(t *testing.T) {
	e := newEngine(newFakeSlotRepo(futureSlot("s1", hr.ID)), newFakeUserRepo(alice, hr),
		newFakeAssessmentRepo(), &recorderDispatcher{})

	_, err := e.Unbook(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	var conflict models.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUnbookForeignBookingRejected(t *testing.T) {
	s := futureSlot("s1", hr.ID)
	s.IsBooked = true
	s.BookedByEmployee = bob.ID
	e := newEngine(newFakeSlotRepo(s), newFakeUserRepo(alice, bob, hr),
		newFakeAssessmentRepo(), &recorderDispatcher{})

	_, err := e.Unbook(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	var authz models.AuthorizationError
	require.ErrorAs(t, err, &authz)
}

func TestUnbookPastSlotRejected(t *testing.T) {
	s := futureSlot("s1", hr.ID)
	s.Date = pastDate()
	s.IsBooked = true
	s.BookedByEmployee = alice.ID
	e := newEngine(newFakeSlotRepo(s), newFakeUserRepo(alice, hr),
		newFakeAssessmentRepo(), &recorderDispatcher{})

	_, err := e.Unbook(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, "s1")
	var invalid models.ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestAvailableSlotsFiltersBookedAndPast(t *testing.T) {
	open := futureSlot("open", hr.ID)
	booked := futureSlot("booked", hr.ID)
	booked.Start = 10 * 60
	booked.IsBooked = true
	booked.BookedByEmployee = bob.ID
	past := futureSlot("past", hr.ID)
	past.Date = pastDate()

	e := newEngine(newFakeSlotRepo(open, booked, past), newFakeUserRepo(alice, bob, hr),
		newFakeAssessmentRepo(), &recorderDispatcher{})

	got, err := e.AvailableSlots(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee}, AvailableQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "open", got[0].ID)
}

func TestAvailableSlotsUnknownReviewerIsEmpty(t *testing.T) {
	e := newEngine(newFakeSlotRepo(futureSlot("s1", hr.ID)), newFakeUserRepo(alice, hr),
		newFakeAssessmentRepo(), &recorderDispatcher{})

	got, err := e.AvailableSlots(context.Background(),
		models.Principal{ID: alice.ID, Role: models.RoleEmployee},
		AvailableQuery{HRUsername: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMyBookedSlotsReturnsOwnOnly(t *testing.T) {
	mine := futureSlot("mine", hr.ID)
	mine.IsBooked = true
	mine.BookedByEmployee = alice.ID
	theirs := futureSlot("theirs", hr.ID)
	theirs.Start = 11 * 60
	theirs.IsBooked = true
	theirs.BookedByEmployee = bob.ID

	e := newEngine(newFakeSlotRepo(mine, theirs), newFakeUserRepo(alice, bob, hr),
		newFakeAssessmentRepo(), &recorderDispatcher{})

	got, err := e.MyBookedSlots(context.Background(), models.Principal{ID: alice.ID, Role: models.RoleEmployee})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].ID)
}
