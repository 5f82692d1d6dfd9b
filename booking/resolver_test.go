package booking

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/medilink-hq/medilink-api/exceptions"
	"github.com/medilink-hq/medilink-api/models"
)

// fakeStore serves the profile after failAttempts not-found responses, which
// models a profile row committing shortly after the booking arrives.
type fakeStore struct {
	profile      *models.PatientProfile
	user         *models.User
	failAttempts int
	hardErr      error
	calls        int
}

func (f *fakeStore) PatientProfileByUserID(userID uint) (*models.PatientProfile, error) {
	f.calls++
	if f.hardErr != nil {
		return nil, f.hardErr
	}
	if f.calls <= f.failAttempts || f.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeStore) UserByID(id uint) (*models.User, error) {
	if f.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func newTestResolver(store ProfileStore) *PatientResolver {
	return &PatientResolver{Store: store, Attempts: 3, Backoff: time.Millisecond}
}

func completeProfile() *models.PatientProfile {
	return &models.PatientProfile{
		UserID: 7,
		Name:   "Ayesha Khan",
		Phone:  "03001234567",
		CNIC:   "35202-1234567-1",
		Age:    30,
		Gender: "female",
	}
}

func TestResolveGuestRequiresDetails(t *testing.T) {
	resolver := newTestResolver(&fakeStore{})

	_, err := resolver.Resolve(0, nil)
	if err == nil {
		t.Fatal("expected an error for anonymous booking without guest details")
	}
	var appErr *exceptions.Error
	if !errors.As(err, &appErr) || appErr.StatusCode != 400 {
		t.Errorf("expected a 400, got %v", err)
	}
}

func TestResolveGuestPlaceholderName(t *testing.T) {
	resolver := newTestResolver(&fakeStore{})

	ref, err := resolver.Resolve(0, &GuestDetails{
		Phone:  "03001112222",
		Age:    30,
		Gender: "male",
		CNIC:   "35202-7654321-9",
	})
	if err != nil {
		t.Fatal(err)
	}
	if ref.Registered() {
		t.Fatal("guest resolution produced a registered ref")
	}
	if ref.Guest.Name != GuestPlaceholderName {
		t.Errorf("expected placeholder name, got %q", ref.Guest.Name)
	}
}

func TestResolveRegistered(t *testing.T) {
	store := &fakeStore{profile: completeProfile()}
	resolver := newTestResolver(store)

	ref, err := resolver.Resolve(7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ref.Registered() {
		t.Fatal("expected a registered ref")
	}
	if ref.Profile.CNIC != "35202-1234567-1" {
		t.Errorf("unexpected profile: %+v", ref.Profile)
	}
}

func TestResolveRetriesThroughRace(t *testing.T) {
	// Profile becomes visible on the third lookup, inside the retry window.
	store := &fakeStore{profile: completeProfile(), failAttempts: 2}
	resolver := newTestResolver(store)

	ref, err := resolver.Resolve(7, nil)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if !ref.Registered() {
		t.Fatal("expected a registered ref")
	}
	if store.calls != 3 {
		t.Errorf("expected 3 lookups, got %d", store.calls)
	}
}

func TestResolveExhaustsRetries(t *testing.T) {
	store := &fakeStore{}
	resolver := newTestResolver(store)

	_, err := resolver.Resolve(7, nil)
	if err == nil {
		t.Fatal("expected failure when no profile ever appears")
	}
	var appErr *exceptions.Error
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("expected a 404 after exhaustion, got %v", err)
	}
	if store.calls != 3 {
		t.Errorf("expected exactly 3 bounded attempts, got %d", store.calls)
	}
}

func TestResolveAbortsOnInfrastructureError(t *testing.T) {
	// Only a missing row counts as a retryable race; a broken store fails
	// immediately without burning the retry budget.
	store := &fakeStore{hardErr: errors.New("connection refused")}
	resolver := newTestResolver(store)

	_, err := resolver.Resolve(7, nil)
	if err == nil {
		t.Fatal("expected failure on store error")
	}
	var appErr *exceptions.Error
	if !errors.As(err, &appErr) || appErr.StatusCode != 500 {
		t.Errorf("expected a 500, got %v", err)
	}
	if exceptions.IsTransient(err) {
		t.Error("an infrastructure failure must not be classified transient")
	}
	if store.calls != 1 {
		t.Errorf("expected a single lookup, got %d", store.calls)
	}
}

func TestLookupClassifiesMissingRowAsTransient(t *testing.T) {
	resolver := newTestResolver(&fakeStore{})

	_, err := resolver.lookupOnce(7)
	if !exceptions.IsTransient(err) {
		t.Errorf("a missing profile row should be a retryable race, got %v", err)
	}
}

func TestResolveBackfillsFromUser(t *testing.T) {
	profile := completeProfile()
	profile.Name = ""
	profile.Phone = ""
	store := &fakeStore{
		profile: profile,
		user:    &models.User{ID: 7, Name: "Ayesha Khan", Phone: "03009998877"},
	}
	resolver := newTestResolver(store)

	ref, err := resolver.Resolve(7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ref.Profile.Name != "Ayesha Khan" || ref.Profile.Phone != "03009998877" {
		t.Errorf("backfill failed: %+v", ref.Profile)
	}
}

func TestResolveFailsClosedOnIncompleteProfile(t *testing.T) {
	profile := completeProfile()
	profile.CNIC = ""
	store := &fakeStore{profile: profile, user: &models.User{ID: 7}}
	resolver := newTestResolver(store)

	_, err := resolver.Resolve(7, nil)
	if err == nil {
		t.Fatal("expected an incomplete-profile rejection")
	}
	var appErr *exceptions.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if appErr.StatusCode != 400 {
		t.Errorf("expected a 400, got %d", appErr.StatusCode)
	}
	if !reflect.DeepEqual(appErr.MissingFields, []string{"CNIC"}) {
		t.Errorf("expected missing fields [CNIC], got %v", appErr.MissingFields)
	}
}
