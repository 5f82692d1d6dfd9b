package booking

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/medilink-hq/medilink-api/exceptions"
	"github.com/medilink-hq/medilink-api/models"
)

const GuestPlaceholderName = "Guest Patient"

// GuestDetails is the inline demographic payload of a no-account booking. It
// never becomes a User or a PatientProfile.
type GuestDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone" validate:"required"`
	Age     uint   `json:"age" validate:"required"`
	Gender  string `json:"gender" validate:"required"`
	CNIC    string `json:"cnic" validate:"required"`
	History string `json:"history"`
}

// PatientRef is the resolved patient side of a booking: exactly one of
// Profile / Guest is set.
type PatientRef struct {
	Profile *models.PatientProfile
	Guest   *GuestDetails
}

func (r *PatientRef) Registered() bool {
	return r.Profile != nil
}

// ProfileStore is the slice of the store the resolver needs.
type ProfileStore interface {
	PatientProfileByUserID(userID uint) (*models.PatientProfile, error)
	UserByID(id uint) (*models.User, error)
}

// PatientResolver turns a booking request into a PatientRef. Profile creation
// at registration and booking can race, so the profile lookup retries a fixed
// number of times with a short backoff before failing.
type PatientResolver struct {
	Store    ProfileStore
	Attempts int
	Backoff  time.Duration
}

func NewPatientResolver(store ProfileStore) *PatientResolver {
	return &PatientResolver{
		Store:    store,
		Attempts: 3,
		Backoff:  150 * time.Millisecond,
	}
}

// Resolve maps (userID, guest details) onto a PatientRef. userID 0 means no
// authenticated identity. This function never creates a profile as a side
// effect of booking.
func (pr *PatientResolver) Resolve(userID uint, guest *GuestDetails) (*PatientRef, error) {
	if userID == 0 {
		return pr.resolveGuest(guest)
	}
	return pr.resolveRegistered(userID)
}

// Guest bookings favour availability over completeness: a missing name gets a
// placeholder instead of a rejection.
func (pr *PatientResolver) resolveGuest(guest *GuestDetails) (*PatientRef, error) {
	if guest == nil {
		return nil, exceptions.NewValidation("Guest details are required for unauthenticated bookings")
	}
	g := *guest
	if g.Name == "" {
		g.Name = GuestPlaceholderName
	}
	return &PatientRef{Guest: &g}, nil
}

// The registered path is the one that fails closed: a profile that stays
// incomplete after backfilling from the user record is rejected with the exact
// missing fields.
func (pr *PatientResolver) resolveRegistered(userID uint) (*PatientRef, error) {
	profile, err := pr.lookupWithRetry(userID)
	if err != nil {
		return nil, err
	}

	if profile.Name == "" || profile.Phone == "" {
		if user, uerr := pr.Store.UserByID(userID); uerr == nil {
			if profile.Name == "" {
				profile.Name = user.Name
			}
			if profile.Phone == "" {
				profile.Phone = user.Phone
			}
		}
	}

	var missing []string
	if profile.CNIC == "" {
		missing = append(missing, "CNIC")
	}
	if profile.Age == 0 {
		missing = append(missing, "Age")
	}
	if profile.Gender == "" {
		missing = append(missing, "Gender")
	}
	if profile.Phone == "" {
		missing = append(missing, "Phone")
	}
	if len(missing) > 0 {
		return nil, exceptions.NewIncompleteProfile(missing)
	}

	return &PatientRef{Profile: profile}, nil
}

func (pr *PatientResolver) lookupWithRetry(userID uint) (*models.PatientProfile, error) {
	var lastErr error
	for attempt := 0; attempt < pr.Attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(pr.Backoff)
		}
		profile, err := pr.lookupOnce(userID)
		if err == nil {
			return profile, nil
		}
		if !exceptions.IsTransient(err) {
			return nil, err
		}
		lastErr = err
	}
	// Exhausted retries fold the transient race into a plain not-found.
	return nil, exceptions.NewNotFound("Patient profile not found").WithCause(lastErr)
}

// lookupOnce classifies one store lookup: a missing row is a retryable race,
// anything else is an infrastructure failure that aborts immediately.
func (pr *PatientResolver) lookupOnce(userID uint) (*models.PatientProfile, error) {
	profile, err := pr.Store.PatientProfileByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, exceptions.NewTransientRace("Patient profile not visible yet", err)
	}
	return nil, exceptions.NewInternal("Failed to load patient profile", err)
}

// gormProfileStore backs the resolver with the shared GORM handle.
type gormProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) ProfileStore {
	return &gormProfileStore{db: db}
}

func (s *gormProfileStore) PatientProfileByUserID(userID uint) (*models.PatientProfile, error) {
	var profile models.PatientProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *gormProfileStore) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
