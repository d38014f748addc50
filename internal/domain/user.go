package domain

import "time"

type SessionID string

// Session is the client-side record of an authenticated backend session.
// Exactly one session is held at a time; it is cleared the moment a profile
// fetch made with it fails.
type Session struct {
	ID         SessionID
	Login      string
	ObtainedAt time.Time
}

type User struct {
	ID        int64
	Login     string
	FullName  string
	Balance   float64
	Phone     string
	Discount  float64
	Created   time.Time
	LastLogin time.Time
}

type Credentials struct {
	Login    string
	Password string
}

// MinPasswordLen mirrors the backend's registration policy.
const MinPasswordLen = 6

func (c Credentials) Validate() error {
	if c.Login == "" || c.Password == "" {
		return ErrEmptyCredentials
	}
	return nil
}

// ValidateRegistration checks the registration form: both fields present,
// password long enough and matching its confirmation.
func ValidateRegistration(c Credentials, confirm string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	if c.Password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// TelegramUser carries the unsafely-parsed profile fields the host bridge
// exposes alongside init data. Display only, never trusted for auth.
type TelegramUser struct {
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
}
