package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromName(t *testing.T) {
	cases := []struct {
		raw  string
		want ServiceStatus
	}{
		{"ACTIVE", StatusActive},
		{"BLOCK", StatusBlocked},
		{"NOT PAID", StatusNotPaid},
		{"DISABLED", StatusDisabled},
		{"", StatusUnknown},
		{"active", StatusUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFromName(tc.raw), "raw=%q", tc.raw)
	}
}

func TestStatusFromCode(t *testing.T) {
	assert.Equal(t, StatusActive, StatusFromCode(1))
	assert.Equal(t, StatusDisabled, StatusFromCode(0))
	assert.Equal(t, StatusBlocked, StatusFromCode(-1))
	assert.Equal(t, StatusUnknown, StatusFromCode(42))
}

func TestForecastDebt(t *testing.T) {
	f := Forecast{Balance: 100, Bonuses: 20, Total: 250.3}
	assert.Equal(t, 131, f.Debt())

	covered := Forecast{Balance: 500, Total: 250}
	assert.Equal(t, 0, covered.Debt(), "surplus clamps to zero")
}

func TestForecastHasUnpaid(t *testing.T) {
	f := Forecast{Items: []ForecastItem{
		{Name: "vps", Status: StatusActive},
		{Name: "dns", Status: StatusNotPaid},
	}}
	assert.True(t, f.HasUnpaid())

	f.Items[1].Status = StatusBlocked
	assert.False(t, f.HasUnpaid())
}

func TestShortfall(t *testing.T) {
	assert.Equal(t, 250, Shortfall(300, 50))
	assert.Equal(t, 0, Shortfall(100, 150))
	assert.Equal(t, 1, Shortfall(100.5, 100), "fractional shortfall rounds up")
}

func TestSanitizeAmount(t *testing.T) {
	assert.Equal(t, 123, SanitizeAmount("1a2b3"))
	assert.Equal(t, 0, SanitizeAmount(""))
	assert.Equal(t, 0, SanitizeAmount("0"))
	assert.Equal(t, 7, SanitizeAmount("007"))
	assert.Equal(t, 0, SanitizeAmount("abc"))
	assert.Equal(t, 500, SanitizeAmount(" 500 ₽"))
}

func TestValidateRegistration(t *testing.T) {
	require.NoError(t, ValidateRegistration(Credentials{Login: "user", Password: "secret1"}, "secret1"))

	err := ValidateRegistration(Credentials{Login: "user"}, "")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	err = ValidateRegistration(Credentials{Login: "user", Password: "short"}, "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = ValidateRegistration(Credentials{Login: "user", Password: "secret1"}, "secret2")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}
