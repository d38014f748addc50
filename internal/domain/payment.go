package domain

import "math"

// PaySystem is a payment method configured on the backend. PayURL is a
// template; the payment link is the template with the amount appended.
type PaySystem struct {
	ID       string
	Name     string
	Category string
	PayURL   string
}

// Forecast is the server-computed projection of amounts owed across all
// owned services.
type Forecast struct {
	Balance float64
	Bonuses float64
	Total   float64
	Items   []ForecastItem
}

type ForecastItem struct {
	Name   string
	Total  float64
	Status ServiceStatus
}

// HasUnpaid reports whether any forecast line item is in the not-paid state.
func (f Forecast) HasUnpaid() bool {
	for _, item := range f.Items {
		if item.Status == StatusNotPaid {
			return true
		}
	}
	return false
}

// Debt is the outstanding amount to fund, rounded up to whole currency units
// and clamped at zero.
func (f Forecast) Debt() int {
	return ceilAmount(f.Total - f.Balance - f.Bonuses)
}

// Shortfall is how much is missing to cover cost from balance, rounded up and
// clamped at zero.
func Shortfall(cost, balance float64) int {
	return ceilAmount(cost - balance)
}

func ceilAmount(v float64) int {
	amount := int(math.Ceil(v))
	if amount < 0 {
		return 0
	}
	return amount
}
