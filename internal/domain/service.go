package domain

import "time"

// CatalogService is an orderable catalog entry. Read-only from the client's
// perspective.
type CatalogService struct {
	ID          int64
	Name        string
	Cost        float64
	PeriodCost  float64
	Category    string
	Description string
}

// OwnedService is a service instance the user has ordered. Its lifecycle
// status is owned by the backend; the client only reads it and may request
// deletion.
type OwnedService struct {
	ID        int64
	ServiceID int64
	Name      string
	Status    ServiceStatus
	Cost      float64
	Discount  float64
	Created   time.Time
	Expire    time.Time
}
