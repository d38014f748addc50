package shm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

type wireCatalogService struct {
	ServiceID   int64   `json:"service_id"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	PeriodCost  float64 `json:"period_cost"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func (s wireCatalogService) toDomain() domain.CatalogService {
	return domain.CatalogService{
		ID:          s.ServiceID,
		Name:        s.Name,
		Cost:        s.Cost,
		PeriodCost:  s.PeriodCost,
		Category:    s.Category,
		Description: s.Description,
	}
}

// wireOwnedService tolerates both inline name/cost and the nested service
// object some backend versions return.
type wireOwnedService struct {
	UserServiceID int64               `json:"user_service_id"`
	ServiceID     int64               `json:"service_id"`
	Name          string              `json:"name"`
	Status        wireStatus          `json:"status"`
	Cost          *float64            `json:"cost"`
	Discount      float64             `json:"discount"`
	Created       wireTime            `json:"created"`
	Expire        wireTime            `json:"expire"`
	Service       *wireCatalogService `json:"service"`
}

func (s wireOwnedService) toDomain() domain.OwnedService {
	owned := domain.OwnedService{
		ID:        s.UserServiceID,
		ServiceID: s.ServiceID,
		Name:      s.Name,
		Status:    s.Status.toDomain(),
		Discount:  s.Discount,
		Created:   s.Created.Time,
		Expire:    s.Expire.Time,
	}

	if s.Cost != nil {
		owned.Cost = *s.Cost
	}
	if s.Service != nil {
		if owned.Name == "" {
			owned.Name = s.Service.Name
		}
		if s.Cost == nil {
			owned.Cost = s.Service.Cost
		}
	}

	return owned
}

func (c *Client) Catalog(ctx context.Context) ([]domain.CatalogService, error) {
	var entries []wireCatalogService
	if err := c.get(ctx, "/service/order", &entries); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	catalog := make([]domain.CatalogService, 0, len(entries))
	for _, entry := range entries {
		catalog = append(catalog, entry.toDomain())
	}
	return catalog, nil
}

func (c *Client) CatalogService(ctx context.Context, id int64) (domain.CatalogService, error) {
	var entry wireCatalogService
	if err := c.get(ctx, "/service/order/"+strconv.FormatInt(id, 10), &entry); err != nil {
		return domain.CatalogService{}, fmt.Errorf("fetch catalog service %d: %w", id, err)
	}
	return entry.toDomain(), nil
}

func (c *Client) Order(ctx context.Context, serviceID int64, settings map[string]any) (domain.OwnedService, error) {
	body := map[string]any{"service_id": serviceID}
	if settings != nil {
		body["settings"] = settings
	}

	var placed wireOwnedService
	if err := c.put(ctx, "/service/order", body, &placed); err != nil {
		return domain.OwnedService{}, fmt.Errorf("place order for service %d: %w", serviceID, err)
	}
	return placed.toDomain(), nil
}

func (c *Client) OwnedServices(ctx context.Context) ([]domain.OwnedService, error) {
	var entries []wireOwnedService
	if err := c.get(ctx, "/user/service", &entries); err != nil {
		return nil, fmt.Errorf("fetch user services: %w", err)
	}

	owned := make([]domain.OwnedService, 0, len(entries))
	for _, entry := range entries {
		owned = append(owned, entry.toDomain())
	}
	return owned, nil
}

func (c *Client) OwnedService(ctx context.Context, id int64) (domain.OwnedService, error) {
	var entry wireOwnedService
	if err := c.get(ctx, "/user/service/"+strconv.FormatInt(id, 10), &entry); err != nil {
		return domain.OwnedService{}, fmt.Errorf("fetch user service %d: %w", id, err)
	}
	return entry.toDomain(), nil
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	if err := c.delete(ctx, "/user/service/"+strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("delete user service %d: %w", id, err)
	}
	return nil
}
