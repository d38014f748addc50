package shm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

// wirePaySystem tolerates both catalog shapes: numeric id rows and keyed
// rows carrying the shm_url payment template.
type wirePaySystem struct {
	ID       json.Number `json:"id"`
	Key      string      `json:"paysystem"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	PayURL   string      `json:"shm_url"`
}

func (p wirePaySystem) toDomain() domain.PaySystem {
	id := p.Key
	if id == "" {
		id = p.ID.String()
	}

	return domain.PaySystem{
		ID:       id,
		Name:     p.Name,
		Category: p.Category,
		PayURL:   p.PayURL,
	}
}

type wireForecastItem struct {
	Name   string     `json:"name"`
	Total  float64    `json:"total"`
	Status wireStatus `json:"status"`
}

type wireForecast struct {
	Balance float64            `json:"balance"`
	Bonuses float64            `json:"bonuses"`
	Total   float64            `json:"total"`
	Items   []wireForecastItem `json:"items"`
}

func (c *Client) PaySystems(ctx context.Context) ([]domain.PaySystem, error) {
	var entries []wirePaySystem
	if err := c.get(ctx, "/user/pay/paysystems", &entries); err != nil {
		return nil, fmt.Errorf("fetch pay systems: %w", err)
	}

	systems := make([]domain.PaySystem, 0, len(entries))
	for _, entry := range entries {
		systems = append(systems, entry.toDomain())
	}
	return systems, nil
}

func (c *Client) Forecast(ctx context.Context) (domain.Forecast, error) {
	var forecast wireForecast
	if err := c.get(ctx, "/user/pay/forecast", &forecast); err != nil {
		return domain.Forecast{}, fmt.Errorf("fetch forecast: %w", err)
	}

	items := make([]domain.ForecastItem, 0, len(forecast.Items))
	for _, item := range forecast.Items {
		items = append(items, domain.ForecastItem{
			Name:   item.Name,
			Total:  item.Total,
			Status: item.Status.toDomain(),
		})
	}

	return domain.Forecast{
		Balance: forecast.Balance,
		Bonuses: forecast.Bonuses,
		Total:   forecast.Total,
		Items:   items,
	}, nil
}

func (c *Client) CreatePayment(ctx context.Context, amount int, paySystemID string) (string, error) {
	body := map[string]any{
		"amount":       amount,
		"paysystem_id": paySystemID,
	}

	var response struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := c.put(ctx, "/user/pay", body, &response); err != nil {
		return "", fmt.Errorf("create payment: %w", err)
	}
	return response.RedirectURL, nil
}

// PaymentRedirect resolves a pay-system URL with redirect following
// disabled: the Location header wins, then a url/redirect_url body field,
// then the original URL as-is.
func (c *Client) PaymentRedirect(ctx context.Context, rawURL string) (string, error) {
	client := *c.http
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create payment request: %w", err)
	}

	response, err := client.Do(request)
	if err != nil {
		return "", normalizeTransportError(http.MethodGet, rawURL, err)
	}
	defer response.Body.Close()

	if location := response.Header.Get("Location"); location != "" {
		return location, nil
	}

	var payload struct {
		URL         string `json:"url"`
		RedirectURL string `json:"redirect_url"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err == nil {
		if payload.URL != "" {
			return payload.URL, nil
		}
		if payload.RedirectURL != "" {
			return payload.RedirectURL, nil
		}
	}

	return rawURL, nil
}
