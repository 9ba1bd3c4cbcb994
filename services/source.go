package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"coffee-pickup/models"
)

// OrderSource returns every order placed on the local date of date.
// Implementations fail soft: errors are logged and an empty slice is returned.
type OrderSource interface {
	Orders(ctx context.Context, date time.Time) []models.Order
}

// StaticOrderSource always returns the same orders.
type StaticOrderSource []models.Order

func (s StaticOrderSource) Orders(ctx context.Context, date time.Time) []models.Order {
	return s
}

// HTTPOrderSource fetches orders from the order API as a JSON array.
type HTTPOrderSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPOrderSource(rawURL string, client *http.Client) *HTTPOrderSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPOrderSource{URL: rawURL, Client: client}
}

func (s *HTTPOrderSource) Orders(ctx context.Context, date time.Time) []models.Order {
	orders, err := s.fetch(ctx, date)
	if err != nil {
		log.Printf("Error fetching order list: %v", err)
		return []models.Order{}
	}
	return orders
}

func (s *HTTPOrderSource) fetch(ctx context.Context, date time.Time) ([]models.Order, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("parse order api url: %w", err)
	}
	q := u.Query()
	q.Set("date", date.Format(time.DateOnly))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	var orders []models.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return filterByDate(orders, date), nil
}

// filterByDate drops orders whose createdAt falls on another local date.
// Orders without createdAt are kept.
func filterByDate(orders []models.Order, date time.Time) []models.Order {
	day := date.Format(time.DateOnly)
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !o.CreatedAt.IsZero() && o.CreatedAt.Time().In(date.Location()).Format(time.DateOnly) != day {
			continue
		}
		out = append(out, o)
	}
	return out
}
