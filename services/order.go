package services

import (
	"context"
	"log"
	"time"

	"coffee-pickup/db"
	"coffee-pickup/models"
)

// PostgresOrderSource reads orders from coffee_orders through db.Pool.
type PostgresOrderSource struct{}

func (PostgresOrderSource) Orders(ctx context.Context, date time.Time) []models.Order {
	orders, err := ListOrdersByDate(ctx, date)
	if err != nil {
		log.Printf("Error fetching order list: %v", err)
		return []models.Order{}
	}
	return orders
}

// DayBounds returns the half-open range [start, end) of the calendar day of t in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// ListOrdersByDate returns orders created on the calendar day of date, in date's
// location, with their menus. Oldest order first, menus in insertion order.
func ListOrdersByDate(ctx context.Context, date time.Time) ([]models.Order, error) {
	start, end := DayBounds(date)
	rows, err := db.Pool.Query(ctx, `
		SELECT o.order_id, o.mm_id, o.user_name, o.class_num, o.total_price, o.is_payed, o.created_at,
			m.id, m.cart_id, m.category, m.menu, m.img, m.is_shot, m.is_whip, m.is_syrup,
			m.is_milk, m.is_pearl, m.is_hot, m.only_ice, m.price
		FROM coffee_orders o
		JOIN coffee_order_menus m ON m.order_id = o.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		ORDER BY o.created_at, o.order_id, m.id`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var m models.MenuItem
		var createdAt time.Time
		if err := rows.Scan(
			&o.ID, &o.MMID, &o.User, &o.ClassNum, &o.TotalPrice, &o.IsPayed, &createdAt,
			&m.ID, &m.CartID, &m.Category, &m.Name, &m.Img, &m.IsShot, &m.IsWhip, &m.IsSyrup,
			&m.IsMilk, &m.IsPearl, &m.IsHot, &m.OnlyIce, &m.Price,
		); err != nil {
			return nil, err
		}
		if n := len(orders); n > 0 && orders[n-1].ID == o.ID {
			orders[n-1].Menus = append(orders[n-1].Menus, m)
			continue
		}
		o.CreatedAt = models.Timestamp{Seconds: createdAt.Unix(), Nanoseconds: int64(createdAt.Nanosecond())}
		o.Menus = []models.MenuItem{m}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// CreateOrder stores an order and its menus in one transaction.
func CreateOrder(ctx context.Context, o models.Order) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	createdAt := time.Now()
	if !o.CreatedAt.IsZero() {
		createdAt = o.CreatedAt.Time()
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO coffee_orders (order_id, mm_id, user_name, class_num, total_price, is_payed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.MMID, o.User, o.ClassNum, o.TotalPrice, o.IsPayed, createdAt,
	)
	if err != nil {
		return err
	}
	for _, m := range o.Menus {
		_, err = tx.Exec(ctx, `
			INSERT INTO coffee_order_menus (
				order_id, cart_id, category, menu, img, is_shot, is_whip, is_syrup,
				is_milk, is_pearl, is_hot, only_ice, price
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			o.ID, m.CartID, m.Category, m.Name, m.Img, m.IsShot, m.IsWhip, m.IsSyrup,
			m.IsMilk, m.IsPearl, m.IsHot, m.OnlyIce, m.Price,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteOrder removes an order; its menus cascade.
func DeleteOrder(ctx context.Context, orderID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM coffee_orders WHERE order_id = $1`, orderID)
	return err
}
