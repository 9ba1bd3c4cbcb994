package models

import "time"

// Timestamp is the {seconds, nanoseconds} shape the order API uses for createdAt.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.Nanoseconds == 0
}

func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, t.Nanoseconds)
}

// Order is one person's submission for a day.
type Order struct {
	ID         string     `json:"orderId"`
	MMID       string     `json:"mmId"`
	User       string     `json:"user"`
	ClassNum   int        `json:"classNum"`
	TotalPrice int64      `json:"totalPrice"`
	IsPayed    bool       `json:"isPayed"`
	CreatedAt  Timestamp  `json:"createdAt"`
	Menus      []MenuItem `json:"menus"`
}

// PickupMember is the per-item projection of an order used for pickup selection.
type PickupMember struct {
	OrderID  string
	MMID     string
	User     string
	ClassNum int
}
