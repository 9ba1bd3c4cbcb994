package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const ordersJSON = `[
  {
    "createdAt": {"seconds": 1714692600, "nanoseconds": 0},
    "mmId": "alice01", "orderId": "o1", "totalPrice": 3000, "classNum": 1,
    "user": "Alice", "isPayed": true,
    "menus": [{"id": 1, "cartId": 9, "category": "coffee", "menu": "Americano", "isShot": false,
               "isWhip": false, "isSyrup": false, "isMilk": false, "isPeorl": false,
               "isHot": false, "onlyIce": true, "img": "", "price": 3000}]
  },
  {
    "createdAt": {"seconds": 1714606200, "nanoseconds": 0},
    "mmId": "late", "orderId": "o0", "totalPrice": 1000, "classNum": 3,
    "user": "Yesterday", "isPayed": false,
    "menus": [{"menu": "Tea", "price": 1000}]
  },
  {
    "mmId": "bob_kim", "orderId": "o2", "totalPrice": 4500, "classNum": 2, "user": "Bob",
    "menus": [{"menu": "Latte", "isShot": true, "isPeorl": true, "isHot": true, "price": 4500}]
  }
]`

func TestHTTPOrderSource_DecodesAndFiltersByDate(t *testing.T) {
	var gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ordersJSON))
	}))
	defer srv.Close()

	kst := time.FixedZone("KST", 9*60*60)
	// 1714692600 is 2024-05-03 08:30 KST; 1714606200 is a day earlier.
	date := time.Date(2024, 5, 3, 5, 30, 0, 0, kst)

	orders := NewHTTPOrderSource(srv.URL+"/api/order", srv.Client()).Orders(context.Background(), date)
	if gotDate != "2024-05-03" {
		t.Errorf("date query = %q, want 2024-05-03", gotDate)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2: %+v", len(orders), orders)
	}
	if orders[0].ID != "o1" || orders[1].ID != "o2" {
		t.Errorf("order ids = %q, %q", orders[0].ID, orders[1].ID)
	}
	m := orders[1].Menus[0]
	if m.Name != "Latte" || !m.IsShot || !m.IsPearl || !m.IsHot || m.Price != 4500 {
		t.Errorf("menu decoded as %+v", m)
	}
	if !orders[0].IsPayed || orders[0].MMID != "alice01" || orders[0].ClassNum != 1 {
		t.Errorf("order decoded as %+v", orders[0])
	}
}

func TestHTTPOrderSource_FailsSoft(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not": "an array"`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			orders := NewHTTPOrderSource(srv.URL, srv.Client()).Orders(context.Background(), time.Now())
			if orders == nil || len(orders) != 0 {
				t.Errorf("got %#v, want empty slice", orders)
			}
		})
	}
}

func TestHTTPOrderSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	orders := NewHTTPOrderSource(url, nil).Orders(context.Background(), time.Now())
	if len(orders) != 0 {
		t.Errorf("got %d orders, want 0", len(orders))
	}
}

func TestHTTPOrderSource_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	orders := NewHTTPOrderSource(srv.URL, srv.Client()).Orders(ctx, time.Now())
	if len(orders) != 0 {
		t.Errorf("got %d orders, want 0 on timeout", len(orders))
	}
}
