package services

import (
	"math/rand/v2"
	"testing"

	"coffee-pickup/models"
)

func TestMenuKey(t *testing.T) {
	if got := MenuKey(models.MenuItem{Name: "카페라떼"}, DefaultOptionLabels); got != "카페라떼" {
		t.Errorf("MenuKey() = %q", got)
	}
	if got := MenuKey(models.MenuItem{Name: "카페라떼", IsShot: true, IsSyrup: true}, DefaultOptionLabels); got != "카페라떼 (샷, 시럽)" {
		t.Errorf("MenuKey() = %q", got)
	}
}

func TestGenerateStats_Empty(t *testing.T) {
	s := GenerateStats(nil, DefaultOptionLabels)
	if s.Summary == nil || len(s.Summary) != 0 {
		t.Errorf("Summary = %#v, want empty non-nil", s.Summary)
	}
	if s.TotalCount != 0 || s.TotalPrice != 0 {
		t.Errorf("totals = %d/%d, want 0/0", s.TotalCount, s.TotalPrice)
	}
}

func TestGenerateStats_GroupsAndSortsDescending(t *testing.T) {
	items := []models.MenuItem{
		{Name: "아메리카노", Price: 2000},
		{Name: "카페라떼", IsShot: true, Price: 3000},
		{Name: "아메리카노", Price: 2000},
		{Name: "카페라떼", Price: 2500},
		{Name: "Americano", Price: 1500},
	}
	s := GenerateStats(items, DefaultOptionLabels)

	want := []models.MenuStat{
		{Name: "카페라떼 (샷)", Count: 1, Price: 3000},
		{Name: "카페라떼", Count: 1, Price: 2500},
		{Name: "아메리카노", Count: 2, Price: 4000},
		{Name: "Americano", Count: 1, Price: 1500},
	}
	if len(s.Summary) != len(want) {
		t.Fatalf("len(Summary) = %d, want %d: %+v", len(s.Summary), len(want), s.Summary)
	}
	for i := range want {
		if s.Summary[i] != want[i] {
			t.Errorf("Summary[%d] = %+v, want %+v", i, s.Summary[i], want[i])
		}
	}
	if s.TotalCount != 5 || s.TotalPrice != 11000 {
		t.Errorf("totals = %d/%d, want 5/11000", s.TotalCount, s.TotalPrice)
	}
}

func TestGenerateStats_Invariants(t *testing.T) {
	names := []string{"아메리카노", "카페라떼", "바닐라라떼", "녹차"}
	r := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 50; round++ {
		n := r.IntN(30)
		items := make([]models.MenuItem, n)
		var sum int64
		for i := range items {
			items[i] = models.MenuItem{
				Name:   names[r.IntN(len(names))],
				IsShot: r.IntN(2) == 0,
				IsMilk: r.IntN(3) == 0,
				Price:  int64(r.IntN(50)) * 100,
			}
			sum += items[i].Price
		}

		s := GenerateStats(items, DefaultOptionLabels)
		if s.TotalCount != n || s.TotalPrice != sum {
			t.Fatalf("round %d: totals = %d/%d, want %d/%d", round, s.TotalCount, s.TotalPrice, n, sum)
		}
		var countSum int
		var priceSum int64
		seen := map[string]bool{}
		for i, st := range s.Summary {
			countSum += st.Count
			priceSum += st.Price
			if st.Count < 1 {
				t.Fatalf("round %d: stat %q has count %d", round, st.Name, st.Count)
			}
			if seen[st.Name] {
				t.Fatalf("round %d: duplicate key %q", round, st.Name)
			}
			seen[st.Name] = true
			if i > 0 && s.Summary[i-1].Name <= st.Name {
				t.Fatalf("round %d: not descending at %d: %q then %q", round, i, s.Summary[i-1].Name, st.Name)
			}
		}
		if countSum != s.TotalCount || priceSum != s.TotalPrice {
			t.Fatalf("round %d: summary sums = %d/%d, want %d/%d", round, countSum, priceSum, s.TotalCount, s.TotalPrice)
		}

		// same multiset in another order gives the same result
		shuffled := append([]models.MenuItem(nil), items...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		s2 := GenerateStats(shuffled, DefaultOptionLabels)
		if len(s2.Summary) != len(s.Summary) {
			t.Fatalf("round %d: shuffled summary length differs", round)
		}
		for i := range s.Summary {
			if s.Summary[i] != s2.Summary[i] {
				t.Fatalf("round %d: shuffled summary differs at %d", round, i)
			}
		}
	}
}

func TestFlattenOrders(t *testing.T) {
	orders := []models.Order{
		{ID: "o1", MMID: "alice01", User: "Alice", ClassNum: 1, Menus: []models.MenuItem{{Name: "A"}, {Name: "B"}}},
		{ID: "o2", MMID: "bob_kim", User: "Bob", ClassNum: 2, Menus: []models.MenuItem{{Name: "C"}}},
		{ID: "o3", MMID: "empty", User: "Nobody"},
	}
	items, members := FlattenOrders(orders)
	if len(items) != 3 || len(members) != 3 {
		t.Fatalf("got %d items, %d members, want 3/3", len(items), len(members))
	}
	if items[2].Name != "C" || members[2].MMID != "bob_kim" {
		t.Errorf("third entry = %+v / %+v", items[2], members[2])
	}
	if members[0] != members[1] {
		t.Errorf("one member per item: %+v vs %+v", members[0], members[1])
	}
}
