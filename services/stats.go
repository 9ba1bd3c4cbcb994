package services

import (
	"sort"

	"coffee-pickup/models"
)

// MenuKey is the grouping key of an item: "name (options)" or just "name".
func MenuKey(m models.MenuItem, labels OptionLabels) string {
	if opts := labels.Format(m); opts != "" {
		return m.Name + " (" + opts + ")"
	}
	return m.Name
}

// GenerateStats groups items by MenuKey and totals count and price.
// Summary is sorted by key in descending byte order.
func GenerateStats(items []models.MenuItem, labels OptionLabels) models.Stats {
	byKey := make(map[string]*models.MenuStat)
	var totalCount int
	var totalPrice int64

	for _, m := range items {
		key := MenuKey(m, labels)
		st, ok := byKey[key]
		if !ok {
			st = &models.MenuStat{Name: key}
			byKey[key] = st
		}
		st.Count++
		st.Price += m.Price
		totalCount++
		totalPrice += m.Price
	}

	summary := make([]models.MenuStat, 0, len(byKey))
	for _, st := range byKey {
		summary = append(summary, *st)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Name > summary[j].Name
	})

	return models.Stats{
		Summary:    summary,
		TotalCount: totalCount,
		TotalPrice: totalPrice,
	}
}

// FlattenOrders returns every menu item and its pickup member, in order/menu order.
func FlattenOrders(orders []models.Order) ([]models.MenuItem, []models.PickupMember) {
	var items []models.MenuItem
	var members []models.PickupMember
	for _, o := range orders {
		for _, m := range o.Menus {
			items = append(items, m)
			members = append(members, models.PickupMember{
				OrderID:  o.ID,
				MMID:     o.MMID,
				User:     o.User,
				ClassNum: o.ClassNum,
			})
		}
	}
	return items, members
}
