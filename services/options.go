package services

import (
	"strings"

	"coffee-pickup/models"
)

// OptionLabels are the display labels for each option flag, in render order.
// A blank label hides that option.
type OptionLabels struct {
	Shot  string
	Whip  string
	Syrup string
	Milk  string
	Pearl string
}

var DefaultOptionLabels = OptionLabels{
	Shot:  "샷",
	Whip:  "휘핑",
	Syrup: "시럽",
	Milk:  "우유",
	Pearl: "펄",
}

// Hide returns a copy of l with the named options blanked. Names are the
// option keys (shot, whip, syrup, milk, pearl) or the current labels; unknown
// names are ignored.
func (l OptionLabels) Hide(names ...string) OptionLabels {
	for _, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case strings.EqualFold(name, "shot") || name == l.Shot:
			l.Shot = ""
		case strings.EqualFold(name, "whip") || name == l.Whip:
			l.Whip = ""
		case strings.EqualFold(name, "syrup") || name == l.Syrup:
			l.Syrup = ""
		case strings.EqualFold(name, "milk") || name == l.Milk:
			l.Milk = ""
		case strings.EqualFold(name, "pearl") || name == l.Pearl:
			l.Pearl = ""
		}
	}
	return l
}

// Format joins the labels of set flags with ", " in the order shot, whip, syrup, milk, pearl.
func (l OptionLabels) Format(m models.MenuItem) string {
	flags := []struct {
		set   bool
		label string
	}{
		{m.IsShot, l.Shot},
		{m.IsWhip, l.Whip},
		{m.IsSyrup, l.Syrup},
		{m.IsMilk, l.Milk},
		{m.IsPearl, l.Pearl},
	}
	var parts []string
	for _, f := range flags {
		if f.set && f.label != "" {
			parts = append(parts, f.label)
		}
	}
	return strings.Join(parts, ", ")
}
