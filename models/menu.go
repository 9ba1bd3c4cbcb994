package models

// MenuItem is one drink line of an order. JSON tags follow the order API.
type MenuItem struct {
	ID       int64  `json:"id"`
	CartID   int64  `json:"cartId"`
	Category string `json:"category"`
	Name     string `json:"menu"`
	Img      string `json:"img"`
	IsShot   bool   `json:"isShot"`
	IsWhip   bool   `json:"isWhip"`
	IsSyrup  bool   `json:"isSyrup"`
	IsMilk   bool   `json:"isMilk"`
	IsPearl  bool   `json:"isPeorl"`
	IsHot    bool   `json:"isHot"`
	OnlyIce  bool   `json:"onlyIce"`
	Price    int64  `json:"price"`
}

// MenuStat aggregates every item sharing the same menu+options key.
type MenuStat struct {
	Name  string
	Count int
	Price int64
}

type Stats struct {
	Summary    []MenuStat
	TotalCount int
	TotalPrice int64
}
