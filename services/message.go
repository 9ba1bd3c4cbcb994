package services

import (
	"fmt"
	"strings"
	"time"

	"coffee-pickup/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultPickupNotice = "점심 식사 후 1시~1시 10분 사이에 자전거 거치대 앞으로 나가주세요!"

// RenderConfig configures the message templates.
type RenderConfig struct {
	Brand        string
	TestMode     bool   // mention TestMMID instead of the picked members
	TestMMID     string
	PickupNotice string
	Labels       *OptionLabels // nil uses DefaultOptionLabels
}

// Renderer builds the markdown messages posted to the webhook.
type Renderer struct {
	cfg     RenderConfig
	labels  OptionLabels
	printer *message.Printer
}

func NewRenderer(cfg RenderConfig) *Renderer {
	if cfg.PickupNotice == "" {
		cfg.PickupNotice = DefaultPickupNotice
	}
	labels := DefaultOptionLabels
	if cfg.Labels != nil {
		labels = *cfg.Labels
	}
	return &Renderer{cfg: cfg, labels: labels, printer: message.NewPrinter(language.English)}
}

// Labels is the option label table used for the order table and statistics keys.
func (r *Renderer) Labels() OptionLabels {
	return r.labels
}

// FormatPrice groups thousands with commas: 7500 -> "7,500".
func (r *Renderer) FormatPrice(v int64) string {
	return r.printer.Sprintf("%d", v)
}

// Render builds the daily message: header, pickup members, order table, statistics.
func (r *Renderer) Render(date string, orders []models.Order, pickup []models.PickupMember, stats models.Stats) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n####  [%s  :th_fire_2:] - %s :starmong:\n", r.cfg.Brand, date)
	sb.WriteString("#### :alert_siren: 오늘의 커피 수령자는? \n")
	for _, m := range pickup {
		fmt.Fprintf(&sb, "- **%d반 %s** (@%s)\n", m.ClassNum, m.User, r.mention(m))
	}
	sb.WriteString(r.cfg.PickupNotice + "\n")
	sb.WriteString("\n")
	sb.WriteString("#### :pink_check: 오늘의 주문 내역\n")
	sb.WriteString(r.orderTable(orders))

	sb.WriteString("\n#### :bar_chart: 주문 통계\n")
	sb.WriteString("| 메뉴 | 갯수 | 금액 |\n")
	sb.WriteString("|:----------:|:-------:|:------------:|\n")
	for _, st := range stats.Summary {
		fmt.Fprintf(&sb, "| %s | %d | %s원 |\n", st.Name, st.Count, r.FormatPrice(st.Price))
	}
	fmt.Fprintf(&sb, "| **총합** | **%d** | **%s원** |\n", stats.TotalCount, r.FormatPrice(stats.TotalPrice))

	return sb.String()
}

func (r *Renderer) mention(m models.PickupMember) string {
	if r.cfg.TestMode && r.cfg.TestMMID != "" {
		return r.cfg.TestMMID
	}
	return m.MMID
}

func (r *Renderer) orderTable(orders []models.Order) string {
	var sb strings.Builder
	sb.WriteString("|   반   |   이름   |   메뉴   |   옵션   |   가격   |\n")
	sb.WriteString("|:----------:|:-------:|:------------|:----------|:----------:|\n")
	for _, o := range orders {
		for i, m := range o.Menus {
			name := "└"
			if i == 0 {
				name = o.User + " (" + maskMMID(o.MMID) + ")"
			}
			temp := "아이스"
			if m.IsHot {
				temp = "핫"
			}
			fmt.Fprintf(&sb, "|     %d      |  %s   |   %s  %s      |   %s    |   %s    |\n",
				o.ClassNum, name, temp, m.Name, r.labels.Format(m), r.FormatPrice(m.Price))
		}
	}
	return sb.String()
}

// maskMMID keeps the first three characters of id and appends "**".
func maskMMID(id string) string {
	runes := []rune(id)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes) + "**"
}

var koreanWeekdays = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// FormatDate renders t as a Korean long date, e.g. "2024년 5월 3일 금요일".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일 %s", t.Year(), int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}

// OpenNotice announces that today's orders are open.
func (r *Renderer) OpenNotice(date string) string {
	return fmt.Sprintf("#### :coffee: [%s] - %s\n오늘의 커피 주문이 시작되었습니다! 마감 전까지 주문해주세요.\n", r.cfg.Brand, date)
}

// CloseNotice reminds members that ordering closes soon.
func (r *Renderer) CloseNotice(date string) string {
	return fmt.Sprintf("#### :hourglass: [%s] - %s\n곧 주문이 마감됩니다. 아직 주문하지 않았다면 서둘러주세요!\n", r.cfg.Brand, date)
}
