package events

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"strings"
	"time"
)

const EventOrderPlaced = "order.placed"

type Event struct {
	EventID   string      `json:"event_id"`
	OrderID   string      `json:"order_id"`
	CreatedAt time.Time   `json:"created_at"`
	Type      string      `json:"type"`
	Payload   OrderPlaced `json:"payload"`
}

type OrderPlaced struct {
	Lines       []OrderLine `json:"lines"`
	Total       string      `json:"total"`
	Currency    string      `json:"currency"`
	SubmittedAt time.Time   `json:"submitted_at"`
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

func NewOrderPlaced(order domain.Order, now time.Time) Event {
	lines := make([]OrderLine, 0, len(order.Entries))
	for _, e := range order.Entries {
		lines = append(lines, OrderLine{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			Price:     e.Product.Price.StringFixed(2),
			Quantity:  e.Quantity,
		})
	}

	return Event{
		EventID:   uuid.NewString(),
		OrderID:   order.ID.String(),
		CreatedAt: now.UTC(),
		Type:      EventOrderPlaced,
		Payload: OrderPlaced{
			Lines:       lines,
			Total:       order.Total.Amount.StringFixed(2),
			Currency:    order.Total.Currency.String(),
			SubmittedAt: order.SubmittedAt.UTC(),
		},
	}
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
