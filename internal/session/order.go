package session

import (
	"github.com/shopspring/decimal"

	"github.com/younglord3302/Lumina/internal/cart"
	"github.com/younglord3302/Lumina/internal/catalog"
)

// OrderStatus is the fulfilment state of a historical order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Order is a read-only historical record; nothing in this app mutates orders.
type Order struct {
	ID     string
	Date   string
	Status OrderStatus
	Total  decimal.Decimal
	Items  []cart.LineItem
}

// MockOrders builds the demo order history from catalog snapshots. Products
// missing from the catalog are skipped so a trimmed catalog still boots.
func MockOrders(store *catalog.Store) []Order {
	type seed struct {
		id     string
		date   string
		status OrderStatus
		items  []cart.LineItem
	}

	line := func(productID, qty int, color, size string) (cart.LineItem, bool) {
		p, ok := store.ByID(productID)
		if !ok {
			return cart.LineItem{}, false
		}
		return cart.LineItem{Product: p, Quantity: qty, SelectedColor: color, SelectedSize: size}, true
	}

	seeds := []seed{
		{id: "ORD-738-291", date: "2024-03-28", status: StatusProcessing},
		{id: "ORD-992-110", date: "2024-03-10", status: StatusDelivered},
		{id: "ORD-102-334", date: "2024-02-15", status: StatusDelivered},
		{id: "ORD-554-009", date: "2023-12-05", status: StatusCancelled},
	}
	if li, ok := line(1, 1, "Matte Black", ""); ok {
		seeds[0].items = []cart.LineItem{li}
	}
	if li, ok := line(6, 1, "Navy", "20L"); ok {
		seeds[1].items = []cart.LineItem{li}
	}
	if li, ok := line(5, 1, "", ""); ok {
		seeds[2].items = []cart.LineItem{li}
	}
	if li, ok := line(3, 1, "Graphite", ""); ok {
		seeds[3].items = []cart.LineItem{li}
	}

	orders := make([]Order, 0, len(seeds))
	for _, s := range seeds {
		total := decimal.Zero
		for _, li := range s.items {
			total = total.Add(li.Subtotal())
		}
		orders = append(orders, Order{ID: s.id, Date: s.date, Status: s.status, Total: total, Items: s.items})
	}
	return orders
}
