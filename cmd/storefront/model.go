package main

import (
	"context"
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/storefront"
	"strings"
)

type cartChanged struct{}

type checkoutChanged struct {
	outcome domain.CheckoutOutcome
}

type viewChanged struct {
	view domain.View
}

type model struct {
	ctx    context.Context
	sf     *storefront.Storefront
	cursor int
	status string
}

func newModel(ctx context.Context, sf *storefront.Storefront) model {
	return model{
		ctx:    ctx,
		sf:     sf,
		status: "Ready",
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if k := msg.String(); k == "ctrl+c" || k == "q" {
			return m, tea.Quit
		}

		switch m.sf.CurrentView() {
		case domain.ViewCatalog:
			m = m.updateCatalog(msg)
		case domain.ViewCart:
			m = m.updateCart(msg)
		case domain.ViewCheckout:
			m = m.updateCheckout(msg)
		}
	case cartChanged:
		m.cursor = clamp(m.cursor, m.rows())
	case viewChanged:
		m.cursor = 0
	case checkoutChanged:
		switch msg.outcome.Status {
		case domain.CheckoutProcessing:
			m.status = "Processing your order..."
		case domain.CheckoutSucceeded:
			m.status = fmt.Sprintf("Order %s placed", msg.outcome.Order.ID)
		case domain.CheckoutFailed:
			m.status = "Checkout failed: " + msg.outcome.Message
		default:
			m.status = "Ready"
		}
	}
	return m, nil
}

func (m model) updateCatalog(msg tea.KeyMsg) model {
	products := m.sf.ListProducts()

	switch msg.String() {
	case "up":
		m.cursor = clamp(m.cursor-1, len(products))
	case "down":
		m.cursor = clamp(m.cursor+1, len(products))
	case "enter", "a":
		if len(products) == 0 {
			return m
		}
		p := products[m.cursor]
		m.sf.AddItem(m.ctx, p.ID)
		m.status = fmt.Sprintf("Added %s to cart", p.Name)
	case "c":
		_ = m.sf.Navigate(domain.ViewCart)
	case "d":
		m.sf.DismissConfirmation()
		m.status = "Ready"
	}
	return m
}

func (m model) updateCart(msg tea.KeyMsg) model {
	items := m.sf.Items()

	switch msg.String() {
	case "up":
		m.cursor = clamp(m.cursor-1, len(items))
	case "down":
		m.cursor = clamp(m.cursor+1, len(items))
	case "+", "=":
		if len(items) > 0 {
			e := items[m.cursor]
			m.sf.UpdateQuantity(m.ctx, e.Product.ID, e.Quantity+1)
		}
	case "-":
		if len(items) > 0 {
			e := items[m.cursor]
			m.sf.UpdateQuantity(m.ctx, e.Product.ID, e.Quantity-1)
		}
	case "r":
		if len(items) > 0 {
			m.sf.RemoveItem(m.ctx, items[m.cursor].Product.ID)
		}
	case "x":
		m.sf.Clear(m.ctx)
	case "enter":
		if err := m.sf.Navigate(domain.ViewCheckout); err != nil {
			m.status = "Add some items before checking out"
		}
	case "esc":
		_ = m.sf.Navigate(domain.ViewCatalog)
	}
	return m
}

func (m model) updateCheckout(msg tea.KeyMsg) model {
	switch msg.String() {
	case "enter":
		if !m.sf.SubmitCheckout(m.ctx) {
			m.status = "Checkout already in progress"
		}
	case "esc":
		_ = m.sf.Navigate(domain.ViewCart)
	}
	return m
}

func (m model) rows() int {
	if m.sf.CurrentView() == domain.ViewCatalog {
		return len(m.sf.ListProducts())
	}
	return len(m.sf.Items())
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "storefront [%s] cart: %d item(s)\n\n", m.sf.CurrentView(), len(m.sf.Items()))

	switch m.sf.CurrentView() {
	case domain.ViewCatalog:
		for i, p := range m.sf.ListProducts() {
			fmt.Fprintf(b, " %s %-24s $%s\n", marker(i == m.cursor), p.Name, p.Price.StringFixed(2))
		}
		if m.sf.CheckoutOutcome().Status == domain.CheckoutSucceeded {
			fmt.Fprintln(b, "\nThank you for your order! Press d to dismiss.")
		}
		fmt.Fprintln(b, "\nControls: up/down select, enter add to cart, c open cart, q quit")
	case domain.ViewCart:
		items := m.sf.Items()
		if len(items) == 0 {
			fmt.Fprintln(b, " Your cart is empty")
		}
		for i, e := range items {
			fmt.Fprintf(b, " %s %-24s x%-3d $%s\n", marker(i == m.cursor), e.Product.Name, e.Quantity, e.Subtotal().StringFixed(2))
		}
		fmt.Fprintf(b, "\nTotal: %s\n", m.sf.Total())
		fmt.Fprintln(b, "\nControls: +/- quantity, r remove, x clear, enter checkout, esc catalog, q quit")
	case domain.ViewCheckout:
		for _, e := range m.sf.Items() {
			fmt.Fprintf(b, "   %-24s x%d\n", e.Product.Name, e.Quantity)
		}
		fmt.Fprintf(b, "\nTotal: %s\n", m.sf.Total())
		fmt.Fprintln(b, "\nControls: enter place order, esc back to cart, q quit")
	}

	fmt.Fprintf(b, "\nStatus: %s\n", m.status)
	return b.String()
}

func marker(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
