// ABOUTME: Shopping cart view
// ABOUTME: Lists cart items with running total, removal, and checkout
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/phonestore/checkout"
)

func (m Model) renderCartView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("YOUR CART"))
	s.WriteString("\n\n")

	items := m.sf.Cart.Items()
	if len(items) == 0 {
		s.WriteString(helpStyle.Render("Your cart is empty."))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("Esc: Back to shop • q: Quit"))
		return s.String()
	}

	for i, item := range items {
		line := fieldValueStyle.Render(item.Brand+" "+item.Model) + "  " + statStyle.Render(formatPrice(item.Price))
		if i == m.cartRow {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(line)
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(m.renderField("Total", formatPrice(m.sf.Cart.Total())))

	help := []string{
		"↑/↓: Navigate",
		"x: Remove",
		"D: Clear",
		"Enter: Checkout",
		"Esc: Back",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleCartKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	n := m.sf.Cart.Len()

	switch msg.String() {
	case "esc":
		m.viewMode = ViewCatalog
	case "up", "k":
		if m.cartRow > 0 {
			m.cartRow--
		}
	case "down", "j":
		if m.cartRow < n-1 {
			m.cartRow++
		}
	case "x", "delete":
		if err := m.sf.Cart.RemoveAt(m.cartRow); err != nil {
			m.message = err.Error()
		}
		if m.cartRow >= m.sf.Cart.Len() {
			m.cartRow = max(m.sf.Cart.Len()-1, 0)
		}
	case "D":
		m.sf.Cart.Clear()
		m.cartRow = 0
	case "enter":
		if n == 0 {
			m.message = checkout.MsgEmptyOrder
			return m, nil
		}
		return m.startCheckout(checkout.FlowCart)
	}
	return m, nil
}
