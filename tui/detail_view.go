// ABOUTME: Product detail view
// ABOUTME: Shows one phone and offers add-to-cart or buy-now
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/phonestore/checkout"
)

func (m Model) renderDetailView() string {
	var s strings.Builder
	p := m.detail

	s.WriteString(titleStyle.Render(p.Brand + " " + p.Model))
	s.WriteString("\n\n")

	s.WriteString(m.renderField("Price", formatPrice(p.Price)))
	s.WriteString(m.renderField("Category", p.Category))
	if p.Stock > 0 {
		s.WriteString(m.renderField("In stock", fmt.Sprintf("%d", p.Stock)))
	}
	if p.Rating > 0 {
		s.WriteString(m.renderField("Rating", fmt.Sprintf("%.1f ★", p.Rating)))
	}
	if len(p.Features) > 0 {
		s.WriteString(m.renderField("Features", strings.Join(p.Features, ", ")))
	}

	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		return ""
	}
	return fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n"
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"a: Add to cart",
		"b: Buy now",
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch msg.String() {
	case "esc":
		m.sf.CloseProduct()
		m.viewMode = ViewCatalog
	case "a":
		m.noteAward(m.sf.AddToCart(m.detail))
		m.message = fmt.Sprintf("Added %s to cart", m.detail.Model)
	case "b":
		return m.startCheckout(checkout.FlowSingleItem)
	}
	return m, nil
}
