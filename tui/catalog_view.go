// ABOUTME: Product catalog view with category tabs and search
// ABOUTME: Lists phones in a table and opens the product detail view
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/phonestore/models"
)

func (m Model) renderCatalogView() string {
	var s strings.Builder

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		s.WriteString(m.search.View())
		s.WriteString("\n\n")
	}

	if len(m.products) == 0 {
		s.WriteString(helpStyle.Render("No phones match your search."))
	} else {
		s.WriteString(m.renderProductTable())
	}
	s.WriteString("\n")
	s.WriteString(m.renderCatalogHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, c := range models.Categories {
		if i == m.categoryIndex {
			rendered = append(rendered, tabActiveStyle.Render(c))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(c))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderProductTable() string {
	columns := []table.Column{
		{Title: "Brand", Width: 12},
		{Title: "Model", Width: 26},
		{Title: "Category", Width: 10},
		{Title: "Price", Width: 14},
		{Title: "Stock", Width: 6},
	}

	var rows []table.Row
	for _, p := range m.products {
		rows = append(rows, table.Row{
			p.Brand,
			p.Model,
			p.Category,
			formatPrice(p.Price),
			fmt.Sprintf("%d", p.Stock),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 5)),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) renderCatalogHelp() string {
	if m.searching {
		return helpStyle.Render("Enter: Apply • Esc: Clear search")
	}
	help := []string{
		"↑/↓: Navigate",
		"Tab: Category",
		"Enter: View",
		"/: Search",
		"c: Cart",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.refreshProducts()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.selectedRow = 0
		m.refreshProducts()
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.products)-1 {
			m.selectedRow++
		}
	case "tab", "shift+tab":
		n := len(models.Categories)
		if msg.String() == "tab" {
			m.categoryIndex = (m.categoryIndex + 1) % n
		} else {
			m.categoryIndex = (m.categoryIndex + n - 1) % n
		}
		m.selectedRow = 0
		m.refreshProducts()
		m.noteAward(m.sf.FilterCategory(models.Categories[m.categoryIndex]))
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "enter":
		if m.selectedRow < len(m.products) {
			m.detail = m.products[m.selectedRow]
			m.viewMode = ViewDetail
			m.noteAward(m.sf.ViewProduct(m.detail))
		}
	case "c":
		m.viewMode = ViewCart
		m.cartRow = 0
	}
	return m, nil
}
