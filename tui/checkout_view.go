// ABOUTME: Checkout form and order confirmation views
// ABOUTME: Collects buyer details, submits the order, and shows the result
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/phonestore/checkout"
	"github.com/harperreed/phonestore/models"
)

// OrderCompleteMsg is sent when a checkout submission finishes.
type OrderCompleteMsg struct {
	Outcome checkout.Outcome
}

const (
	fieldName = iota
	fieldPhone
	fieldEmail
	fieldPayment
	fieldOptIn
	fieldCount
)

var paymentMethods = []string{models.PaymentMpesa, models.PaymentCash, models.PaymentCard}

var paymentLabels = map[string]string{
	models.PaymentMpesa: "M-Pesa",
	models.PaymentCash:  "Cash on delivery",
	models.PaymentCard:  "Card",
}

func (m Model) startCheckout(flow checkout.Flow) (tea.Model, tea.Cmd) {
	m.flow = flow
	m.viewMode = ViewCheckout
	m.message = ""
	m.initFormInputs()
	return m, textinput.Blink
}

func (m *Model) initFormInputs() {
	inputs := make([]textinput.Model, 3)

	inputs[fieldName] = textinput.New()
	inputs[fieldName].Placeholder = "Full name"
	inputs[fieldName].CharLimit = 100

	inputs[fieldPhone] = textinput.New()
	inputs[fieldPhone].Placeholder = "+254..."
	inputs[fieldPhone].CharLimit = 20

	inputs[fieldEmail] = textinput.New()
	inputs[fieldEmail].Placeholder = "Email (optional)"
	inputs[fieldEmail].CharLimit = 100

	m.formInputs = inputs
	m.focusIndex = 0
	m.paymentIndex = 0
	m.optIn = false
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) renderCheckoutView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CHECKOUT"))
	s.WriteString("\n\n")
	s.WriteString(m.renderOrderSummary())
	s.WriteString("\n")

	for i, input := range m.formInputs {
		s.WriteString(m.cursor(i))
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString(m.cursor(fieldPayment))
	s.WriteString("Payment: ")
	for i, method := range paymentMethods {
		label := paymentLabels[method]
		if i == m.paymentIndex {
			s.WriteString(tabActiveStyle.Render(label))
		} else {
			s.WriteString(tabInactiveStyle.Render(label))
		}
	}
	s.WriteString("\n")

	s.WriteString(m.cursor(fieldOptIn))
	box := "[ ]"
	if m.optIn {
		box = "[x]"
	}
	s.WriteString(box + " Send me offers on WhatsApp\n")

	if m.submitting {
		s.WriteString("\n")
		s.WriteString(statStyle.Render("Placing your order..."))
		s.WriteString("\n")
	}

	help := []string{
		"Tab: Next field",
		"←/→: Payment",
		"Space: Toggle offers",
		"Enter: Place order",
		"Esc: Cancel",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) cursor(i int) string {
	if i == m.focusIndex {
		return "> "
	}
	return "  "
}

func (m Model) renderOrderSummary() string {
	if m.flow == checkout.FlowCart {
		return m.renderField("Order", fmt.Sprintf("%d item(s)", m.sf.Cart.Len())) +
			m.renderField("Total", formatPrice(m.sf.Cart.Total()))
	}
	p, ok := m.sf.Checkout.Selected()
	if !ok {
		return ""
	}
	return m.renderField("Order", p.Brand+" "+p.Model) + m.renderField("Total", formatPrice(p.Price))
}

func (m Model) handleCheckoutKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.message = ""
		if m.flow == checkout.FlowCart {
			m.viewMode = ViewCart
		} else {
			m.viewMode = ViewDetail
		}
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % fieldCount
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + fieldCount - 1) % fieldCount
		m.updateFormFocus()
		return m, nil
	case "enter":
		m.submitting = true
		m.message = ""
		return m, m.submitOrder()
	}

	switch m.focusIndex {
	case fieldPayment:
		switch msg.String() {
		case "left", "h":
			m.paymentIndex = (m.paymentIndex + len(paymentMethods) - 1) % len(paymentMethods)
		case "right", "l", " ":
			m.paymentIndex = (m.paymentIndex + 1) % len(paymentMethods)
		}
		return m, nil
	case fieldOptIn:
		if msg.String() == " " || msg.String() == "x" {
			m.optIn = !m.optIn
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) buyer() models.BuyerFields {
	return models.BuyerFields{
		CustomerName:   strings.TrimSpace(m.formInputs[fieldName].Value()),
		CustomerPhone:  strings.TrimSpace(m.formInputs[fieldPhone].Value()),
		CustomerEmail:  strings.TrimSpace(m.formInputs[fieldEmail].Value()),
		MarketingOptIn: m.optIn,
	}
}

func (m Model) submitOrder() tea.Cmd {
	sf, ctx := m.sf, m.ctx
	flow, buyer, payment := m.flow, m.buyer(), paymentMethods[m.paymentIndex]
	return func() tea.Msg {
		if flow == checkout.FlowCart {
			return OrderCompleteMsg{Outcome: sf.CheckoutCart(ctx, buyer, payment)}
		}
		return OrderCompleteMsg{Outcome: sf.BuyNow(ctx, buyer, payment)}
	}
}

func (m Model) handleOrderComplete(msg OrderCompleteMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if !msg.Outcome.OK() {
		m.message = msg.Outcome.Message
		return m, nil
	}
	m.order = msg.Outcome
	m.viewMode = ViewSuccess
	m.message = ""
	if msg.Outcome.Award != nil {
		m.noteAward(*msg.Outcome.Award)
	}
	return m, nil
}

func (m Model) renderSuccessView() string {
	var s strings.Builder

	s.WriteString(successStyle.Render("✓ Order placed!"))
	s.WriteString("\n\n")
	s.WriteString(m.renderField("Reference", m.order.OrderRef))
	s.WriteString(fieldValueStyle.Render(m.order.Message))
	s.WriteString("\n")
	if m.order.Award != nil {
		s.WriteString("\n")
		s.WriteString(badgeStyle.Render(fmt.Sprintf("You now have %d points", m.order.Award.State.Points)))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("Enter: Back to shop • q: Quit"))
	return s.String()
}

func (m Model) handleSuccessKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.sf.BackToShop()
		m.order = checkout.Outcome{}
		m.viewMode = ViewCatalog
		m.refreshProducts()
	}
	return m, nil
}
