// ABOUTME: Terminal storefront using bubbletea framework
// ABOUTME: Browse phones, manage the cart, and check out from a full-screen interface
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/checkout"
	"github.com/harperreed/phonestore/gamification"
	"github.com/harperreed/phonestore/models"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewCatalog ViewMode = iota
	ViewDetail
	ViewCart
	ViewCheckout
	ViewSuccess
)

// Model is the main bubbletea model
type Model struct {
	sf  *app.Storefront
	ctx context.Context

	viewMode ViewMode

	// Catalog view state
	products      []models.Product
	selectedRow   int
	categoryIndex int
	search        textinput.Model
	searching     bool

	// Detail view state
	detail models.Product

	// Cart view state
	cartRow int

	// Checkout view state
	flow         checkout.Flow
	formInputs   []textinput.Model
	focusIndex   int
	paymentIndex int
	optIn        bool
	submitting   bool
	order        checkout.Outcome

	// UI state
	message string
	banner  string
	width   int
	height  int
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, sf *app.Storefront) Model {
	search := textinput.New()
	search.Placeholder = "Search brand or model"
	search.CharLimit = 50

	m := Model{
		sf:       sf,
		ctx:      ctx,
		viewMode: ViewCatalog,
		search:   search,
		width:    80,
		height:   24,
	}
	m.refreshProducts()
	return m
}

// Run starts the storefront on the terminal and blocks until the user quits.
func Run(ctx context.Context, sf *app.Storefront) error {
	p := tea.NewProgram(NewModel(ctx, sf), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run shop: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case OrderCompleteMsg:
		return m.handleOrderComplete(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	if m.banner != "" {
		s.WriteString(bannerStyle.Render(m.banner))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	switch m.viewMode {
	case ViewCatalog:
		s.WriteString(m.renderCatalogView())
	case ViewDetail:
		s.WriteString(m.renderDetailView())
	case ViewCart:
		s.WriteString(m.renderCartView())
	case ViewCheckout:
		s.WriteString(m.renderCheckoutView())
	case ViewSuccess:
		s.WriteString(m.renderSuccessView())
	}

	if m.message != "" {
		s.WriteString("\n")
		s.WriteString(messageStyle.Render(m.message))
	}
	return s.String()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if msg.String() == "q" && !m.typing() {
		return m, tea.Quit
	}

	// Any key dismisses the level-up banner
	m.banner = ""

	switch m.viewMode {
	case ViewCatalog:
		return m.handleCatalogKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewCart:
		return m.handleCartKeys(msg)
	case ViewCheckout:
		return m.handleCheckoutKeys(msg)
	case ViewSuccess:
		return m.handleSuccessKeys(msg)
	}
	return m, nil
}

// typing reports whether keystrokes belong to a text field.
func (m Model) typing() bool {
	return m.searching || m.viewMode == ViewCheckout
}

func (m *Model) noteAward(res gamification.AwardResult) {
	if res.LeveledUp {
		m.banner = fmt.Sprintf("★ Level up! You reached level %d", res.State.Level)
	}
}

func (m Model) renderHeader() string {
	cfg := m.sf.Config.Current()
	g := m.sf.Rewards.State()

	title := titleStyle.Render(strings.ToUpper(cfg.ShopName))
	stats := statStyle.Render(fmt.Sprintf("Level %d • %d pts • Cart %d", g.Level, g.Points, m.sf.Cart.Len()))
	if len(g.Badges) > 0 {
		stats += "  " + badgeStyle.Render(strings.Join(g.Badges, ", "))
	}
	if !m.sf.Config.IsLive() {
		stats += "  " + helpStyle.Render("(sample catalog)")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", stats)
}

func (m *Model) refreshProducts() {
	m.products = m.sf.Products(m.search.Value(), models.Categories[m.categoryIndex])
	if m.selectedRow >= len(m.products) {
		m.selectedRow = max(len(m.products)-1, 0)
	}
}

func formatPrice(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return "KSh " + string(out)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Padding(0, 2)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(16)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
