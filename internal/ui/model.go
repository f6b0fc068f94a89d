// Package ui is the terminal storefront: a header with search and cart
// badge, a promo banner, and the product grid rendered from the shop view.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/storefront/internal/model"
	"github.com/sells-group/storefront/internal/storefront"
)

const (
	shopTitle  = "Aahaas Ecommerce"
	bannerText = "New season deals: up to 40% off headphones, watches and more."
)

// catalogLoadedMsg reports that the session's catalog fetch finished.
type catalogLoadedMsg struct {
	err error
}

// Model is the bubbletea model for the storefront browser.
type Model struct {
	ctx  context.Context
	shop *storefront.Shop

	width  int
	search textinput.Model
	spin   spinner.Model
	table  table.Model

	searchFocused bool
	view          storefront.View
	status        string

	styles Styles
}

// New creates the browser model for a shop that has not been started yet.
func New(ctx context.Context, shop *storefront.Shop) Model {
	si := textinput.New()
	si.Placeholder = "Search products..."
	si.CharLimit = 80
	si.Width = 40

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Product", Width: 30},
			{Title: "Price", Width: 12},
			{Title: "Description", Width: 44},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m := Model{
		ctx:    ctx,
		shop:   shop,
		search: si,
		spin:   sp,
		table:  t,
		styles: DefaultStyles(),
	}
	m.refresh(shop.View())
	return m
}

// Run starts the storefront browser and blocks until the user quits.
func Run(ctx context.Context, shop *storefront.Shop) error {
	p := tea.NewProgram(New(ctx, shop), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return eris.Wrap(err, "ui: run")
	}
	return nil
}

// Init starts the spinner and the one catalog fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadCatalog(m.ctx, m.shop))
}

func loadCatalog(ctx context.Context, shop *storefront.Shop) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: shop.Start(ctx)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.err != nil {
			zap.L().Warn("ui: catalog start", zap.Error(msg.err))
		}
		m.refresh(m.shop.View())
		return m, nil

	case spinner.TickMsg:
		if m.view.Status != storefront.StatusLoading {
			return m, nil
		}
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searchFocused {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			m.searchFocused = true
			return m, m.search.Focus()
		case "ctrl+r":
			m.resetFilter()
			return m, nil
		case "a", "enter":
			m.addSelected()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateSearch feeds a key to the search box and re-applies the query on
// every keystroke.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchFocused = false
		m.search.Blur()
		return m, nil
	case "ctrl+r":
		m.resetFilter()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refresh(m.shop.Search(m.search.Value()))
	}
	return m, cmd
}

func (m *Model) resetFilter() {
	m.search.SetValue("")
	m.refresh(m.shop.Reset())
	m.status = ""
}

func (m *Model) addSelected() {
	p, ok := m.selected()
	if !ok {
		return
	}
	n, err := m.shop.AddToCart(p.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Added %s to cart (%d)", PlainText(p.Name), n)
}

func (m Model) selected() (model.Product, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Items) {
		return model.Product{}, false
	}
	return m.view.Items[i], true
}

// refresh stores a new view and rebuilds the table rows from it.
func (m *Model) refresh(v storefront.View) {
	m.view = v

	rows := make([]table.Row, 0, len(v.Items))
	for _, p := range v.Items {
		rows = append(rows, table.Row{
			strconv.FormatInt(p.ID, 10),
			Truncate(PlainText(p.Name), 30),
			p.DisplayPrice(),
			Truncate(PlainText(p.Description), 44),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// View renders the page.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Banner.Render(bannerText))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Subtitle.Render(m.view.Subtitle))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderBody())
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Help.Render("/ search • esc done • ↑/↓ select • a add to cart • ctrl+r show all • q quit"))

	return sb.String()
}

func (m Model) renderHeader() string {
	search := m.styles.Search
	if m.searchFocused {
		search = m.styles.SearchOn
	}

	parts := []string{
		m.styles.Header.Render(shopTitle),
		search.Render(m.search.View()),
	}
	if n := m.shop.CartCount(); n > 0 {
		parts = append(parts, m.styles.CartBadge.Render(fmt.Sprintf("Cart %d", n)))
	} else {
		parts = append(parts, m.styles.Subtitle.Render("Cart"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderBody() string {
	v := m.view

	if v.Status == storefront.StatusLoading {
		return fmt.Sprintf("%s %s", m.spin.View(), v.Notice)
	}

	var sb strings.Builder
	if v.ErrorMessage != "" {
		sb.WriteString(m.styles.Error.Render(v.ErrorMessage))
		sb.WriteString("\n")
		if v.UsingFallback {
			sb.WriteString(m.styles.Note.Render(storefront.MessageFallback))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	switch {
	case v.NoResults:
		sb.WriteString(m.styles.Notice.Render(v.Notice))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Help.Render("Press ctrl+r to show all products"))
		sb.WriteString("\n")
	case v.CatalogEmpty:
		if v.Notice != "" {
			sb.WriteString(m.styles.Notice.Render(v.Notice))
			sb.WriteString("\n")
		}
	default:
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
		if len(v.Items) != v.Total {
			sb.WriteString(m.styles.Help.Render(fmt.Sprintf("Showing %d of %d products", len(v.Items), v.Total)))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
