package shop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/younglord3302/Lumina/cmd/lumina/ui"
	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/nav"
	"github.com/younglord3302/Lumina/internal/session"
)

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.overlay {
	case OverlayCart:
		b.WriteString(m.renderCart())
	case OverlayCompare:
		b.WriteString(m.renderCompare())
	case OverlayChat:
		b.WriteString(m.renderChat())
	default:
		if p, open := m.detailProduct(); open {
			b.WriteString(m.renderDetail(p))
		} else {
			switch m.router.Page() {
			case nav.SignIn, nav.SignUp:
				b.WriteString(m.renderAuthForm())
			case nav.OrderHistory:
				b.WriteString(m.renderOrders())
			case nav.Wishlist:
				b.WriteString(m.renderWishlist())
			default:
				b.WriteString(m.renderHome())
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	s := m.styles
	left := s.Header.Render(" LUMINA ")

	var parts []string
	parts = append(parts, m.router.Page().String())
	if n := m.ledger.Count(); n > 0 {
		parts = append(parts, s.Badge.Render(fmt.Sprintf("bag %d", n)))
	}
	if n := m.wishlist.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("wishlist %d", n))
	}
	if n := m.compare.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("compare %d", n))
	}
	if user, ok := m.sess.User(); ok {
		parts = append(parts, s.Bold.Render(user.Name))
	} else {
		parts = append(parts, s.Muted.Render("guest"))
	}
	return left + "  " + s.Muted.Render(strings.Join(parts, " · "))
}

func (m Model) renderFooter() string {
	s := m.styles
	if m.micDenied {
		return s.Error.Render("microphone access denied")
	}
	if m.status != "" {
		return s.Info.Render(m.status)
	}

	var help string
	switch {
	case m.overlay == OverlayChat:
		help = "enter send · ctrl+r record · ctrl+t speak reply · esc close"
	case m.overlay == OverlayCart:
		help = "+/- quantity · x remove · esc close"
	case m.overlay == OverlayCompare:
		help = "←/→ select · [/] color · {/} size · x remove · esc close"
	default:
		if _, open := m.router.DetailProduct(); open {
			help = "[/] color · {/} size · a add · e enhance · v 360 video · esc back"
		} else {
			switch m.router.Page() {
			case nav.SignIn, nav.SignUp:
				help = "tab next field · enter submit · ctrl+s switch · esc back"
			case nav.Home:
				help = "/ search · tab category · f fav · F favs only · w wish · c compare · a add · b bag · t chat · q quit"
			default:
				help = "esc back · b bag"
			}
		}
	}
	return s.Footer.Render(help)
}

func (m Model) renderHome() string {
	s := m.styles
	var b strings.Builder

	filterLine := "category: " + s.Bold.Render(m.filter.Category)
	if m.filter.FavoritesOnly {
		filterLine += "  " + s.Favorite.Render("♥ favorites only")
	}
	if m.searching {
		filterLine += "  " + s.Prompt.Render("/") + m.searchInput.View()
	} else if m.filter.Query != "" {
		filterLine += "  search: " + s.Bold.Render(m.filter.Query)
	}
	b.WriteString(s.Content.Render(filterLine))
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(s.Content.Render(s.Muted.Render("no products match")))
		return b.String()
	}

	var cards []string
	var rows []string
	for i, p := range m.visible {
		cards = append(cards, m.renderCard(p, i == m.cursor))
		if len(cards) == gridColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
			cards = nil
		}
	}
	if len(cards) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (m Model) renderCard(p catalog.Product, selected bool) string {
	s := m.styles
	var b strings.Builder

	name := p.Name
	if m.favorites.Contains(p.ID) {
		name = s.Favorite.Render("♥ ") + name
	}
	b.WriteString(s.Bold.Render(name))
	b.WriteString("\n")
	b.WriteString(s.Category.Render(p.Category))
	if rating := p.AverageRating(); rating > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("  %.1f★", rating)))
	}
	b.WriteString("\n")
	b.WriteString(s.Price.Render("$" + p.Price.StringFixed(2)))

	var marks []string
	if m.justAddedID == p.ID {
		marks = append(marks, s.Success.Render("✓ added"))
	}
	if m.wishlist.Contains(p.ID) {
		marks = append(marks, s.Muted.Render("wish"))
	}
	if m.compare.Contains(p.ID) {
		marks = append(marks, s.Muted.Render("cmp"))
	}
	if len(marks) > 0 {
		b.WriteString("  " + strings.Join(marks, " "))
	}

	card := s.Card
	if selected {
		card = s.SelectedCard
	}
	return card.Width(28).Render(b.String())
}

func (m Model) renderDetail(p catalog.Product) string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(s.Category.Render(p.Category))
	b.WriteString("  ")
	b.WriteString(s.Price.Render("$" + p.Price.StringFixed(2)))
	if m.justAddedID == p.ID {
		b.WriteString("  " + s.Success.Render("✓ added to bag"))
	}
	b.WriteString("\n\n")

	if text, ok := m.enhanced[p.ID]; ok {
		b.WriteString(s.AssistantReply.Render(text))
	} else {
		b.WriteString(s.Body.Render(p.Description))
		if m.enhancing {
			b.WriteString("\n" + m.spinner.View() + s.Muted.Render(" enhancing description..."))
		}
	}
	b.WriteString("\n\n")

	color, size := m.detailSelection(p)
	if len(p.Colors) > 0 {
		b.WriteString("color: " + renderOptions(s, p.Colors, color) + "\n")
	}
	if len(p.Sizes) > 0 {
		b.WriteString("size:  " + renderOptions(s, p.Sizes, size) + "\n")
	}

	if len(p.Features) > 0 {
		b.WriteString("\n")
		for _, f := range p.Features {
			b.WriteString(s.Muted.Render("• "+f) + "\n")
		}
	}

	if len(p.Reviews) > 0 {
		b.WriteString("\n" + s.Subtitle.Render(fmt.Sprintf("%d reviews, %.1f★ average", len(p.Reviews), p.AverageRating())) + "\n")
		for _, r := range p.Reviews {
			b.WriteString(fmt.Sprintf("%s %s: %s\n",
				s.Bold.Render(r.User), s.Muted.Render(strings.Repeat("★", r.Rating)), r.Comment))
		}
	}

	if m.rendering {
		b.WriteString("\n" + m.spinner.View() + s.Muted.Render(" "+m.videoStatus))
	} else if m.videoStatus != "" {
		b.WriteString("\n" + s.Info.Render(m.videoStatus))
	}

	return s.Overlay.Width(min(m.width-4, 76)).Render(b.String())
}

// renderOptions shows a variant picker with the active value highlighted.
func renderOptions(s ui.Styles, options []string, active string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if o == active {
			parts[i] = s.Badge.Render(o)
		} else {
			parts[i] = s.Muted.Render(o)
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderCart() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Your Bag"))
	b.WriteString("\n")

	items := m.ledger.Items()
	if len(items) == 0 {
		b.WriteString(s.Muted.Render("your bag is empty"))
		return s.Overlay.Width(min(m.width-4, 72)).Render(b.String())
	}

	for i, it := range items {
		line := fmt.Sprintf("%dx %s", it.Quantity, it.Product.Name)
		var variant []string
		if it.SelectedColor != "" {
			variant = append(variant, it.SelectedColor)
		}
		if it.SelectedSize != "" {
			variant = append(variant, it.SelectedSize)
		}
		if len(variant) > 0 {
			line += s.Muted.Render(" (" + strings.Join(variant, ", ") + ")")
		}
		line += "  " + s.Price.Render("$"+it.Subtotal().StringFixed(2))
		if i == m.cartCursor {
			line = s.Prompt.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(s.RenderDivider(30) + "\n")
	b.WriteString(s.Bold.Render("total ") + s.Price.Render("$"+m.ledger.Total().StringFixed(2)))
	return s.Overlay.Width(min(m.width-4, 72)).Render(b.String())
}

func (m Model) renderCompare() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Compare"))
	b.WriteString("\n")

	products := m.compare.Products()
	if len(products) == 0 {
		b.WriteString(s.Muted.Render("nothing to compare; press c on a product"))
		return s.Overlay.Width(min(m.width-4, 76)).Render(b.String())
	}

	var cols []string
	for i, p := range products {
		var col strings.Builder
		col.WriteString(s.Bold.Render(p.Name) + "\n")
		col.WriteString(s.Price.Render("$"+p.Price.StringFixed(2)) + "\n")
		if rating := p.AverageRating(); rating > 0 {
			col.WriteString(fmt.Sprintf("%.1f★\n", rating))
		}
		sel := m.compare.SelectionFor(p.ID)
		if sel.Color != "" {
			col.WriteString(sel.Color + "\n")
		}
		if sel.Size != "" {
			col.WriteString(sel.Size + "\n")
		}
		card := s.Card
		if i == m.compareCursor {
			card = s.SelectedCard
		}
		cols = append(cols, card.Width(20).Render(col.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return b.String()
}

func (m Model) renderChat() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Assistant"))
	b.WriteString("\n")
	b.WriteString(m.chatVP.View())
	b.WriteString("\n")

	if m.chatBusy {
		b.WriteString(m.spinner.View() + s.Muted.Render(" thinking..."))
	} else if m.recording {
		b.WriteString(s.Error.Render("● recording, ctrl+r to stop"))
	} else {
		b.WriteString(s.Prompt.Render("> ") + m.chatInput.View())
	}
	return b.String()
}

// renderChatLog builds the conversation transcript for the viewport.
func (m Model) renderChatLog() string {
	s := m.styles
	if len(m.chatLog) == 0 {
		return s.Muted.Render("ask about products, sizes or recommendations")
	}
	var b strings.Builder
	for _, turn := range m.chatLog {
		if turn.role == "you" {
			b.WriteString(s.Prompt.Render("you ") + turn.text + "\n")
			continue
		}
		text := turn.text
		if m.renderer != nil {
			if out, err := m.renderer.Render(turn.text); err == nil {
				text = strings.TrimRight(out, "\n")
			}
		}
		b.WriteString(s.AssistantReply.Render(text) + "\n")
	}
	return b.String()
}

func (m Model) renderAuthForm() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render(m.router.Page().String()))
	b.WriteString("\n")

	labels := []string{"email", "password"}
	if m.router.Page() == nav.SignUp {
		labels = []string{"name", "email", "password"}
	}
	for i, in := range m.formInputs {
		b.WriteString(s.Muted.Render(fmt.Sprintf("%-9s", labels[i])) + in.View() + "\n")
	}
	if m.formErr != "" {
		b.WriteString("\n" + s.Error.Render(m.formErr))
	}
	return s.Overlay.Width(min(m.width-4, 52)).Render(b.String())
}

func (m Model) renderOrders() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Order History"))
	b.WriteString("\n")

	if len(m.orders) == 0 {
		b.WriteString(s.Muted.Render("no orders yet"))
		return b.String()
	}
	for _, o := range m.orders {
		b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
			s.Bold.Render(o.ID), s.Muted.Render(o.Date),
			renderStatus(s, o), s.Price.Render("$"+o.Total.StringFixed(2))))
		for _, it := range o.Items {
			b.WriteString(s.Muted.Render(fmt.Sprintf("   %dx %s\n", it.Quantity, it.Product.Name)))
		}
	}
	return b.String()
}

func renderStatus(s ui.Styles, o session.Order) string {
	switch o.Status {
	case "Delivered":
		return s.Success.Render(string(o.Status))
	case "Cancelled":
		return s.Error.Render(string(o.Status))
	case "Shipped":
		return s.Info.Render(string(o.Status))
	}
	return s.Warning.Render(string(o.Status))
}

func (m Model) renderWishlist() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Wishlist"))
	b.WriteString("\n")

	ids := m.wishlist.IDs()
	if len(ids) == 0 {
		b.WriteString(s.Muted.Render("your wishlist is empty; press w on a product"))
		return b.String()
	}
	for i, id := range ids {
		p, ok := m.store.ByID(id)
		if !ok {
			continue
		}
		line := fmt.Sprintf("%s  %s", s.Bold.Render(p.Name), s.Price.Render("$"+p.Price.StringFixed(2)))
		if m.justAddedID == p.ID {
			line += "  " + s.Success.Render("✓ added")
		}
		if i == m.cartCursor {
			line = s.Prompt.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
