package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/collections"
	"github.com/younglord3302/Lumina/internal/gateway"
	"github.com/younglord3302/Lumina/internal/logging"
	"github.com/younglord3302/Lumina/internal/nav"
	"github.com/younglord3302/Lumina/internal/session"
)

// gridColumns is the product grid width on Home.
const gridColumns = 3

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chatVP.Width = msg.Width - 6
		m.chatVP.Height = msg.Height - 8
		wrap := msg.Width - 8
		if wrap < 20 {
			wrap = 20
		}
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap)); err == nil {
			m.renderer = r
		}
		return m, nil

	case spinner.TickMsg:
		if m.chatBusy || m.enhancing || m.rendering {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case justAddedExpiredMsg:
		if msg.gen == m.justAddedGen {
			m.justAddedID = 0
		}
		return m, nil

	case micDeniedExpiredMsg:
		if msg.gen == m.micGen {
			m.micDenied = false
		}
		return m, nil

	case chatReplyMsg:
		m.chatBusy = false
		switch {
		case errors.Is(msg.err, gateway.ErrBusy):
			m.status = "the assistant is still answering"
		case msg.err != nil:
			m.status = "assistant error: " + msg.err.Error()
		default:
			m.chatLog = append(m.chatLog, chatTurn{role: "lumina", text: msg.reply})
			m.chatVP.SetContent(m.renderChatLog())
			m.chatVP.GotoBottom()
		}
		return m, nil

	case transcriptMsg:
		switch {
		case errIsMicPermission(msg.err):
			m.micDenied = true
			m.micGen++
			return m, expireMicDenied(m.micGen)
		case msg.err != nil:
			m.status = "transcription failed: " + msg.err.Error()
		default:
			m.chatInput.SetValue(msg.text)
			m.chatInput.CursorEnd()
		}
		return m, nil

	case speechDoneMsg:
		if msg.err != nil {
			m.status = "playback failed: " + msg.err.Error()
		}
		return m, nil

	case enhancedMsg:
		m.enhancing = false
		m.enhanced[msg.productID] = msg.text
		return m, nil

	case videoDoneMsg:
		m.rendering = false
		switch {
		case msg.err != nil:
			m.videoStatus = "render failed: " + msg.err.Error()
		case msg.path != "":
			m.videoStatus = "saved " + msg.path
		default:
			m.videoStatus = "hosted at " + msg.uri
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	m.status = ""

	if m.searching {
		return m.handleSearchKey(msg)
	}
	switch m.overlay {
	case OverlayChat:
		return m.handleChatKey(msg)
	case OverlayCart:
		return m.handleCartKey(msg)
	case OverlayCompare:
		return m.handleCompareKey(msg)
	}
	if _, open := m.router.DetailProduct(); open {
		return m.handleDetailKey(msg)
	}

	switch m.router.Page() {
	case nav.SignIn, nav.SignUp:
		return m.handleFormKey(msg)
	case nav.OrderHistory:
		return m.handleOrdersKey(msg)
	case nav.Wishlist:
		return m.handleWishlistKey(msg)
	}
	return m.handleHomeKey(msg)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor-gridColumns >= 0 {
			m.cursor -= gridColumns
		}
	case "down", "j":
		if m.cursor+gridColumns < len(m.visible) {
			m.cursor += gridColumns
		}

	case "tab":
		m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
		m.filter.Category = m.categories[m.categoryIdx]
		m.refreshVisible()
	case "shift+tab":
		m.categoryIdx = (m.categoryIdx - 1 + len(m.categories)) % len(m.categories)
		m.filter.Category = m.categories[m.categoryIdx]
		m.refreshVisible()

	case "f":
		if p, ok := m.selectedProduct(); ok {
			m.favorites.Toggle(p.ID)
			m.refreshVisible()
		}
	case "F":
		return m.toggleFavoritesFilter()

	case "w":
		if p, ok := m.selectedProduct(); ok {
			if m.wishlist.Toggle(p.ID) {
				m.status = p.Name + " added to wishlist"
			} else {
				m.status = p.Name + " removed from wishlist"
			}
		}

	case "c":
		if p, ok := m.selectedProduct(); ok {
			return m.toggleCompare(p)
		}

	case "a":
		if p, ok := m.selectedProduct(); ok {
			return m.quickAdd(p)
		}

	case "enter":
		if p, ok := m.selectedProduct(); ok {
			m.openDetail(p)
		}

	case "b":
		m.overlay = OverlayCart
	case "C":
		m.overlay = OverlayCompare
	case "t":
		return m.openChat()

	case "o":
		if !m.router.Go(nav.OrderHistory) {
			m.status = "sign in to see your orders"
		}
	case "W":
		m.router.Go(nav.Wishlist)
	case "i":
		m.router.Go(nav.SignIn)
		m.formInputs = newAuthForm(false)
		m.formFocus = 0
		m.formErr = ""
		return m, textinput.Blink
	case "u":
		m.router.Go(nav.SignUp)
		m.formInputs = newAuthForm(true)
		m.formFocus = 0
		m.formErr = ""
		return m, textinput.Blink
	case "x":
		m.signOut()
	}
	return m, nil
}

// addAndShowBag adds the product and brings the bag overlay up so the
// mutation is visible. The grid quick-add keeps its inline marker instead.
func (m *Model) addAndShowBag(p catalog.Product, color, size string) {
	m.ledger.Add(p, color, size)
	m.overlay = OverlayCart
	m.cartCursor = 0
}

// signOut clears the session and any state that only exists while signed in.
func (m *Model) signOut() {
	if !m.sess.SignedIn() {
		return
	}
	m.sess.SignOut()
	m.orders = nil
	m.router.SignedOut()
	m.status = "signed out"
}

// toggleFavoritesFilter flips the favorites-only filter; flipping it away
// from Home always lands back on Home.
func (m Model) toggleFavoritesFilter() (tea.Model, tea.Cmd) {
	m.filter.FavoritesOnly = !m.filter.FavoritesOnly
	m.router.ShowFavorites()
	m.refreshVisible()
	return m, nil
}

// quickAdd puts the product in the bag with default variants and arms the
// transient "added" marker.
func (m Model) quickAdd(p catalog.Product) (tea.Model, tea.Cmd) {
	item := m.ledger.Add(p, "", "")
	m.justAddedID = p.ID
	m.justAddedGen++
	m.log.Debug("added to bag",
		zap.String("category", logging.CategoryCart),
		zap.Int("product_id", p.ID), zap.Int("quantity", item.Quantity))
	return m, expireJustAdded(m.justAddedGen)
}

func (m Model) toggleCompare(p catalog.Product) (tea.Model, tea.Cmd) {
	if m.compare.Contains(p.ID) {
		m.compare.Toggle(p)
		m.status = p.Name + " removed from compare"
		return m, nil
	}
	if !m.compare.Toggle(p) {
		m.status = fmt.Sprintf("compare holds at most %d products", collections.MaxCompare)
		return m, nil
	}
	m.status = p.Name + " added to compare"
	return m, nil
}

func (m Model) openChat() (tea.Model, tea.Cmd) {
	if m.gw == nil {
		m.status = noKeyStatus
		return m, nil
	}
	m.overlay = OverlayChat
	m.chatInput.Focus()
	m.chatVP.SetContent(m.renderChatLog())
	m.chatVP.GotoBottom()
	return m, textinput.Blink
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.filter.Query = m.searchInput.Value()
	m.refreshVisible()
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.detailProduct()
	if !ok {
		m.router.CloseProduct()
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.router.CloseProduct()

	case "]":
		if len(p.Colors) > 0 {
			m.colorIdx = (m.colorIdx + 1) % len(p.Colors)
		}
	case "[":
		if len(p.Colors) > 0 {
			m.colorIdx = (m.colorIdx - 1 + len(p.Colors)) % len(p.Colors)
		}
	case "}":
		if len(p.Sizes) > 0 {
			m.sizeIdx = (m.sizeIdx + 1) % len(p.Sizes)
		}
	case "{":
		if len(p.Sizes) > 0 {
			m.sizeIdx = (m.sizeIdx - 1 + len(p.Sizes)) % len(p.Sizes)
		}

	case "a", "enter":
		color, size := m.detailSelection(p)
		m.addAndShowBag(p, color, size)

	case "f":
		m.favorites.Toggle(p.ID)
		m.refreshVisible()
	case "w":
		m.wishlist.Toggle(p.ID)
	case "c":
		return m.toggleCompare(p)

	case "e":
		if m.gw == nil {
			m.status = noKeyStatus
			return m, nil
		}
		if _, done := m.enhanced[p.ID]; done || m.enhancing {
			return m, nil
		}
		m.enhancing = true
		return m, tea.Batch(m.spinner.Tick, m.enhance(p))

	case "v":
		if m.gw == nil {
			m.status = noKeyStatus
			return m, nil
		}
		if m.rendering {
			return m, nil
		}
		m.rendering = true
		m.videoStatus = "rendering 360 view..."
		return m, tea.Batch(m.spinner.Tick, m.renderShowcase(p))

	case "b":
		m.overlay = OverlayCart
	}
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.ledger.Items()
	switch msg.String() {
	case "esc", "b", "q":
		m.overlay = OverlayNone
		m.cartCursor = 0

	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(items)-1 {
			m.cartCursor++
		}

	case "+", "=":
		if m.cartCursor < len(items) {
			it := items[m.cartCursor]
			m.ledger.UpdateQuantity(it.Product.ID, 1, it.SelectedColor, it.SelectedSize)
		}
	case "-":
		if m.cartCursor < len(items) {
			it := items[m.cartCursor]
			m.ledger.UpdateQuantity(it.Product.ID, -1, it.SelectedColor, it.SelectedSize)
		}
	case "x", "delete":
		if m.cartCursor < len(items) {
			it := items[m.cartCursor]
			m.ledger.Remove(it.Product.ID, it.SelectedColor, it.SelectedSize)
			if m.cartCursor >= m.ledger.Len() && m.cartCursor > 0 {
				m.cartCursor--
			}
		}
	}
	return m, nil
}

func (m Model) handleCompareKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.compare.Products()
	switch msg.String() {
	case "esc", "q":
		m.overlay = OverlayNone
		m.compareCursor = 0

	case "left", "h":
		if m.compareCursor > 0 {
			m.compareCursor--
		}
	case "right", "l":
		if m.compareCursor < len(products)-1 {
			m.compareCursor++
		}

	case "x":
		if m.compareCursor < len(products) {
			m.compare.Remove(products[m.compareCursor].ID)
			if m.compareCursor > 0 {
				m.compareCursor--
			}
		}

	case "a", "enter":
		if m.compareCursor < len(products) {
			p := products[m.compareCursor]
			sel := m.compare.SelectionFor(p.ID)
			m.addAndShowBag(p, sel.Color, sel.Size)
		}

	case "]":
		m.cycleCompareVariant(products, true, 1)
	case "[":
		m.cycleCompareVariant(products, true, -1)
	case "}":
		m.cycleCompareVariant(products, false, 1)
	case "{":
		m.cycleCompareVariant(products, false, -1)
	}
	return m, nil
}

// cycleCompareVariant steps the color or size selection of the product under
// the compare cursor.
func (m *Model) cycleCompareVariant(products []catalog.Product, color bool, dir int) {
	if m.compareCursor >= len(products) {
		return
	}
	p := products[m.compareCursor]
	sel := m.compare.SelectionFor(p.ID)
	if color && len(p.Colors) > 0 {
		sel.Color = cycle(p.Colors, sel.Color, dir)
	}
	if !color && len(p.Sizes) > 0 {
		sel.Size = cycle(p.Sizes, sel.Size, dir)
	}
	m.compare.Select(p.ID, sel.Color, sel.Size)
}

// cycle steps through the options list from the current value.
func cycle(options []string, current string, dir int) string {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	return options[(idx+dir+len(options))%len(options)]
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.overlay = OverlayNone
		m.chatInput.Blur()
		return m, nil

	case tea.KeyEnter:
		text := m.chatInput.Value()
		if text == "" || m.chatBusy || m.chat == nil {
			return m, nil
		}
		m.chatBusy = true
		m.chatLog = append(m.chatLog, chatTurn{role: "you", text: text})
		m.chatInput.SetValue("")
		m.chatVP.SetContent(m.renderChatLog())
		m.chatVP.GotoBottom()
		return m, tea.Batch(m.spinner.Tick, m.sendChat(text))

	case tea.KeyCtrlR:
		return m.toggleRecording()

	case tea.KeyCtrlT:
		for i := len(m.chatLog) - 1; i >= 0; i-- {
			if m.chatLog[i].role == "lumina" {
				return m, m.speak(m.chatLog[i].text)
			}
		}
		return m, nil

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.chatVP, cmd = m.chatVP.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// toggleRecording starts or finishes voice capture for the chat input.
func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.recording {
		m.recording = false
		return m, m.stopAndTranscribe()
	}
	if err := m.recorder.Start(context.Background()); err != nil {
		if errIsMicPermission(err) {
			m.micDenied = true
			m.micGen++
			return m, expireMicDenied(m.micGen)
		}
		m.status = "recording failed: " + err.Error()
		return m, nil
	}
	m.recording = true
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.router.Go(nav.Home)
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.moveFormFocus(1)
		return m, textinput.Blink
	case tea.KeyShiftTab, tea.KeyUp:
		m.moveFormFocus(-1)
		return m, textinput.Blink

	case tea.KeyEnter:
		if m.formFocus < len(m.formInputs)-1 {
			m.moveFormFocus(1)
			return m, textinput.Blink
		}
		return m.submitAuthForm()
	}

	// Switch between the two auth screens before any typing happens.
	if msg.String() == "ctrl+s" {
		if m.router.Page() == nav.SignIn {
			m.router.Go(nav.SignUp)
			m.formInputs = newAuthForm(true)
		} else {
			m.router.Go(nav.SignIn)
			m.formInputs = newAuthForm(false)
		}
		m.formFocus = 0
		m.formErr = ""
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) moveFormFocus(dir int) {
	m.formInputs[m.formFocus].Blur()
	m.formFocus = (m.formFocus + dir + len(m.formInputs)) % len(m.formInputs)
	m.formInputs[m.formFocus].Focus()
}

func (m Model) submitAuthForm() (tea.Model, tea.Cmd) {
	var (
		user session.User
		err  error
	)
	if m.router.Page() == nav.SignUp {
		user, err = m.sess.SignUp(m.formInputs[0].Value(), m.formInputs[1].Value(), m.formInputs[2].Value())
	} else {
		user, err = m.sess.SignIn(m.formInputs[0].Value(), m.formInputs[1].Value())
	}
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}

	m.orders = session.MockOrders(m.store)
	m.router.SignedIn()
	m.status = "welcome back, " + user.Name
	m.log.Info("signed in",
		zap.String("category", logging.CategoryUI), zap.String("user", user.Email))
	return m, nil
}

func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "g":
		m.router.Go(nav.Home)
	case "F":
		return m.toggleFavoritesFilter()
	case "b":
		m.overlay = OverlayCart
	case "x":
		m.signOut()
	}
	return m, nil
}

func (m Model) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ids := m.wishlist.IDs()
	switch msg.String() {
	case "esc", "q", "g":
		m.router.Go(nav.Home)

	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(ids)-1 {
			m.cartCursor++
		}

	case "enter":
		if m.cartCursor < len(ids) {
			if p, ok := m.store.ByID(ids[m.cartCursor]); ok {
				m.openDetail(p)
			}
		}
	case "a":
		if m.cartCursor < len(ids) {
			if p, ok := m.store.ByID(ids[m.cartCursor]); ok {
				m.addAndShowBag(p, "", "")
			}
		}
	case "w", "x":
		if m.cartCursor < len(ids) {
			m.wishlist.Toggle(ids[m.cartCursor])
			if m.cartCursor > 0 {
				m.cartCursor--
			}
		}

	case "F":
		return m.toggleFavoritesFilter()
	case "b":
		m.overlay = OverlayCart
	}
	return m, nil
}
