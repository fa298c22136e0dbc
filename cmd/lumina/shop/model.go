// Package shop implements the interactive storefront TUI.
// The interface is split across multiple files:
//   - model.go: types, construction, Init (this file)
//   - update.go: message handling
//   - view.go: rendering functions
//   - commands.go: async tea.Cmd producers
package shop

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/younglord3302/Lumina/cmd/lumina/ui"
	"github.com/younglord3302/Lumina/internal/cart"
	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/collections"
	"github.com/younglord3302/Lumina/internal/config"
	"github.com/younglord3302/Lumina/internal/gateway"
	"github.com/younglord3302/Lumina/internal/media"
	"github.com/younglord3302/Lumina/internal/nav"
	"github.com/younglord3302/Lumina/internal/session"
)

// Overlay is a panel composited over the current page. The product detail
// overlay is owned by the router; these are the rest.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayCart
	OverlayCompare
	OverlayChat
)

// Transient indicator lifetimes.
const (
	justAddedDuration = 1500 * time.Millisecond
	micDeniedDuration = 3 * time.Second
)

// chatTurn is one rendered line of the assistant conversation.
type chatTurn struct {
	role string // "you" or "lumina"
	text string
}

// Model is the top-level bubbletea model for the storefront.
type Model struct {
	styles ui.Styles
	log    *zap.Logger
	cfg    *config.Config

	// Domain state
	store     *catalog.Store
	ledger    *cart.Ledger
	favorites *collections.MembershipSet
	wishlist  *collections.MembershipSet
	compare   *collections.CompareSet
	sess      *session.Session
	orders    []session.Order
	router    *nav.Router

	// AI gateway; nil when no API key is configured (browse-only mode).
	gw       *gateway.Client
	chat     *gateway.Chat
	recorder *media.Recorder
	player   *media.Player

	// Layout
	width  int
	height int

	// Home grid
	filter      catalog.Filter
	visible     []catalog.Product
	cursor      int
	categories  []string
	categoryIdx int
	searching   bool
	searchInput textinput.Model

	// Transient indicators, invalidated by generation counters so a newer
	// marker is not cleared by an older timer.
	justAddedID  int
	justAddedGen int
	micDenied    bool
	micGen       int

	// Product detail overlay
	colorIdx    int
	sizeIdx     int
	enhanced    map[int]string
	enhancing   bool
	videoStatus string
	rendering   bool

	// Cart / compare overlays
	overlay       Overlay
	cartCursor    int
	compareCursor int

	// Assistant panel
	chatInput textinput.Model
	chatVP    viewport.Model
	chatLog   []chatTurn
	chatBusy  bool
	recording bool
	renderer  *glamour.TermRenderer

	// Auth forms
	formInputs []textinput.Model
	formFocus  int
	formErr    string

	spinner spinner.Model
	status  string
}

// New assembles the storefront model. gw may be nil; AI features then report
// that no key is configured instead of failing.
func New(store *catalog.Store, cfg *config.Config, log *zap.Logger, gw *gateway.Client) Model {
	if log == nil {
		log = zap.NewNop()
	}
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	sess := session.New()

	search := textinput.New()
	search.Placeholder = "search products"
	search.CharLimit = 64

	chatIn := textinput.New()
	chatIn.Placeholder = "ask the assistant (ctrl+r to speak)"
	chatIn.CharLimit = 280

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		styles:      styles,
		log:         log,
		cfg:         cfg,
		store:       store,
		ledger:      cart.NewLedger(),
		favorites:   collections.NewMembershipSet(),
		wishlist:    collections.NewMembershipSet(),
		compare:     collections.NewCompareSet(),
		sess:        sess,
		router:      nav.NewRouter(sess.SignedIn),
		gw:          gw,
		recorder:    media.NewRecorder(),
		player:      media.NewPlayer(),
		filter:      catalog.Filter{Category: "All"},
		categories:  store.Categories(),
		searchInput: search,
		chatInput:   chatIn,
		enhanced:    make(map[int]string),
		spinner:     sp,
	}
	if gw != nil {
		m.chat = gw.NewChat(store)
	}
	m.refreshVisible()
	return m
}

// Init starts the spinner and cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

// refreshVisible re-applies the active filter and clamps the grid cursor.
func (m *Model) refreshVisible() {
	m.visible = m.filter.Apply(m.store.All(), m.favorites.Contains)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedProduct returns the product under the grid cursor.
func (m *Model) selectedProduct() (catalog.Product, bool) {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return catalog.Product{}, false
	}
	return m.visible[m.cursor], true
}

// detailProduct resolves the router's overlay id against the catalog.
func (m *Model) detailProduct() (catalog.Product, bool) {
	id, open := m.router.DetailProduct()
	if !open {
		return catalog.Product{}, false
	}
	return m.store.ByID(id)
}

// openDetail shows the overlay and seeds the variant pickers with the
// product's defaults.
func (m *Model) openDetail(p catalog.Product) {
	m.router.OpenProduct(p.ID)
	m.colorIdx = 0
	m.sizeIdx = 0
	m.videoStatus = ""
}

// detailSelection reads the variant picker state as concrete values.
func (m *Model) detailSelection(p catalog.Product) (color, size string) {
	if len(p.Colors) > 0 {
		color = p.Colors[m.colorIdx%len(p.Colors)]
	}
	if len(p.Sizes) > 0 {
		size = p.Sizes[m.sizeIdx%len(p.Sizes)]
	}
	return color, size
}

// newAuthForm builds the sign-in or sign-up inputs.
func newAuthForm(withName bool) []textinput.Model {
	mk := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 64
		if secret {
			in.EchoMode = textinput.EchoPassword
		}
		return in
	}
	var inputs []textinput.Model
	if withName {
		inputs = append(inputs, mk("name", false))
	}
	inputs = append(inputs, mk("email", false), mk("password", true))
	inputs[0].Focus()
	return inputs
}
