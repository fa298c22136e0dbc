// Package nav implements the storefront view router: a small state machine
// over the named screens plus the product-detail overlay that composites on
// top of Home rather than replacing it.
package nav

// Page is a full-screen storefront view.
type Page int

const (
	Home Page = iota
	SignIn
	SignUp
	OrderHistory
	Wishlist
)

// String returns the display name of the page.
func (p Page) String() string {
	switch p {
	case Home:
		return "Home"
	case SignIn:
		return "Sign In"
	case SignUp:
		return "Sign Up"
	case OrderHistory:
		return "Order History"
	case Wishlist:
		return "Wishlist"
	}
	return "Unknown"
}

// Router tracks the current page and the product-detail overlay. Transitions
// are user-action triggered only; there are no timeouts and no terminal
// state.
type Router struct {
	page     Page
	detailID int // product id shown in the detail overlay, 0 when closed

	// signedIn gates OrderHistory. Wishlist is intentionally reachable
	// while signed out; see DESIGN.md on the observed asymmetry.
	signedIn func() bool
}

// NewRouter starts on Home. signedIn supplies the current auth state and may
// be nil, in which case OrderHistory is never reachable.
func NewRouter(signedIn func() bool) *Router {
	return &Router{page: Home, signedIn: signedIn}
}

// Page returns the current full-screen view.
func (r *Router) Page() Page {
	return r.page
}

// Go navigates to a page, applying the transition rules. It reports whether
// the navigation happened.
func (r *Router) Go(p Page) bool {
	if p == OrderHistory && (r.signedIn == nil || !r.signedIn()) {
		return false
	}
	// Sign-in and sign-up are full-screen replacements; the detail overlay
	// does not survive them.
	if p == SignIn || p == SignUp {
		r.detailID = 0
	}
	r.page = p
	return true
}

// OpenProduct shows the detail overlay. The overlay composites over the
// current page; it does not change Page().
func (r *Router) OpenProduct(id int) {
	if id > 0 {
		r.detailID = id
	}
}

// CloseProduct dismisses the detail overlay.
func (r *Router) CloseProduct() {
	r.detailID = 0
}

// DetailProduct returns the overlaid product id and whether the overlay is
// open.
func (r *Router) DetailProduct() (int, bool) {
	return r.detailID, r.detailID != 0
}

// ShowFavorites applies the favorites-toggle rule: flipping the filter while
// away from Home forces a transition back to Home.
func (r *Router) ShowFavorites() {
	if r.page != Home {
		r.page = Home
	}
}

// SignedOut is called after the session is cleared; every page lands back on
// Home, including OrderHistory.
func (r *Router) SignedOut() {
	r.page = Home
	r.detailID = 0
}

// SignedIn is called after authentication succeeds; both auth screens return
// to Home.
func (r *Router) SignedIn() {
	if r.page == SignIn || r.page == SignUp {
		r.page = Home
	}
}
