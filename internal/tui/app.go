// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-books/storefront/internal/cart"
	"github.com/inkwell-books/storefront/internal/checkout"
	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/guard"
	"github.com/inkwell-books/storefront/internal/session"
	"github.com/inkwell-books/storefront/internal/tui/adminview"
	"github.com/inkwell-books/storefront/internal/tui/cartview"
	"github.com/inkwell-books/storefront/internal/tui/catalog"
	"github.com/inkwell-books/storefront/internal/tui/checkoutform"
	"github.com/inkwell-books/storefront/internal/tui/icons"
	"github.com/inkwell-books/storefront/internal/tui/loginform"
	"github.com/inkwell-books/storefront/internal/tui/menu"
	"github.com/inkwell-books/storefront/internal/tui/ordersview"
	"github.com/inkwell-books/storefront/internal/tui/profileform"
	"github.com/inkwell-books/storefront/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenCatalog
	ScreenCart
	ScreenCheckout
	ScreenLogin
	ScreenOrders
	ScreenProfile
	ScreenAdmin
	ScreenConfirmation
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// booksLoadedMsg is sent when the catalog is loaded
type booksLoadedMsg struct {
	books      []client.Book
	categories []string
	err        error
}

// cartReloadedMsg is sent when the cart store finishes a reload
type cartReloadedMsg struct{}

// loginDoneMsg is sent when a login or registration attempt completes
type loginDoneMsg struct {
	err error
}

// ordersLoadedMsg is sent when order history is loaded
type ordersLoadedMsg struct {
	orders []client.Order
	err    error
}

// orderOpenedMsg is sent when a single order's items are loaded
type orderOpenedMsg struct {
	order *client.Order
	items []client.OrderItem
	err   error
}

// orderPlacedMsg is sent when the checkout flow completes
type orderPlacedMsg struct {
	conf *checkout.Confirmation
	err  error
}

// profileSavedMsg is sent when a profile update completes
type profileSavedMsg struct {
	user *client.UserRecord
	err  error
}

// adminDataMsg is sent when back office data is loaded
type adminDataMsg struct {
	stats  *client.DashboardStats
	orders []client.Order
	users  []client.UserRecord
	err    error
}

// statusUpdatedMsg is sent when an admin order status push completes
type statusUpdatedMsg struct {
	err error
}

// syncOutcomeMsg carries one cart sync result from the background workers
type syncOutcomeMsg struct {
	outcome cart.SyncOutcome
}

// App is the root model for the TUI
type App struct {
	api  *client.Client
	sess *session.Store
	cart *cart.Store
	flow *checkout.Flow

	screen     Screen
	width      int
	height     int
	err        error
	status     string // transient status line in the footer
	lastUpdate time.Time

	books        []client.Book
	confirmation *checkout.Confirmation
	pending      Screen // where to go after a successful login

	// Child models
	menu         *menu.Menu
	catalogView  *catalog.Catalog
	cartView     *cartview.CartView
	checkoutView *checkoutform.Wizard
	loginView    *loginform.Form
	ordersView   *ordersview.OrdersView
	profileView  *profileform.Form
	adminView    *adminview.AdminView
}

// New creates a new TUI application
func New(api *client.Client, sess *session.Store, cartStore *cart.Store) *App {
	a := &App{
		api:     api,
		sess:    sess,
		cart:    cartStore,
		flow:    checkout.New(api, cartStore),
		screen:  ScreenMenu,
		pending: ScreenCatalog,
		menu:    menu.New(),
	}
	a.syncMenu()
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadBooks(), a.reloadCart(), a.waitForSyncOutcome())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.catalogView != nil {
			a.catalogView.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.cartView != nil {
			a.cartView.SetWidth(a.contentWidth())
		}
		if a.ordersView != nil {
			a.ordersView.SetWidth(a.contentWidth())
		}
		if a.adminView != nil {
			a.adminView.SetWidth(a.contentWidth())
		}
		if a.checkoutView != nil {
			a.checkoutView.SetWidth(a.contentWidth())
			return a.updateChild(msg)
		}
		if a.screen == ScreenLogin || a.screen == ScreenProfile {
			return a.updateChild(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""
		return a.routeKey(msg)

	case menu.SelectedMsg:
		return a.handleMenuSelection(msg.Dest)

	case menu.QuitMsg:
		return a, tea.Quit

	case catalog.AddToCartMsg:
		a.cart.AddItem(cart.Line{
			BookID:   msg.Book.BookID,
			Title:    msg.Book.Title,
			Author:   msg.Book.Author,
			Price:    msg.Book.Price,
			ImageURL: msg.Book.ImageURL,
		}, 1)
		a.status = fmt.Sprintf("Added %q to cart", msg.Book.Title)
		return a, nil

	case catalog.BackMsg, cartview.BackMsg, ordersview.BackMsg, adminview.BackMsg:
		a.screen = ScreenMenu
		return a, nil

	case cartview.IncrementMsg:
		a.adjustQuantity(msg.BookID, 1)
		return a, nil

	case cartview.DecrementMsg:
		a.adjustQuantity(msg.BookID, -1)
		return a, nil

	case cartview.RemoveMsg:
		a.cart.RemoveItem(msg.BookID)
		a.refreshCartView()
		return a, nil

	case cartview.CheckoutMsg:
		return a.navigate(ScreenCheckout)

	case checkoutform.CompleteMsg:
		return a, a.placeOrder(msg.Form)

	case checkoutform.CancelledMsg:
		a.screen = ScreenCart
		a.checkoutView = nil
		a.refreshCartView()
		return a, nil

	case loginform.SubmitMsg:
		return a, a.authenticate(msg)

	case loginform.CancelledMsg:
		a.screen = ScreenMenu
		a.loginView = nil
		return a, nil

	case profileform.SaveMsg:
		return a, a.saveProfile(msg)

	case profileform.CancelledMsg:
		a.screen = ScreenMenu
		a.profileView = nil
		return a, nil

	case ordersview.OpenOrderMsg:
		return a, a.openOrder(msg.OrderID)

	case adminview.ChangeStatusMsg:
		return a, a.pushOrderStatus(msg.OrderID, msg.Status)

	case adminview.RefreshMsg:
		return a, a.loadAdminData()

	case booksLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.books = msg.books
		a.lastUpdate = time.Now()
		a.catalogView = catalog.New(msg.books, msg.categories, a.contentWidth(), a.contentHeight())
		return a, nil

	case cartReloadedMsg:
		a.refreshCartView()
		return a, nil

	case loginDoneMsg:
		return a.handleLoginDone(msg)

	case ordersLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.ordersView = ordersview.New(msg.orders, a.contentWidth())
		a.screen = ScreenOrders
		return a, nil

	case orderOpenedMsg:
		if msg.err != nil {
			a.status = "Could not load order: " + msg.err.Error()
			return a, nil
		}
		if a.ordersView != nil {
			a.ordersView.ShowDetail(*msg.order, msg.items)
		}
		return a, nil

	case orderPlacedMsg:
		return a.handleOrderPlaced(msg)

	case profileSavedMsg:
		if msg.err != nil {
			a.status = "Profile update failed: " + msg.err.Error()
			return a, nil
		}
		a.sess.UpdateUser(session.User{Name: msg.user.Name, Email: msg.user.Email})
		a.syncMenu()
		a.profileView = nil
		a.screen = ScreenMenu
		a.status = "Profile saved"
		return a, nil

	case adminDataMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		if a.adminView == nil {
			a.adminView = adminview.New(a.contentWidth())
		}
		a.adminView.SetStats(msg.stats)
		a.adminView.SetOrders(msg.orders)
		a.adminView.SetUsers(msg.users)
		a.screen = ScreenAdmin
		a.lastUpdate = time.Now()
		return a, nil

	case statusUpdatedMsg:
		if msg.err != nil {
			a.status = "Status update failed: " + msg.err.Error()
			return a, nil
		}
		return a, a.loadAdminData()

	case syncOutcomeMsg:
		if msg.outcome.Err != nil {
			a.status = fmt.Sprintf("Cart sync failed for book %d", msg.outcome.BookID)
		}
		return a, a.waitForSyncOutcome()

	default:
		// Forward unknown messages to form screens (needed for huh internals)
		switch a.screen {
		case ScreenCheckout, ScreenLogin, ScreenProfile:
			return a.updateChild(msg)
		}
	}

	return a, nil
}

// routeKey forwards a key press to the active screen's model
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenMenu:
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return a, cmd

	case ScreenCatalog:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.loadBooks()
		case "c":
			return a.navigate(ScreenCart)
		}
		if a.catalogView == nil {
			return a, nil
		}
		model, cmd := a.catalogView.Update(msg)
		a.catalogView = model.(*catalog.Catalog)
		return a, cmd

	case ScreenCart:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		if a.cartView == nil {
			return a, nil
		}
		model, cmd := a.cartView.Update(msg)
		a.cartView = model.(*cartview.CartView)
		return a, cmd

	case ScreenOrders:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		if a.ordersView == nil {
			return a, nil
		}
		model, cmd := a.ordersView.Update(msg)
		a.ordersView = model.(*ordersview.OrdersView)
		return a, cmd

	case ScreenAdmin:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		if a.adminView == nil {
			return a, nil
		}
		model, cmd := a.adminView.Update(msg)
		a.adminView = model.(*adminview.AdminView)
		return a, cmd

	case ScreenConfirmation:
		// Any key returns to the catalog
		a.screen = ScreenCatalog
		a.confirmation = nil
		return a, nil

	case ScreenCheckout, ScreenLogin, ScreenProfile:
		return a.updateChild(msg)
	}

	return a, nil
}

// updateChild forwards a message to the active form model
func (a *App) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenCheckout:
		if a.checkoutView == nil {
			return a, nil
		}
		model, cmd := a.checkoutView.Update(msg)
		a.checkoutView = model.(*checkoutform.Wizard)
		return a, cmd

	case ScreenLogin:
		if a.loginView == nil {
			return a, nil
		}
		model, cmd := a.loginView.Update(msg)
		a.loginView = model.(*loginform.Form)
		return a, cmd

	case ScreenProfile:
		if a.profileView == nil {
			return a, nil
		}
		model, cmd := a.profileView.Update(msg)
		a.profileView = model.(*profileform.Form)
		return a, cmd
	}

	return a, nil
}

// handleMenuSelection routes a menu choice through the access guard
func (a *App) handleMenuSelection(dest menu.Destination) (tea.Model, tea.Cmd) {
	switch dest {
	case menu.DestCatalog:
		return a.navigate(ScreenCatalog)
	case menu.DestCart:
		return a.navigate(ScreenCart)
	case menu.DestOrders:
		return a.navigate(ScreenOrders)
	case menu.DestProfile:
		return a.navigate(ScreenProfile)
	case menu.DestAdmin:
		return a.navigate(ScreenAdmin)
	case menu.DestLogin:
		a.pending = ScreenMenu
		return a.showLogin()
	case menu.DestLogout:
		a.sess.Logout()
		a.cart.Reload(context.Background(), a.sess.Identity())
		a.syncMenu()
		a.refreshCartView()
		a.status = "Logged out"
		return a, nil
	}
	return a, nil
}

// navigate switches screens, enforcing access rules first
func (a *App) navigate(dest Screen) (tea.Model, tea.Cmd) {
	role := ""
	if dest == ScreenAdmin {
		role = guard.RoleAdmin
	}

	if requiresLogin(dest) {
		switch guard.Decide(a.sess.State(), role) {
		case guard.RedirectLogin:
			a.pending = dest
			return a.showLogin()
		case guard.RedirectHome:
			a.status = "Admin access required"
			a.screen = ScreenMenu
			return a, nil
		}
	}

	a.screen = dest
	switch dest {
	case ScreenCatalog:
		if a.catalogView == nil {
			return a, a.loadBooks()
		}
	case ScreenCart:
		a.refreshCartView()
	case ScreenCheckout:
		if a.cart.TotalItems() == 0 {
			a.screen = ScreenCart
			a.status = "Your cart is empty"
			return a, nil
		}
		state := a.sess.State()
		name, email := "", ""
		if state.User != nil {
			name, email = state.User.Name, state.User.Email
		}
		a.checkoutView = checkoutform.New(a.cart.Lines(), a.cart.TotalPrice(), name, email)
		a.checkoutView.SetWidth(a.contentWidth())
		return a, a.checkoutView.Init()
	case ScreenOrders:
		return a, a.loadOrders()
	case ScreenProfile:
		state := a.sess.State()
		if state.User != nil {
			a.profileView = profileform.New(state.User.Name, state.User.Email)
			return a, a.profileView.Init()
		}
	case ScreenAdmin:
		return a, a.loadAdminData()
	}

	return a, nil
}

// requiresLogin reports whether a screen needs an authenticated session
func requiresLogin(s Screen) bool {
	switch s {
	case ScreenCheckout, ScreenOrders, ScreenProfile, ScreenAdmin:
		return true
	}
	return false
}

func (a *App) showLogin() (tea.Model, tea.Cmd) {
	a.loginView = loginform.New()
	a.screen = ScreenLogin
	return a, a.loginView.Init()
}

func (a *App) syncMenu() {
	state := a.sess.State()
	name := ""
	admin := false
	if state.User != nil {
		name = state.User.Name
		admin = state.User.Role == guard.RoleAdmin
	}
	a.menu.SetSession(state.LoggedIn, admin, name)
}

func (a *App) refreshCartView() {
	lines := a.cart.Lines()
	total := a.cart.TotalPrice()
	count := a.cart.TotalItems()
	if a.cartView == nil {
		a.cartView = cartview.New(lines, total, count, a.contentWidth())
	} else {
		a.cartView.SetLines(lines, total, count)
	}
}

func (a *App) adjustQuantity(bookID int64, delta int) {
	for _, l := range a.cart.Lines() {
		if l.BookID == bookID {
			a.cart.SetQuantity(bookID, l.Quantity+delta)
			break
		}
	}
	a.refreshCartView()
}

func (a *App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.loginView != nil {
			a.loginView.SetError(msg.err.Error())
			return a, a.loginView.Init()
		}
		return a, nil
	}

	a.loginView = nil
	a.syncMenu()
	a.status = "Welcome back"

	dest := a.pending
	a.pending = ScreenCatalog

	// Adopt the user's server-side cart before continuing
	return a, tea.Batch(a.reloadCart(), func() tea.Msg {
		return menu.SelectedMsg{Dest: screenToDest(dest)}
	})
}

// screenToDest maps a post-login destination back to a menu selection
func screenToDest(s Screen) menu.Destination {
	switch s {
	case ScreenCart:
		return menu.DestCart
	case ScreenCheckout:
		return menu.DestCart // re-enter checkout from the cart
	case ScreenOrders:
		return menu.DestOrders
	case ScreenProfile:
		return menu.DestProfile
	case ScreenAdmin:
		return menu.DestAdmin
	default:
		return menu.DestCatalog
	}
}

func (a *App) handleOrderPlaced(msg orderPlacedMsg) (tea.Model, tea.Cmd) {
	a.checkoutView = nil
	if msg.err != nil {
		a.screen = ScreenCart
		a.status = "Checkout failed: " + msg.err.Error()
		a.refreshCartView()
		return a, nil
	}

	// The backend empties the server cart on success; drop the local copy too
	a.cart.Clear()
	a.refreshCartView()
	a.confirmation = msg.conf
	a.screen = ScreenConfirmation
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenMenu:
		content = a.menu.View()
	case ScreenCatalog:
		content = a.viewCatalog()
	case ScreenCart:
		content = a.viewChild(a.cartView)
	case ScreenCheckout:
		content = a.viewChild(a.checkoutView)
	case ScreenLogin:
		content = a.viewChild(a.loginView)
	case ScreenOrders:
		content = a.viewChild(a.ordersView)
	case ScreenProfile:
		content = a.viewChild(a.profileView)
	case ScreenAdmin:
		content = a.viewChild(a.adminView)
	case ScreenConfirmation:
		content = a.viewConfirmation()
	default:
		content = a.menu.View()
	}

	return a.wrapWithFrame(content)
}

// viewer is the common surface of all child screen models
type viewer interface {
	View() string
}

func (a *App) viewChild(v viewer) string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	switch child := v.(type) {
	case *cartview.CartView:
		if child == nil {
			return "Loading..."
		}
	case *checkoutform.Wizard:
		if child == nil {
			return "Loading..."
		}
	case *loginform.Form:
		if child == nil {
			return "Loading..."
		}
	case *ordersview.OrdersView:
		if child == nil {
			return "Loading..."
		}
	case *profileform.Form:
		if child == nil {
			return "Loading..."
		}
	case *adminview.AdminView:
		if child == nil {
			return "Loading..."
		}
	}
	return v.View()
}

func (a *App) viewCatalog() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	if a.catalogView == nil {
		return styles.Panel.Width(a.contentWidth()).Render("Loading catalog...")
	}
	return a.catalogView.View()
}

func (a *App) viewConfirmation() string {
	if a.confirmation == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.CheckOK.String() + " Order Placed"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Order ID:  %s\n", styles.ValueStyle.Render(fmt.Sprintf("%d", a.confirmation.OrderID))))
	sb.WriteString(fmt.Sprintf("Reference: %s\n", styles.ValueStyle.Render(a.confirmation.Reference)))
	if a.confirmation.Message != "" {
		sb.WriteString("\n" + a.confirmation.Message + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("Press any key to keep browsing"))

	return styles.ActivePanel.Width(a.contentWidth()).Render(sb.String())
}

// contentWidth calculates the width available for screen content
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - panelPadding
	}
	return a.width - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, blank line, panel borders, blank line, footer
	return a.height - 8
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	icon := icons.App.String()
	title := "Inkwell Books"

	leftText := fmt.Sprintf(" %s %s", icon, titleStyle.Render(title))

	// Right side: session and cart summary
	state := a.sess.State()
	who := "guest"
	if state.User != nil && state.User.Name != "" {
		who = state.User.Name
	}
	rightPlain := fmt.Sprintf("%s %d  %s", icons.Cart.String(), a.cart.TotalItems(), who)
	rightText := contextStyle.Render(rightPlain) + " "

	leftRendered := lipgloss.NewStyle().Render(leftText)
	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	header := "╭─" + leftRendered + fill + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	// Build keyboard shortcuts based on current screen
	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenCatalog:
		shortcuts = []string{"↑↓ Navigate", "←→ Category", "Enter Add", "c Cart", "r Refresh", "b Back", "q Quit"}
	case ScreenCart:
		shortcuts = []string{"↑↓ Navigate", "+- Quantity", "x Remove", "Enter Checkout", "b Back", "q Quit"}
	case ScreenOrders:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "b Back", "q Quit"}
	case ScreenAdmin:
		shortcuts = []string{"Tab Switch", "↑↓ Navigate", "s Status", "r Refresh", "b Back", "q Quit"}
	case ScreenCheckout, ScreenLogin, ScreenProfile:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case ScreenConfirmation:
		shortcuts = []string{"Any key Continue"}
	}

	// Build styled shortcuts
	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	// Right side: transient status, falling back to last update time
	rightText := ""
	rightPlainText := ""
	if a.status != "" {
		rightText = statusStyle.Render(a.status) + " "
		rightPlainText = a.status + " "
	} else if !a.lastUpdate.IsZero() && (a.screen == ScreenCatalog || a.screen == ScreenAdmin) {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	// Calculate widths
	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	footer := "╰─" + leftText + fill + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// loadBooks creates a command to fetch the catalog
func (a *App) loadBooks() tea.Cmd {
	return func() tea.Msg {
		books, err := a.api.Books(context.Background())
		if err != nil {
			return booksLoadedMsg{err: err}
		}
		categories, err := a.api.BookCategories(context.Background())
		if err != nil {
			// Categories are a refinement; the catalog works without them
			categories = nil
		}
		return booksLoadedMsg{books: books, categories: categories}
	}
}

// reloadCart re-fetches cart contents for the current identity
func (a *App) reloadCart() tea.Cmd {
	return func() tea.Msg {
		a.cart.Reload(context.Background(), a.sess.Identity())
		return cartReloadedMsg{}
	}
}

// authenticate runs a login or registration attempt
func (a *App) authenticate(msg loginform.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if msg.Register {
			if _, err := a.api.Register(ctx, msg.Name, msg.Email, msg.Password); err != nil {
				return loginDoneMsg{err: err}
			}
		}
		return loginDoneMsg{err: a.sess.Login(ctx, msg.Email, msg.Password)}
	}
}

// loadOrders fetches the logged-in user's order history
func (a *App) loadOrders() tea.Cmd {
	return func() tea.Msg {
		userID, err := a.sess.NumericUserID()
		if err != nil {
			return ordersLoadedMsg{err: err}
		}
		orders, err := a.api.UserOrders(context.Background(), userID)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

// openOrder fetches a single order and its items
func (a *App) openOrder(orderID int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		order, err := a.api.GetOrder(ctx, orderID)
		if err != nil {
			return orderOpenedMsg{err: err}
		}
		items, err := a.api.OrderItems(ctx, orderID)
		if err != nil {
			return orderOpenedMsg{err: err}
		}
		return orderOpenedMsg{order: order, items: items}
	}
}

// placeOrder runs the checkout flow against the backend
func (a *App) placeOrder(form *checkout.Form) tea.Cmd {
	return func() tea.Msg {
		userID, err := a.sess.NumericUserID()
		if err != nil {
			return orderPlacedMsg{err: err}
		}
		conf, err := a.flow.Place(context.Background(), userID, form)
		return orderPlacedMsg{conf: conf, err: err}
	}
}

// saveProfile pushes profile changes to the backend
func (a *App) saveProfile(msg profileform.SaveMsg) tea.Cmd {
	return func() tea.Msg {
		userID, err := a.sess.NumericUserID()
		if err != nil {
			return profileSavedMsg{err: err}
		}
		state := a.sess.State()
		role := ""
		if state.User != nil {
			role = state.User.Role
		}
		updated, err := a.api.UpdateUser(context.Background(), &client.UserRecord{
			UserID: userID,
			Name:   msg.Name,
			Email:  msg.Email,
			Role:   role,
		})
		return profileSavedMsg{user: updated, err: err}
	}
}

// loadAdminData fetches everything the back office shows
func (a *App) loadAdminData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := a.api.AdminDashboard(ctx)
		if err != nil {
			return adminDataMsg{err: err}
		}
		orders, err := a.api.Orders(ctx)
		if err != nil {
			return adminDataMsg{err: err}
		}
		users, err := a.api.Users(ctx)
		if err != nil {
			return adminDataMsg{err: err}
		}
		return adminDataMsg{stats: stats, orders: orders, users: users}
	}
}

// pushOrderStatus updates an order's status on the backend
func (a *App) pushOrderStatus(orderID int64, status string) tea.Cmd {
	return func() tea.Msg {
		err := a.api.UpdateOrderStatus(context.Background(), orderID, status)
		return statusUpdatedMsg{err: err}
	}
}

// waitForSyncOutcome blocks on the next cart sync result
func (a *App) waitForSyncOutcome() tea.Cmd {
	return func() tea.Msg {
		outcome, ok := <-a.cart.Outcomes()
		if !ok {
			return nil
		}
		return syncOutcomeMsg{outcome: outcome}
	}
}

// Run starts the TUI
func Run(api *client.Client, sess *session.Store, cartStore *cart.Store) error {
	app := New(api, sess, cartStore)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
