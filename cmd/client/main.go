// Package main runs the interactive storefront shell. It keeps a
// per-installation session identity on disk, talks to the storefront
// API and drives the view router the way the web shop does.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/client/admin"
	"github.com/hansshop/storefront/internal/client/api"
	"github.com/hansshop/storefront/internal/client/cart"
	"github.com/hansshop/storefront/internal/client/catalog"
	"github.com/hansshop/storefront/internal/client/checkout"
	"github.com/hansshop/storefront/internal/client/orders"
	"github.com/hansshop/storefront/internal/client/router"
	"github.com/hansshop/storefront/internal/client/session"
	"github.com/hansshop/storefront/internal/models"
)

var (
	version   string
	buildDate string
)

// consoleNotifier prints user-facing notices to stdout.
type consoleNotifier struct{}

func (consoleNotifier) Info(msg string)  { fmt.Println("[info] " + msg) }
func (consoleNotifier) Error(msg string) { fmt.Println("[error] " + msg) }

// shell bundles the collaborators the REPL commands operate on.
type shell struct {
	store    *session.Store
	client   *api.Client
	cart     *cart.Synchronizer
	catalog  *catalog.Catalog
	history  *orders.History
	checkout *checkout.Flow
	panel    *admin.Panel
	router   *router.Router
	form     checkout.Form
}

func (s *shell) show(ctx context.Context) {
	fmt.Printf("-- %s %s\n", s.router.Active(), s.router.Fragment())
	switch s.router.Active() {
	case router.ViewHome:
		for _, p := range s.catalog.Featured(4) {
			fmt.Printf("  %s  %s  $%.2f\n", p.ID, p.Name, p.Price)
		}
	case router.ViewProducts:
		for _, p := range s.catalog.Products() {
			fmt.Printf("  %s  %s  $%.2f  stock:%d\n", p.ID, p.Name, p.Price, p.Stock)
		}
	case router.ViewCart:
		snap := s.cart.Snapshot()
		for _, it := range snap.Items {
			fmt.Printf("  %s  %s  x%d  $%.2f\n", it.ID, it.ProductName, it.Quantity, it.Price)
		}
		fmt.Printf("  total: $%.2f (%d units)\n", snap.Total, snap.Units())
	case router.ViewOrders:
		for _, o := range s.history.Orders() {
			fmt.Printf("  %s  %s  $%.2f  %s\n", o.ID, o.OrderNumber, o.Total, o.Status)
		}
	case router.ViewAdmin:
		fmt.Printf("  %d products, %d orders\n", len(s.panel.Products()), len(s.panel.Orders()))
	}
}

func (s *shell) login(ctx context.Context, email, password string) {
	creds, err := s.client.Auth.Login(ctx, email, password)
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	if err := s.store.SetIdentity(creds.Token, creds.User); err != nil {
		fmt.Println("Could not persist identity:", err)
		return
	}
	fmt.Printf("Welcome back, %s\n", creds.User.Name)
	s.router.Refresh(ctx)
}

func (s *shell) register(ctx context.Context, name, email, password string) {
	creds, err := s.client.Auth.Register(ctx, name, email, password, models.RoleUser)
	if err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	if err := s.store.SetIdentity(creds.Token, creds.User); err != nil {
		fmt.Println("Could not persist identity:", err)
		return
	}
	fmt.Printf("Welcome, %s\n", creds.User.Name)
	s.router.Refresh(ctx)
}

func (s *shell) logout(ctx context.Context) {
	if err := s.store.ClearIdentity(); err != nil {
		fmt.Println("Logout failed:", err)
		return
	}
	s.cart.Drop()
	fmt.Println("Logged out")
	s.router.Navigate(ctx, router.ViewHome)
}

func (s *shell) checkoutCmd(ctx context.Context, args []string) {
	form := s.form
	if len(args) >= 1 {
		form.Name = args[0]
	}
	if len(args) >= 2 {
		form.Email = args[1]
	}
	checkout.Prefill(&form, s.store)

	order, err := s.checkout.Confirm(ctx, form)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			fmt.Println("Cannot checkout:", verr.Reason, "("+verr.Field+")")
		} else {
			fmt.Println("Checkout failed:", err)
		}
		return
	}
	fmt.Printf("Order %s placed, total $%.2f\n", order.OrderNumber, order.Total)
	s.form = checkout.Form{}
	if s.store.IsAuthenticated() {
		s.router.Navigate(ctx, router.ViewOrders)
	} else {
		s.router.Navigate(ctx, router.ViewHome)
	}
}

func (s *shell) adminCmd(ctx context.Context, args []string) {
	if !s.store.IsAdmin() {
		fmt.Println("Admin privileges required")
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: admin status <orderID> <status> | admin delproduct <id> | admin newuser <name> <email> <password> <role>")
		return
	}
	switch args[0] {
	case "status":
		if len(args) < 3 {
			fmt.Println("Usage: admin status <orderID> <status>")
			return
		}
		if err := s.panel.UpdateOrderStatus(ctx, args[1], models.OrderStatus(args[2])); err != nil {
			fmt.Println("Status update failed:", err)
			return
		}
		fmt.Println("Order status updated")
	case "delproduct":
		if len(args) < 2 {
			fmt.Println("Usage: admin delproduct <id>")
			return
		}
		if err := s.panel.DeleteProduct(ctx, args[1]); err != nil {
			fmt.Println("Delete failed:", err)
			return
		}
		fmt.Println("Product deleted")
	case "newuser":
		if len(args) < 5 {
			fmt.Println("Usage: admin newuser <name> <email> <password> <role>")
			return
		}
		user, err := s.panel.CreateUser(ctx, args[1], args[2], args[3], models.Role(args[4]))
		if err != nil {
			fmt.Println("User creation failed:", err)
			return
		}
		fmt.Printf("Created %s account %s\n", user.Role, user.Email)
	default:
		fmt.Println("Unknown admin command:", args[0])
	}
}

// repl runs the interactive shell loop.
func repl(s *shell) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("storefront%s> ", s.router.Fragment())
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		switch args[0] {
		case "help":
			fmt.Println("Views:    go <home|products|cart|orders|admin|about|contact>, back, forward")
			fmt.Println("Account:  login <email> <pass>, register <name> <email> <pass>, logout, whoami")
			fmt.Println("Catalog:  search <term>, category <name>, sort <featured|price-asc|price-desc|stock-desc>, filters-reset")
			fmt.Println("Cart:     add <productID> [qty], inc <itemID>, dec <itemID>, remove <itemID>, clear")
			fmt.Println("Checkout: checkout [name email]")
			fmt.Println("Admin:    admin status <orderID> <status>, admin delproduct <id>, admin newuser ...")
			fmt.Println("Other:    show, exit")
		case "go":
			if len(args) < 2 {
				fmt.Println("Usage: go <view>")
				break
			}
			v, err := router.ParseView(args[1])
			if err != nil {
				fmt.Println("Unknown view:", args[1])
				break
			}
			s.router.Navigate(ctx, v)
			s.show(ctx)
		case "back":
			if s.router.Back(ctx) {
				s.show(ctx)
			} else {
				fmt.Println("No earlier view")
			}
		case "forward":
			if s.router.Forward(ctx) {
				s.show(ctx)
			} else {
				fmt.Println("No later view")
			}
		case "show":
			s.show(ctx)
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				break
			}
			s.login(ctx, args[1], args[2])
		case "register":
			if len(args) < 4 {
				fmt.Println("Usage: register <name> <email> <password>")
				break
			}
			s.register(ctx, args[1], args[2], args[3])
		case "logout":
			s.logout(ctx)
		case "whoami":
			if user := s.store.CurrentUser(); user != nil {
				fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			} else {
				fmt.Println("Browsing anonymously, session", s.store.SessionID())
			}
		case "search":
			s.catalog.SetSearch(strings.Join(args[1:], " "))
			if err := s.catalog.Reload(ctx); err != nil {
				fmt.Println("Could not refresh listing:", err)
			}
			s.show(ctx)
		case "category":
			s.catalog.SetCategory(strings.Join(args[1:], " "))
			if err := s.catalog.Reload(ctx); err != nil {
				fmt.Println("Could not refresh listing:", err)
			}
			s.show(ctx)
		case "sort":
			if len(args) < 2 {
				fmt.Println("Usage: sort <featured|price-asc|price-desc|stock-desc>")
				break
			}
			s.catalog.SetSort(catalog.SortOrder(args[1]))
			s.show(ctx)
		case "filters-reset":
			s.catalog.ResetFilters()
			if err := s.catalog.Reload(ctx); err != nil {
				fmt.Println("Could not refresh listing:", err)
			}
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <productID> [qty]")
				break
			}
			qty := 1
			if len(args) >= 3 {
				qty, _ = strconv.Atoi(args[2])
			}
			if _, err := s.cart.AddItem(ctx, args[1], qty); err != nil {
				fmt.Println("Could not add to cart:", err)
			} else {
				fmt.Printf("Added. Cart now holds %d units\n", s.cart.Snapshot().Units())
			}
		case "inc", "dec":
			if len(args) < 2 {
				fmt.Println("Usage:", args[0], "<itemID>")
				break
			}
			delta := 1
			if args[0] == "dec" {
				delta = -1
			}
			if _, err := s.cart.ChangeQuantity(ctx, args[1], delta); err != nil {
				fmt.Println("Could not change quantity:", err)
			}
		case "remove":
			if len(args) < 2 {
				fmt.Println("Usage: remove <itemID>")
				break
			}
			if _, err := s.cart.RemoveItem(ctx, args[1]); err != nil {
				fmt.Println("Could not remove item:", err)
			}
		case "clear":
			if _, err := s.cart.Clear(ctx); err != nil {
				fmt.Println("Could not clear cart:", err)
			}
		case "checkout":
			s.checkoutCmd(ctx, args[1:])
		case "admin":
			s.adminCmd(ctx, args[1:])
		case "exit":
			fmt.Println("Bye")
			cancel()
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
		cancel()
	}
}

func main() {
	var (
		baseURL string
		dataDir string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:5000", "server base URL")
	flag.StringVar(&dataDir, "data", defaultDataDir(), "directory for the session profile")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Storefront Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	store, err := session.Open(dataDir)
	if err != nil {
		fmt.Println("Could not open session store:", err)
		os.Exit(1)
	}

	log := zap.NewNop()
	client := api.New(baseURL, store, &http.Client{Timeout: 15 * time.Second}, log)

	s := &shell{
		store:   store,
		client:  client,
		cart:    cart.New(client.Cart, store, log),
		catalog: catalog.New(client.Products, log),
	}
	s.history = orders.New(client.Orders, store, log)
	s.checkout = checkout.New(client.Orders, s.cart, store)
	s.panel = admin.New(client, log)
	s.router = router.New(router.Config{
		Identity: store,
		Notifier: consoleNotifier{},
		Catalog:  s.catalog,
		Cart:     s.cart,
		Orders:   s.history,
		Admin:    s.panel,
		Prefill:  func() { checkout.Prefill(&s.form, store) },
		Logger:   log,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	s.router.Init(ctx, "")
	s.show(ctx)
	cancel()

	repl(s)
}

// defaultDataDir places the session profile under the user config dir,
// falling back to the working directory.
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront")
	}
	return "."
}
