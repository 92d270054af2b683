package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Guest(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Rename(ctx context.Context) error
	List(ctx context.Context, table string) error
	Categories(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	AddToCart(ctx context.Context, args []string) error
	RemoveFromCart(ctx context.Context, args []string) error
	UpdateQuantity(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	ClearCart(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	Unlike(ctx context.Context, args []string) error
	ShowWishlist(ctx context.Context) error
	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error
}

const (
	helpGuest = "Available commands: register, login, guest, products, sneakers, apparel, categories, show, profile, exit"
	helpUser  = "Available commands: products, sneakers, apparel, categories, show, add, remove, qty, cart, clear, " +
		"like, unlike, wishlist, checkout, orders, profile, rename, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the TrueKicks CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and passes the remaining tokens to it. Errors returned by commands
// are printed and the loop continues. The loop exits on scanner EOF or when
// the user types "exit" or "quit".
//
// Commands
//
//	help                          show available commands
//	register | login | guest      identity
//	logout | profile | rename     identity
//	products | sneakers | apparel list a catalog table
//	categories                    list categories
//	show <table> <id>             product details
//	add <table> <id> <size> [n]   add to cart
//	remove <id> <size>            remove from cart
//	qty <id> <size> <n>           change quantity
//	cart | clear                  show or empty the cart
//	like <table> <id>             add to wishlist
//	unlike <id>                   remove from wishlist
//	wishlist                      show the wishlist
//	checkout | orders             place an order, order history
//	exit | quit                   leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tk %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "guest":
			err = a.Guest(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "rename":
			err = a.Rename(ctx)

		case "products", "sneakers", "apparel":
			err = a.List(ctx, cmd)
		case "categories":
			err = a.Categories(ctx)
		case "show":
			err = a.Show(ctx, args)

		case "add":
			err = a.AddToCart(ctx, args)
		case "remove":
			err = a.RemoveFromCart(ctx, args)
		case "qty":
			err = a.UpdateQuantity(ctx, args)
		case "cart":
			err = a.ShowCart(ctx)
		case "clear":
			err = a.ClearCart(ctx)

		case "like":
			err = a.Like(ctx, args)
		case "unlike":
			err = a.Unlike(ctx, args)
		case "wishlist":
			err = a.ShowWishlist(ctx)

		case "checkout":
			err = a.Checkout(ctx)
		case "orders":
			err = a.Orders(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
