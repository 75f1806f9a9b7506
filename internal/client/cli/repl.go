package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	FilterPrompt(ctx context.Context) error
	SetSort(ctx context.Context, key string) error
	SetPage(ctx context.Context, arg string) error
	Show(ctx context.Context, arg string) error

	Favorites(ctx context.Context) error
	AddFavorite(ctx context.Context, arg string) error
	RemoveFavorite(ctx context.Context, arg string) error
	ClearFavorites(ctx context.Context) error

	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context, arg string) error
	DeleteUser(ctx context.Context, arg string) error
	AddCottage(ctx context.Context) error
	EditCottage(ctx context.Context, arg string) error
	DeleteCottage(ctx context.Context, arg string) error
}

// lineScanner is the input side of the REPL (satisfied by *bufio.Scanner).
type lineScanner interface {
	Scan() bool
	Text() string
}

// runREPL starts a read–eval–print loop over the catalog commands.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Command handlers report their own failures to the user; errors returned
// here are ignored so one bad command never kills the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner lineScanner) {
	for {
		printlnFn(fmt.Sprintf("catalog %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = strings.Join(parts[1:], " ")
		}

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			if arg != "" {
				if err := a.SetPage(ctx, arg); err != nil {
					continue
				}
			}
			_ = a.List(ctx)
		case "search":
			_ = a.Search(ctx, arg)
		case "filter":
			_ = a.FilterPrompt(ctx)
		case "sort":
			_ = a.SetSort(ctx, arg)
		case "page":
			if err := a.SetPage(ctx, arg); err == nil {
				_ = a.List(ctx)
			}
		case "show":
			_ = a.Show(ctx, arg)

		case "favorites", "favs":
			_ = a.Favorites(ctx)
		case "fav":
			_ = a.AddFavorite(ctx, arg)
		case "unfav":
			_ = a.RemoveFavorite(ctx, arg)
		case "clearfavs":
			_ = a.ClearFavorites(ctx)

		case "users":
			_ = a.Users(ctx)
		case "adduser":
			_ = a.AddUser(ctx)
		case "edituser":
			_ = a.EditUser(ctx, arg)
		case "deluser":
			_ = a.DeleteUser(ctx, arg)
		case "addcottage":
			_ = a.AddCottage(ctx)
		case "editcottage":
			_ = a.EditCottage(ctx, arg)
		case "delcottage":
			_ = a.DeleteCottage(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	printlnFn("Browse: (l)ist [page], search <text>, filter, sort <price-asc|price-desc|area-asc|area-desc|newest|oldest>, page <n>, show <id>")
	if a.isLoggedIn() {
		printlnFn("Account: whoami, logout, favorites, fav <cottageId>, unfav <favoriteId>, clearfavs")
	} else {
		printlnFn("Account: register, login")
	}
	if a.isAdmin() {
		printlnFn("Admin: users, adduser, edituser <id>, deluser <id>, addcottage, editcottage <id>, delcottage <id>")
	}
	printlnFn("exit | quit")
}
