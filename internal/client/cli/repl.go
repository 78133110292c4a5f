package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/services"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool

	Home(ctx context.Context) error
	About(ctx context.Context) error
	Projects(ctx context.Context) error
	Experience(ctx context.Context) error
	Blogs(ctx context.Context, args []string) error
	Read(ctx context.Context, args []string) error
	Like(ctx context.Context) error
	Comment(ctx context.Context) error
	Back(ctx context.Context) error

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProjects(ctx context.Context, args []string) error
	EditExperience(ctx context.Context, args []string) error
	Posts(ctx context.Context, args []string) error
	Comments(ctx context.Context, args []string) error
}

const (
	publicHelp = "Public: home, about, projects, experience, blogs [more|retry], read <slug>, like, comment, back, exit"
	adminHelp  = "Admin: dashboard, profile, edit-projects [list|add|edit N|update|cancel|delete N|save], " +
		"edit-experience [...same...], posts [list|new|edit ID|delete ID], comments delete ID, refresh, logout"
)

// runREPL reads commands from scanner until EOF, "exit" or "quit" and
// dispatches them to a. Errors are shown to the user as one line each; a
// failed command never ends the loop.
func runREPL(ctx context.Context, a execIface, promptFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(promptFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(publicHelp)
			if a.isLoggedIn() {
				printlnFn(adminHelp)
			} else {
				printlnFn("Admin: login")
			}

		case "home":
			err = a.Home(ctx)
		case "about":
			err = a.About(ctx)
		case "projects":
			err = a.Projects(ctx)
		case "experience":
			err = a.Experience(ctx)
		case "blogs", "blog":
			err = a.Blogs(ctx, args)
		case "read":
			err = a.Read(ctx, args)
		case "like":
			err = a.Like(ctx)
		case "comment":
			err = a.Comment(ctx)
		case "back":
			err = a.Back(ctx)

		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "dashboard":
			err = a.Dashboard(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "edit-projects":
			err = a.EditProjects(ctx, args)
		case "edit-experience":
			err = a.EditExperience(ctx, args)
		case "posts":
			err = a.Posts(ctx, args)
		case "comments":
			err = a.Comments(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(services.UserMessage(err))
		}
	}
}
