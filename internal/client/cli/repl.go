package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Record(ctx context.Context) error
	List(ctx context.Context) error
	Watch(ctx context.Context) error
	Stop(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: register, login, exit"
	memberHelp = "Available commands: record, (l)ist, watch, stop <n>, download <n>, profile, editprofile, whoami, logout, exit"
)

// protect runs cmd only when a credential is stored. Otherwise the user is
// taken to the login prompt first; cmd runs only if that login succeeds.
func protect(ctx context.Context, a execIface, cmd func(context.Context) error) error {
	if !a.isLoggedIn(ctx) {
		printlnFn("Please login to continue.")
		if err := a.Login(ctx); err != nil || !a.isLoggedIn(ctx) {
			return err
		}
	}
	return cmd(ctx)
}

// runREPL starts a simple read–eval–print loop for the meetrec CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that need an account go through
// protect. The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("meetrec (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "record":
			_ = protect(ctx, a, a.Record)

		case "l", "list":
			_ = protect(ctx, a, a.List)

		case "watch":
			_ = protect(ctx, a, a.Watch)

		case "stop":
			_ = protect(ctx, a, func(ctx context.Context) error { return a.Stop(ctx, args) })

		case "download":
			_ = protect(ctx, a, func(ctx context.Context) error { return a.Download(ctx, args) })

		case "profile":
			_ = protect(ctx, a, a.Profile)

		case "editprofile":
			_ = protect(ctx, a, a.EditProfile)

		case "whoami":
			_ = protect(ctx, a, a.WhoAmI)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
