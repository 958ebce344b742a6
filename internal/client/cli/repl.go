package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/validation"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	ClearFilters(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Page(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Filters(ctx context.Context) error
	Options(ctx context.Context, args []string) error
	Image(ctx context.Context, args []string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Contribute(ctx context.Context) error
	Dashboard(ctx context.Context, args []string) error
	Submission(ctx context.Context, args []string) error
	Publish(ctx context.Context, args []string) error
	RequestAccess(ctx context.Context) error
}

const (
	helpPublic = "Available commands: search [text], filter key=value..., clear, next, prev, page <n>, " +
		"show <id>, image <id>, filters, options <resource>, request-access, login, exit"
	helpContributor = "Available commands: search [text], filter key=value..., clear, next, prev, page <n>, " +
		"show <id>, image <id>, filters, options <resource>, contribute, dashboard [key=value...|clear], " +
		"submission <id>, publish <id>, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the WorldCovers CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop exits
// on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are rendered as a message and the
// loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("wc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpContributor)
			} else {
				printlnFn(helpPublic)
			}

		case "s", "search":
			err = a.Search(ctx, args)
		case "filter":
			err = a.Filter(ctx, args)
		case "clear":
			err = a.ClearFilters(ctx)
		case "n", "next":
			err = a.Next(ctx)
		case "p", "prev":
			err = a.Prev(ctx)
		case "page":
			err = a.Page(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "image":
			err = a.Image(ctx, args)
		case "filters":
			err = a.Filters(ctx)
		case "options":
			err = a.Options(ctx, args)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "contribute":
			err = a.Contribute(ctx)
		case "dashboard":
			err = a.Dashboard(ctx, args)
		case "submission":
			err = a.Submission(ctx, args)
		case "publish":
			err = a.Publish(ctx, args)
		case "request-access":
			err = a.RequestAccess(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(describeError(err))
		}
	}
}

// describeError turns a command error into a message for the user.
func describeError(err error) string {
	var (
		verr   *validation.Error
		apiErr *client.APIError
	)
	switch {
	case errors.As(err, &verr):
		return fieldErrors(verr.Fields)
	case errors.As(err, &apiErr) && len(apiErr.Fields) > 0:
		return fieldErrors(apiErr.Fields)
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, please try again later"
	case errors.Is(err, client.ErrRateLimited):
		return "Too many requests, please wait a minute and try again"
	case errors.Is(err, client.ErrUnauthorized):
		return "Please log in first"
	case errors.Is(err, client.ErrNotFound):
		if apiErr != nil && apiErr.Message != "" {
			return apiErr.Message
		}
		return "Not found"
	case errors.Is(err, common.ErrImageTooLarge):
		return "Image is larger than 10 MB"
	case errors.Is(err, common.ErrImageTypeNotAllowed):
		return "Image must be PNG, JPEG, WebP or TIFF"
	}
	return "Error: " + err.Error()
}

func fieldErrors(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := []string{"Please correct the following:"}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %s: %s", k, fields[k]))
	}
	return strings.Join(lines, "\n")
}
