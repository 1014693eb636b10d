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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AddNote(ctx context.Context) error
	List(ctx context.Context) error
	ListByTag(ctx context.Context, tag string) error
	Show(ctx context.Context, id string) error
	UpdateNote(ctx context.Context, id string) error
	DeleteNote(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the DreamNotes CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - add            — add a note
//	  - list           — list notes
//	  - tag <tag>      — list notes carrying a tag
//	  - show <id>      — show a single note
//	  - update <id>    — edit a note (interactive prompts)
//	  - delete <id>    — delete a note
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// print their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dn> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, tag <tag>, show <id>, update <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "add":
			_ = a.AddNote(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "tag":
			_ = a.ListByTag(ctx, arg)

		case "show":
			_ = a.Show(ctx, arg)

		case "update":
			_ = a.UpdateNote(ctx, arg)

		case "delete":
			_ = a.DeleteNote(ctx, arg)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
