package backoffice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const consoleHelp = `Commands:
  list                    reload and print the postings
  new                     clear the form for a new posting
  edit <id>               load posting <id> into the form
  set <field> <value>     set a form field (title, description, deadline, city, attachment)
  show                    print the form and the postings
  submit                  create or update the posting in the form
  delete <id>             delete posting <id>
  help                    print this help
  quit                    leave the console`

// RunConsole reads commands from in until quit, EOF or ctx is done.
// Delete confirmations are read from the same input.
func RunConsole(ctx context.Context, c *Controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	confirm := ConfirmerFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	})

	fmt.Fprintln(out, "Back Office. Type help for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(cmd) {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, consoleHelp)
		case "list":
			if err := c.Mount(ctx); errors.Is(err, ErrBusy) {
				reportConsoleError(out, err)
			} else if err != nil {
				fmt.Fprintln(out, MsgFetchFailed)
			}
			_ = RenderTable(out, c.View().Postings)
		case "show":
			_ = c.Render(out)
		case "new":
			reportConsoleError(out, c.CancelEdit())
		case "edit":
			id, err := strconv.Atoi(rest)
			if err != nil {
				fmt.Fprintln(out, "usage: edit <id>")
				continue
			}
			if err := c.StartEdit(id); err != nil {
				reportConsoleError(out, err)
				continue
			}
			_ = RenderForm(out, c.View())
		case "set":
			name, value, ok := strings.Cut(rest, " ")
			if !ok && name == "" {
				fmt.Fprintln(out, "usage: set <field> <value>")
				continue
			}
			field, err := ParseField(name)
			if err != nil {
				reportConsoleError(out, err)
				continue
			}
			reportConsoleError(out, c.SetField(field, value))
		case "submit":
			// Incomplete forms and store failures were already notified.
			if err := c.Submit(ctx); err == nil {
				_ = RenderTable(out, c.View().Postings)
			} else if errors.Is(err, ErrBusy) {
				reportConsoleError(out, err)
			}
		case "delete":
			id, err := strconv.Atoi(rest)
			if err != nil {
				fmt.Fprintln(out, "usage: delete <id>")
				continue
			}
			switch err := c.Delete(ctx, id, confirm); {
			case err == nil:
				_ = RenderTable(out, c.View().Postings)
			case errors.Is(err, ErrDeleteCancelled), errors.Is(err, ErrBusy):
				reportConsoleError(out, err)
			}
		default:
			fmt.Fprintf(out, "unknown command %q, type help\n", cmd)
		}
	}
}

func reportConsoleError(out io.Writer, err error) {
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	}
}
