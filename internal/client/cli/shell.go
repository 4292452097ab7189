package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// shell is a small read-eval-print loop over exec. It ends on EOF or on
// "exit" / "quit". Command errors are printed and the loop continues.
func (a *App) shell(ctx context.Context) error {
	fmt.Fprintln(a.out, "AgencyDesk CLI (type 'help' for commands)")

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(a.out, "agencyctl> ")
		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(a.out)
			return nil
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		}

		if err := a.exec(ctx, parts[0], parts[1:]); err != nil {
			fmt.Fprintln(a.out, "error:", err)
		}
	}
}
