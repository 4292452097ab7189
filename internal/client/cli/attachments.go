package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var errAttachUsage = errors.New("usage: attach <invoice-id> <file>")
var errFetchUsage = errors.New("usage: fetch <invoice-id> <file>")

func (a *App) attach(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errAttachUsage
	}
	tok, err := a.token()
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	u, err := a.api.UploadAttachment(ctx, tok, args[0], f, fi.Size())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %d bytes as %s\n", fi.Size(), u.StorageKey)
	return nil
}

func (a *App) fetch(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errFetchUsage
	}
	tok, err := a.token()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(args[1], os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	n, err := a.api.DownloadAttachment(ctx, tok, args[0], f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(args[1])
		return err
	}
	fmt.Fprintf(a.out, "Saved %d bytes to %s\n", n, args[1])
	return nil
}
