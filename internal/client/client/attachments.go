package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/agencydesk/internal/netx"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
)

func attachmentPath(invoiceID string) string {
	return "/api/invoices/" + url.PathEscape(invoiceID) + "/attachment"
}

// UploadAttachment asks the API for a presigned PUT URL for the invoice and
// streams r (size bytes) to it.
func (c *HTTPClient) UploadAttachment(ctx context.Context, token, invoiceID string, r io.Reader, size int64) (*models.AttachmentURL, error) {
	var u models.AttachmentURL
	if err := c.do(ctx, http.MethodPost, attachmentPath(invoiceID), token, nil, &u); err != nil {
		return nil, err
	}
	if err := netx.UploadToPresignedURL(ctx, c.objects, u.URL, r, size); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &u, nil
}

// DownloadAttachment resolves a presigned GET URL for the invoice and copies
// the object into w.
func (c *HTTPClient) DownloadAttachment(ctx context.Context, token, invoiceID string, w io.Writer) (int64, error) {
	var u models.AttachmentURL
	if err := c.do(ctx, http.MethodGet, attachmentPath(invoiceID), token, nil, &u); err != nil {
		return 0, err
	}
	n, err := netx.DownloadFromPresignedURL(ctx, c.objects, u.URL, w)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return n, nil
}
