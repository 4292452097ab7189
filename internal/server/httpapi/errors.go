package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Detail string `json:"detail"`
}

var errorTable = []struct {
	err    error
	status int
	detail string
}{
	{common.ErrDuplicateUsername, http.StatusBadRequest, "Username already exists"},
	{common.ErrDuplicateEmail, http.StatusBadRequest, "Email already exists"},
	{common.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
	{common.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
	{common.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{common.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{common.ErrClientNotFound, http.StatusNotFound, "Client not found"},
	{common.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
	{common.ErrInvoiceNotFound, http.StatusNotFound, "Invoice not found"},
	{common.ErrNoAttachment, http.StatusNotFound, "Attachment not found"},
	{common.ErrInvalidEmail, http.StatusUnprocessableEntity, "Invalid email address"},
}

// statusFor maps a service error to its HTTP status and client-facing
// detail. Unknown errors, storage failures included, are 500.
func statusFor(err error) (int, string) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.status, e.detail
		}
	}
	if errors.Is(err, common.ErrValidation) {
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	status, detail := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, errorBody{Detail: detail})
}

func (s *HTTPServer) bindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorBody{Detail: err.Error()})
}
