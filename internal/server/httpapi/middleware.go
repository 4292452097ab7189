package httpapi

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/auth"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

// cors answers preflight requests and sets the CORS response headers for
// allowed origins. "*" allows any origin; the request origin is echoed back
// because credentials are allowed.
func cors(origins []string) gin.HandlerFunc {
	allowAll := slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || slices.Contains(origins, origin)) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")

			if c.Request.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				if req := c.GetHeader("Access-Control-Request-Headers"); req != "" {
					h.Set("Access-Control-Allow-Headers", req)
				} else {
					h.Set("Access-Control-Allow-Headers", strings.Join([]string{common.AuthorizationHeaderName, "Content-Type"}, ", "))
				}
				h.Set("Access-Control-Max-Age", "600")
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		c.Next()
	}
}

// requireIdentity verifies the bearer token and then resolves its subject
// to a stored identity. The two steps fail differently: a bad token is 401,
// a vanished identity is 404.
func (s *HTTPServer) requireIdentity(c *gin.Context) {
	token, err := auth.BearerToken(c.GetHeader(common.AuthorizationHeaderName))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	u, err := s.deps.Auth.Identify(c.Request.Context(), token)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), u))
	c.Next()
}

func identity(c *gin.Context) *models.User {
	u, _ := auth.IdentityFromContext(c.Request.Context())
	return u
}
