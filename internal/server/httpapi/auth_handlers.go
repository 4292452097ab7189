package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/dmitrijs2005/agencydesk/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresAt   time.Time          `json:"expires_at"`
	User        models.UserSummary `json:"user"`
}

func newTokenResponse(s *services.Session) tokenResponse {
	return tokenResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresAt:   s.ExpiresAt,
		User:        s.User.Summary(),
	}
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	sess, err := s.deps.Auth.SignUp(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTokenResponse(sess))
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	sess, err := s.deps.Auth.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTokenResponse(sess))
}

func (s *HTTPServer) me(c *gin.Context) {
	c.JSON(http.StatusOK, identity(c).Summary())
}

func (s *HTTPServer) team(c *gin.Context) {
	list, err := s.deps.Users.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	out := make([]models.UserSummary, 0, len(list))
	for _, u := range list {
		out = append(out, u.Summary())
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) stats(c *gin.Context) {
	st, err := s.deps.Dashboard.Stats(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
