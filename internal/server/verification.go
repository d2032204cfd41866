package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	verificationdomain "github.com/otomarket/otomarket/internal/verification/domain"
)

type issueCodeRequest struct {
	Identifier string `json:"identifier" binding:"required,email"`
}

type verifyCodeRequest struct {
	Identifier string `json:"identifier" binding:"required,email"`
	Code       string `json:"code" binding:"required"`
}

type verdictResponse struct {
	Outcome           string `json:"outcome"`
	AttemptsRemaining int    `json:"attempts_remaining,omitempty"`
}

// issueCode requests a new code for an identifier. The code travels only
// through the notification channel; it is never part of the response.
func (s *Server) issueCode(c *gin.Context) {
	var req issueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	if _, err := s.verification.Issue(c.Request.Context(), normalizeIdentifier(req.Identifier)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func (s *Server) resendCode(c *gin.Context) {
	var req issueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	if _, err := s.verification.Reissue(c.Request.Context(), normalizeIdentifier(req.Identifier)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func (s *Server) verifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	verdict, err := s.verification.Verify(c.Request.Context(), normalizeIdentifier(req.Identifier), strings.TrimSpace(req.Code))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := verdictResponse{Outcome: string(verdict.Outcome)}
	if verdict.Outcome == verificationdomain.OutcomeInvalid {
		resp.AttemptsRemaining = verdict.AttemptsRemaining
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) revokeCode(c *gin.Context) {
	identifier := normalizeIdentifier(c.Param("identifier"))
	if identifier == "" {
		AbortWithError(c, fmt.Errorf("%w: identifier required", ErrInvalidRequest))
		return
	}

	if err := s.verification.Revoke(c.Request.Context(), identifier); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func normalizeIdentifier(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
