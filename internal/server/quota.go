package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	quotadomain "github.com/otomarket/otomarket/internal/quota/domain"
)

func (s *Server) quotaStatus(c *gin.Context) {
	instituteID := strings.TrimSpace(c.Param("institute_id"))
	if instituteID == "" {
		AbortWithError(c, fmt.Errorf("%w: institute_id required", ErrInvalidRequest))
		return
	}

	status, err := s.quota.Status(c.Request.Context(), instituteID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (s *Server) incrementUsage(c *gin.Context) {
	instituteID := strings.TrimSpace(c.Param("institute_id"))
	resource := strings.TrimSpace(c.Param("resource"))

	switch quotadomain.Resource(resource) {
	case quotadomain.ResourceBrowse, quotadomain.ResourceListing:
	default:
		AbortWithError(c, fmt.Errorf("%w: unknown resource %q", ErrInvalidRequest, resource))
		return
	}

	if err := s.records.IncrementUsage(c.Request.Context(), instituteID, resource); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
