package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/hackportal/internal/service/transportation"
)

type TransportationHandler struct {
	service transportation.TransportationUseCase
}

type rsvpRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

func NewTransportationHandler(service transportation.TransportationUseCase) *TransportationHandler {
	return &TransportationHandler{service: service}
}

// Register expects a group rooted at /participants/:id.
func (h *TransportationHandler) Register(router *gin.RouterGroup) {
	router.GET("/transportation", h.outcome)
	router.PUT("/transportation/rsvp", h.recordRSVP)
	router.DELETE("/transportation/rsvp", h.cancelRSVP)
}

func (h *TransportationHandler) outcome(c *gin.Context) {
	out, err := h.service.Outcome(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *TransportationHandler) recordRSVP(c *gin.Context) {
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.service.RecordRSVP(c.Request.Context(), c.Param("id"), *req.Accept)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *TransportationHandler) cancelRSVP(c *gin.Context) {
	out, err := h.service.CancelRSVP(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
