package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/hackportal/internal/domain"
	"github.com/Domenick1991/hackportal/internal/service/hacks"
)

type HackHandler struct {
	service hacks.HackUseCase
}

type importHacksRequest struct {
	Items []hacks.ImportItem `json:"items"`
}

type importFailedResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type hackListResponse struct {
	Hacks []domain.Hack `json:"hacks"`
}

func NewHackHandler(service hacks.HackUseCase) *HackHandler {
	return &HackHandler{service: service}
}

// Register mounts the listing routes under router. The import route lives at
// the API root and is mounted by RegisterImport.
func (h *HackHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *HackHandler) RegisterImport(router *gin.RouterGroup) {
	router.POST("/hacks_import", h.importHacks)
}

func (h *HackHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if list == nil {
		list = []domain.Hack{}
	}
	c.JSON(http.StatusOK, hackListResponse{Hacks: list})
}

func (h *HackHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hack id"})
		return
	}

	hack, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hack)
}

func (h *HackHandler) importHacks(c *gin.Context) {
	var req importHacksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Import(c.Request.Context(), c.GetHeader("Authorization"), req.Items)
	if err != nil {
		if domain.IsPersistence(err) {
			c.JSON(http.StatusInternalServerError, importFailedResponse{Status: hacks.StatusImportFailed, Error: err.Error()})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
