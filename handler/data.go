package handler

import (
	"errors"
	"net/http"

	"github.com/Josesitobb/adcu-client/service"
	"github.com/gin-gonic/gin"
)

type DataHandler struct {
	store    *service.Store
	analyzer *service.Analyzer
}

func NewDataHandler(store *service.Store, analyzer *service.Analyzer) *DataHandler {
	return &DataHandler{store: store, analyzer: analyzer}
}

type runRequest struct {
	DocumentManagementID string `json:"documentManagementId" binding:"required"`
}

// List returns every comparison produced so far.
func (h *DataHandler) List(c *gin.Context) {
	respondOK(c, h.store.ListComparisons())
}

// Get returns the comparison for one document-management record.
func (h *DataHandler) Get(c *gin.Context) {
	cmp, err := h.store.GetComparison(c.Param("managementId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondOK(c, cmp)
}

// Run triggers the analysis and blocks until it finishes, matching the
// production contract where the single POST carries the whole computation.
func (h *DataHandler) Run(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	cmp, err := h.analyzer.Run(c.Request.Context(), req.DocumentManagementID)
	if err != nil {
		var missing *service.MissingFileError
		switch {
		case errors.As(err, &missing):
			respondCode(c, http.StatusBadRequest, "missing_file", missing.Error())
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusNotFound, "not found")
		default:
			respondError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondOK(c, cmp)
}
