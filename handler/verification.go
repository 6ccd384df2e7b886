package handler

import (
	"github.com/Josesitobb/adcu-client/service"
	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	store *service.Store
}

func NewVerificationHandler(store *service.Store) *VerificationHandler {
	return &VerificationHandler{store: store}
}

// List returns the verification summary per contractor.
func (h *VerificationHandler) List(c *gin.Context) {
	respondOK(c, h.store.ListVerifications())
}
