package handler

import (
	"net/http"
	"strconv"

	"github.com/Josesitobb/adcu-client/model"
	"github.com/Josesitobb/adcu-client/service"
	"github.com/gin-gonic/gin"
)

type ContractsHandler struct {
	store *service.Store
}

func NewContractsHandler(store *service.Store) *ContractsHandler {
	return &ContractsHandler{store: store}
}

// List returns contracts, filtered by assignment when the WithContractor
// query parameter is present.
func (h *ContractsHandler) List(c *gin.Context) {
	var withContractor *bool
	if raw, ok := c.GetQuery("WithContractor"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid data")
			return
		}
		withContractor = &v
	}
	respondOK(c, h.store.ListContracts(withContractor))
}

// Get returns one contract by id.
func (h *ContractsHandler) Get(c *gin.Context) {
	contract, err := h.store.GetContract(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondOK(c, contract)
}

// Create registers a contract, assigned or not.
func (h *ContractsHandler) Create(c *gin.Context) {
	var contract model.Contract
	if err := c.ShouldBindJSON(&contract); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	if contract.Number == "" {
		respondError(c, http.StatusBadRequest, "contract number is required")
		return
	}

	respondCreated(c, h.store.CreateContract(contract))
}

// Update edits a contract in place.
func (h *ContractsHandler) Update(c *gin.Context) {
	var contract model.Contract
	if err := c.ShouldBindJSON(&contract); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	updated, err := h.store.UpdateContract(c.Param("id"), contract)
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondOK(c, updated)
}
