package handler

import (
	"net/http"
	"strconv"

	"github.com/Josesitobb/adcu-client/model"
	"github.com/Josesitobb/adcu-client/service"
	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	store *service.Store
}

func NewUsersHandler(store *service.Store) *UsersHandler {
	return &UsersHandler{store: store}
}

type contractorRequest struct {
	Name       string `json:"name"`
	IDCard     string `json:"idCard"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Post       string `json:"post"`
	Password   string `json:"password"`
	State      *bool  `json:"state"`
	ContractID string `json:"contractId"`
}

// List returns every account.
func (h *UsersHandler) List(c *gin.Context) {
	respondOK(c, h.store.ListUsers())
}

// Get returns one account by id. The contractor listing shares this route's
// prefix ("/Users/Contractor"), so that path is dispatched here.
func (h *UsersHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "Contractor" {
		h.ListContractors(c)
		return
	}

	user, err := h.store.GetUser(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondOK(c, user)
}

// ListContractors returns contractors with user and contract, optionally
// filtered by the user's active state.
func (h *UsersHandler) ListContractors(c *gin.Context) {
	var state *bool
	if raw, ok := c.GetQuery("state"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid data")
			return
		}
		state = &v
	}
	respondOK(c, h.store.ListContractors(state))
}

// CreateContractor registers a contractor account, optionally binding an
// existing contract.
func (h *UsersHandler) CreateContractor(c *gin.Context) {
	var req contractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	contractor, err := h.store.CreateContractor(model.User{
		Name:   req.Name,
		IDCard: req.IDCard,
		Email:  req.Email,
		Phone:  req.Phone,
		Post:   req.Post,
		State:  true,
	}, req.Password, req.ContractID)
	if err != nil {
		switch err {
		case service.ErrEmailTaken:
			respondError(c, http.StatusBadRequest, "email already registered")
		case service.ErrNotFound:
			respondError(c, http.StatusBadRequest, "contract not found")
		default:
			respondError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondCreated(c, contractor)
}

// UpdateContractor edits a contractor in place. There is no delete;
// deactivation goes through the state flag.
func (h *UsersHandler) UpdateContractor(c *gin.Context) {
	var req contractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	current, err := h.store.GetContractor(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}

	state := current.User.State
	if req.State != nil {
		state = *req.State
	}

	contractor, err := h.store.UpdateContractor(c.Param("id"), model.User{
		Name:   req.Name,
		IDCard: req.IDCard,
		Email:  req.Email,
		Phone:  req.Phone,
		Post:   req.Post,
		State:  state,
	}, req.ContractID)
	if err != nil {
		switch err {
		case service.ErrEmailTaken:
			respondError(c, http.StatusBadRequest, "email already registered")
		case service.ErrNotFound:
			respondError(c, http.StatusNotFound, "not found")
		default:
			respondError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondOK(c, contractor)
}
