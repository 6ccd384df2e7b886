package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Josesitobb/adcu-client/model"
)

// ContractorRequest creates or updates a contractor account.
type ContractorRequest struct {
	Name       string `json:"name"`
	IDCard     string `json:"idCard"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Post       string `json:"post"`
	Password   string `json:"password,omitempty"`
	State      *bool  `json:"state,omitempty"`
	ContractID string `json:"contractId,omitempty"`
}

// ListUsers returns every platform account.
func (c *Client) ListUsers(ctx context.Context) Result[[]model.User] {
	raw, status, cerr := c.get(ctx, "/Users")
	if cerr != nil {
		return fail[[]model.User](cerr)
	}
	return decode[[]model.User](raw, status)
}

// GetUser returns one account by id.
func (c *Client) GetUser(ctx context.Context, id string) Result[model.User] {
	raw, status, cerr := c.get(ctx, "/Users/"+url.PathEscape(id))
	if cerr != nil {
		return fail[model.User](cerr)
	}
	return decode[model.User](raw, status)
}

// ListContractors returns contractors with their user and assigned contract.
// When state is non-nil the server filters by the user's active state.
func (c *Client) ListContractors(ctx context.Context, state *bool) Result[[]model.Contractor] {
	path := "/Users/Contractor"
	if state != nil {
		path += fmt.Sprintf("?state=%t", *state)
	}
	raw, status, cerr := c.get(ctx, path)
	if cerr != nil {
		return fail[[]model.Contractor](cerr)
	}
	return decode[[]model.Contractor](raw, status)
}

// CreateContractor registers a new contractor account.
func (c *Client) CreateContractor(ctx context.Context, req ContractorRequest) Result[model.Contractor] {
	raw, status, cerr := c.postJSON(ctx, "/Users", req)
	if cerr != nil {
		return fail[model.Contractor](cerr)
	}
	return decode[model.Contractor](raw, status)
}

// UpdateContractor edits a contractor in place. Contractors are never
// hard-deleted; deactivation happens through the state field.
func (c *Client) UpdateContractor(ctx context.Context, id string, req ContractorRequest) Result[model.Contractor] {
	raw, status, cerr := c.putJSON(ctx, "/Users/"+url.PathEscape(id), req)
	if cerr != nil {
		return fail[model.Contractor](cerr)
	}
	return decode[model.Contractor](raw, status)
}
