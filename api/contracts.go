package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Josesitobb/adcu-client/model"
)

// ListContracts returns all contracts. When withContractor is non-nil the
// server filters assigned (true) or unassigned (false) contracts.
func (c *Client) ListContracts(ctx context.Context, withContractor *bool) Result[[]model.Contract] {
	path := "/Contracts"
	if withContractor != nil {
		path += fmt.Sprintf("?WithContractor=%t", *withContractor)
	}
	raw, status, cerr := c.get(ctx, path)
	if cerr != nil {
		return fail[[]model.Contract](cerr)
	}
	return decode[[]model.Contract](raw, status)
}

// GetContract returns one contract by id.
func (c *Client) GetContract(ctx context.Context, id string) Result[model.Contract] {
	raw, status, cerr := c.get(ctx, "/Contracts/"+url.PathEscape(id))
	if cerr != nil {
		return fail[model.Contract](cerr)
	}
	return decode[model.Contract](raw, status)
}

// CreateContract registers a new contract, assigned or not.
func (c *Client) CreateContract(ctx context.Context, contract model.Contract) Result[model.Contract] {
	raw, status, cerr := c.postJSON(ctx, "/Contracts", contract)
	if cerr != nil {
		return fail[model.Contract](cerr)
	}
	return decode[model.Contract](raw, status)
}

// UpdateContract edits a contract in place.
func (c *Client) UpdateContract(ctx context.Context, id string, contract model.Contract) Result[model.Contract] {
	raw, status, cerr := c.putJSON(ctx, "/Contracts/"+url.PathEscape(id), contract)
	if cerr != nil {
		return fail[model.Contract](cerr)
	}
	return decode[model.Contract](raw, status)
}
