package api

import (
	"context"

	"github.com/Josesitobb/adcu-client/model"
)

// ListVerifications returns the terminal pass/fail summary per contractor.
func (c *Client) ListVerifications(ctx context.Context) Result[[]model.Verification] {
	raw, status, cerr := c.get(ctx, "/Verification/")
	if cerr != nil {
		return fail[[]model.Verification](cerr)
	}
	return decode[[]model.Verification](raw, status)
}
