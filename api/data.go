package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Josesitobb/adcu-client/model"
)

// CodeMissingFile is the structured error code the server returns when an
// analysis is requested for a contractor with missing documents.
const CodeMissingFile = "missing_file"

// ListComparisons returns every comparison record produced by past analyses.
func (c *Client) ListComparisons(ctx context.Context) Result[[]model.Comparison] {
	raw, status, cerr := c.get(ctx, "/Data")
	if cerr != nil {
		return fail[[]model.Comparison](cerr)
	}
	return decode[[]model.Comparison](raw, status)
}

// GetComparison returns the comparison for one document-management record.
func (c *Client) GetComparison(ctx context.Context, managementID string) Result[model.Comparison] {
	raw, status, cerr := c.get(ctx, "/Data/"+url.PathEscape(managementID))
	if cerr != nil {
		return fail[model.Comparison](cerr)
	}
	return decode[model.Comparison](raw, status)
}

// RunAnalysis triggers the server-side analysis of a document-management
// record and blocks until it finishes. The server computes for 10-20 minutes
// on real document sets, so this call uses the extended analysis timeout;
// the Result's Status and Code let callers classify failures.
func (c *Client) RunAnalysis(ctx context.Context, managementID string) Result[model.Comparison] {
	raw, status, cerr := c.do(ctx, http.MethodPost, "/Data", "application/json",
		jsonBody(map[string]string{"documentManagementId": managementID}), c.analysisTimeout)
	if cerr != nil {
		return fail[model.Comparison](cerr)
	}
	return decode[model.Comparison](raw, status)
}
