package api

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"

	"github.com/Josesitobb/adcu-client/docflow"
	"github.com/Josesitobb/adcu-client/model"
)

// ListDocuments returns every document-management record.
func (c *Client) ListDocuments(ctx context.Context) Result[[]model.DocumentManagement] {
	raw, status, cerr := c.get(ctx, "/Documents")
	if cerr != nil {
		return fail[[]model.DocumentManagement](cerr)
	}
	return decode[[]model.DocumentManagement](raw, status)
}

// GetDocuments returns the document record for one contractor. A 404 is not
// an error here: it means the contractor has uploaded nothing yet, and an
// empty record is returned so first-time upload flows work.
func (c *Client) GetDocuments(ctx context.Context, contractorID string) Result[model.DocumentManagement] {
	raw, status, cerr := c.get(ctx, "/Documents/"+url.PathEscape(contractorID))
	if cerr != nil {
		if cerr.status == http.StatusNotFound {
			return Result[model.DocumentManagement]{
				Success: true,
				Data:    model.DocumentManagement{ContractorID: contractorID},
				Message: msgSuccess,
				Status:  status,
			}
		}
		return fail[model.DocumentManagement](cerr)
	}
	return decode[model.DocumentManagement](raw, status)
}

// UploadDocuments submits a batch of selected documents in one multipart
// request, with the shared description and recorded client IP. Uses the
// extended upload timeout.
func (c *Client) UploadDocuments(ctx context.Context, contractorID, description, clientIP string, files map[string]docflow.File) Result[model.DocumentManagement] {
	body, contentType, err := buildMultipart(files, map[string]string{
		"description": description,
		"ipRegister":  clientIP,
	})
	if err != nil {
		return Result[model.DocumentManagement]{Success: false, Message: err.Error()}
	}

	raw, status, cerr := c.do(ctx, http.MethodPost, "/Documents/"+url.PathEscape(contractorID), contentType, body, c.uploadTimeout)
	if cerr != nil {
		return fail[model.DocumentManagement](cerr)
	}
	return decode[model.DocumentManagement](raw, status)
}

// ReplaceDocument swaps the stored file of a single slot. Carries only that
// slot's file, no description.
func (c *Client) ReplaceDocument(ctx context.Context, contractorID, slot string, file docflow.File) Result[model.DocumentManagement] {
	body, contentType, err := buildMultipart(map[string]docflow.File{slot: file}, nil)
	if err != nil {
		return Result[model.DocumentManagement]{Success: false, Message: err.Error()}
	}

	raw, status, cerr := c.do(ctx, http.MethodPut, "/Documents/"+url.PathEscape(contractorID), contentType, body, c.uploadTimeout)
	if cerr != nil {
		return fail[model.DocumentManagement](cerr)
	}
	return decode[model.DocumentManagement](raw, status)
}

// buildMultipart writes files keyed by slot name plus plain form fields.
// Slots are written in sorted order so requests are deterministic.
func buildMultipart(files map[string]docflow.File, fields map[string]string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	slots := make([]string, 0, len(files))
	for slot := range files {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	for _, slot := range slots {
		f := files[slot]
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+slot+`"; filename="`+f.Name+`"`)
		hdr.Set("Content-Type", "application/pdf")
		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// docUploader adapts the client to the docflow.Uploader interface.
type docUploader struct {
	c *Client
}

// DocumentUploader exposes the client as a docflow.Uploader for trackers.
func (c *Client) DocumentUploader() docflow.Uploader {
	return &docUploader{c: c}
}

func (u *docUploader) Upload(ctx context.Context, contractorID, description, clientIP string, files map[string]docflow.File) error {
	res := u.c.UploadDocuments(ctx, contractorID, description, clientIP, files)
	if !res.Success {
		return errors.New(res.Message)
	}
	return nil
}

func (u *docUploader) Replace(ctx context.Context, contractorID, slot string, file docflow.File) error {
	res := u.c.ReplaceDocument(ctx, contractorID, slot, file)
	if !res.Success {
		return errors.New(res.Message)
	}
	return nil
}
