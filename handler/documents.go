package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Josesitobb/adcu-client/model"
	"github.com/Josesitobb/adcu-client/service"
	"github.com/gin-gonic/gin"
)

// maxDocumentSize mirrors the client-side cap.
const maxDocumentSize = 10 << 20 // 10 MB

type DocumentsHandler struct {
	store   *service.Store
	objects service.ObjectStore
}

func NewDocumentsHandler(store *service.Store, objects service.ObjectStore) *DocumentsHandler {
	return &DocumentsHandler{store: store, objects: objects}
}

// List returns every document-management record.
func (h *DocumentsHandler) List(c *gin.Context) {
	respondOK(c, h.store.ListDocuments())
}

// Get returns one contractor's document record.
func (h *DocumentsHandler) Get(c *gin.Context) {
	doc, err := h.store.GetDocuments(c.Param("contractorId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondOK(c, doc)
}

func validatePDF(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if ext != ".pdf" && contentType != "application/pdf" {
		return fmt.Errorf("only PDF files are allowed")
	}
	if header.Size > maxDocumentSize {
		return fmt.Errorf("file %s exceeds the %d MB limit", header.Filename, maxDocumentSize>>20)
	}
	return nil
}

func (h *DocumentsHandler) storeFile(c *gin.Context, contractorID, slot string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("uploads/%s/%s/%s", contractorID, slot, header.Filename)
	return h.objects.Put(c.Request.Context(), objectName, file, header.Size, "application/pdf")
}

// Upload receives the batch submission: any subset of the eleven slots as
// multipart files, plus the required shared description. The whole batch is
// stored before the record is saved, so a failed file leaves the record
// untouched.
func (h *DocumentsHandler) Upload(c *gin.Context) {
	contractorID := c.Param("contractorId")

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart form required")
		return
	}

	description := c.PostForm("description")
	if strings.TrimSpace(description) == "" {
		respondError(c, http.StatusBadRequest, "a description is required")
		return
	}

	ipRegister := c.PostForm("ipRegister")
	if ipRegister == "" {
		ipRegister = c.ClientIP()
	}

	files := make(map[string]*multipart.FileHeader)
	for _, slot := range model.SlotKeys {
		headers := form.File[slot]
		if len(headers) == 0 {
			continue
		}
		if err := validatePDF(headers[0]); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		files[slot] = headers[0]
	}
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "no documents provided")
		return
	}

	doc, err := h.store.GetDocuments(contractorID)
	if err != nil {
		doc = &model.DocumentManagement{ContractorID: contractorID}
	}

	for slot, header := range files {
		path, err := h.storeFile(c, contractorID, slot, header)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to store file")
			return
		}
		doc.SetSlot(slot, path)
	}

	doc.Description = description
	doc.IPRegister = ipRegister

	respondOK(c, h.store.SaveDocuments(*doc))
}

// Replace swaps the stored file of exactly one already-uploaded slot. No
// description travels with this request.
func (h *DocumentsHandler) Replace(c *gin.Context) {
	contractorID := c.Param("contractorId")

	doc, err := h.store.GetDocuments(contractorID)
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart form required")
		return
	}

	var slot string
	var header *multipart.FileHeader
	for _, key := range model.SlotKeys {
		headers := form.File[key]
		if len(headers) == 0 {
			continue
		}
		if slot != "" {
			respondError(c, http.StatusBadRequest, "exactly one document expected")
			return
		}
		slot = key
		header = headers[0]
	}
	if slot == "" {
		respondError(c, http.StatusBadRequest, "no document provided")
		return
	}
	if !doc.Uploaded(slot) {
		respondError(c, http.StatusBadRequest, "slot has no uploaded file to replace")
		return
	}
	if err := validatePDF(header); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	path, err := h.storeFile(c, contractorID, slot, header)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to store file")
		return
	}
	doc.SetSlot(slot, path)

	respondOK(c, h.store.SaveDocuments(*doc))
}
