package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docqa/internal/rag"
	"docqa/internal/transport/http/response"
)

const maxPDFSize = 10 << 20 // 10 MB

// DocumentIngestor processes uploaded PDF bytes into the vector index.
type DocumentIngestor interface {
	Ingest(ctx context.Context, pdfBytes []byte, filename string) (int, error)
}

type IngestHandler struct {
	ingestor DocumentIngestor
}

func NewIngestHandler(ingestor DocumentIngestor) *IngestHandler {
	return &IngestHandler{ingestor: ingestor}
}

// UploadPDF accepts a multipart form with "file" (PDF), extracts text and
// stores the resulting chunks.
func (h *IngestHandler) UploadPDF(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > maxPDFSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large (max 10MB)")
		return
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}

	count, err := h.ingestor.Ingest(c.Request.Context(), data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrExtraction):
			response.Error(c, http.StatusBadRequest, response.CodeInvalidPDF, "failed to extract text from PDF: "+err.Error())
		case errors.Is(err, rag.ErrIndexWrite):
			response.Error(c, http.StatusInternalServerError, response.CodeIndexWrite, "failed to store document chunks")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ingest failed: "+err.Error())
		}
		return
	}

	response.OK(c, gin.H{
		"status": "File uploaded and processed successfully",
		"chunks": count,
	})
}
