package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/model"
	"docqa/internal/rag"
	"docqa/internal/transport/http/response"
)

type stubIngestor struct {
	count    int
	err      error
	lastName string
	lastData []byte
}

func (s *stubIngestor) Ingest(_ context.Context, pdfBytes []byte, filename string) (int, error) {
	s.lastData = pdfBytes
	s.lastName = filename
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

type stubAnswerer struct {
	answer      string
	err         error
	lastHistory []model.ConversationTurn
}

func (s *stubAnswerer) Answer(_ context.Context, _ string, history []model.ConversationTurn) (string, error) {
	s.lastHistory = history
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func newTestRouter(ingestor DocumentIngestor, answerer QuestionAnswerer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/upload-pdf", NewIngestHandler(ingestor).UploadPDF)
	askHandler := NewAskHandler(answerer, nil)
	router.POST("/ask", askHandler.Ask)
	router.DELETE("/session/:id", askHandler.ClearSession)
	return router
}

func multipartPDF(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadPDF_Success(t *testing.T) {
	ingestor := &stubIngestor{count: 5}
	router := newTestRouter(ingestor, &stubAnswerer{})

	body, contentType := multipartPDF(t, "report.pdf", []byte("%PDF-1.4 data"))
	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeOK, resp.Code)
	assert.Equal(t, "report.pdf", ingestor.lastName)
	assert.Equal(t, []byte("%PDF-1.4 data"), ingestor.lastData)
}

func TestUploadPDF_MissingFile(t *testing.T) {
	router := newTestRouter(&stubIngestor{}, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", strings.NewReader(""))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadPDF_RejectsNonPDF(t *testing.T) {
	router := newTestRouter(&stubIngestor{}, &stubAnswerer{})

	body, contentType := multipartPDF(t, "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadPDF_ExtractionFailure(t *testing.T) {
	ingestor := &stubIngestor{err: rag.ErrExtraction}
	router := newTestRouter(ingestor, &stubAnswerer{})

	body, contentType := multipartPDF(t, "broken.pdf", []byte("garbage"))
	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeInvalidPDF, resp.Code)
}

func TestUploadPDF_IndexWriteFailure(t *testing.T) {
	ingestor := &stubIngestor{err: rag.ErrIndexWrite}
	router := newTestRouter(ingestor, &stubAnswerer{})

	body, contentType := multipartPDF(t, "doc.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAsk_Success(t *testing.T) {
	answerer := &stubAnswerer{answer: "Paris."}
	router := newTestRouter(&stubIngestor{}, answerer)

	payload := `{
		"question": "What is the capital of France?",
		"history": [
			{"role": "user", "content": "Hi"},
			{"role": "assistant", "content": "Hello"},
			{"role": "user", "content": "What is the capital of France?"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Code int `json:"code"`
		Data struct {
			Answer string `json:"answer"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Paris.", resp.Data.Answer)
	assert.Len(t, answerer.lastHistory, 3, "request history is passed through as supplied")
}

func TestAsk_MissingQuestion(t *testing.T) {
	router := newTestRouter(&stubIngestor{}, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"history": []}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAsk_GenerationFailure(t *testing.T) {
	answerer := &stubAnswerer{err: rag.ErrGeneration}
	router := newTestRouter(&stubIngestor{}, answerer)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "q"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeGeneration, resp.Code)
}

func TestClearSession_CacheDisabled(t *testing.T) {
	router := newTestRouter(&stubIngestor{}, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodDelete, "/session/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAsk_UnexpectedFailure(t *testing.T) {
	answerer := &stubAnswerer{err: errors.New("boom")}
	router := newTestRouter(&stubIngestor{}, answerer)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "q"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
