package api

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

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"simplegpt/internal/ingest"
	"simplegpt/internal/models"
	"simplegpt/internal/prompt"
	"simplegpt/internal/rag"
)

type stubEmbedder struct{}

func (stubEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type stubStore struct {
	collections map[string][]chromem.Document
	deleteErr   error
}

func newStubStore() *stubStore {
	return &stubStore{collections: make(map[string][]chromem.Document)}
}

func (s *stubStore) AddDocuments(_ context.Context, collection string, docs []chromem.Document) error {
	s.collections[collection] = append(s.collections[collection], docs...)
	return nil
}

func (s *stubStore) Search(_ context.Context, collection string, _ []float32, _ int) ([]chromem.Result, error) {
	docs, ok := s.collections[collection]
	if !ok {
		return nil, errors.New("collection does not exist")
	}
	results := make([]chromem.Result, 0, len(docs))
	for _, d := range docs {
		results = append(results, chromem.Result{Content: d.Content, Metadata: d.Metadata})
	}
	return results, nil
}

func (s *stubStore) ListCollections() []string {
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names
}

func (s *stubStore) DeleteCollection(name string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.collections, name)
	return nil
}

func (s *stubStore) Count(collection string) int {
	return len(s.collections[collection])
}

type stubChat struct{ answer string }

func (s stubChat) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: s.answer}}}, nil
}

func newTestServer(store *stubStore) *Server {
	log := zerolog.Nop()
	prompts := prompt.NewRegistry(nil)
	splitter := ingest.NewSplitter(600, 150)
	pipeline := ingest.NewPipeline(store, stubEmbedder{}, splitter, log)
	service := rag.NewService(stubEmbedder{}, store, stubChat{answer: "42"}, prompts, 5, log)
	return NewServer(":0", pipeline, service, store, prompts, log)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(newStubStore())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListCollections(t *testing.T) {
	store := newStubStore()
	store.collections["docs"] = []chromem.Document{{Content: "x"}}
	srv := newTestServer(store)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/collections", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"docs","count":1}]`, rec.Body.String())
}

func TestDeleteCollection(t *testing.T) {
	store := newStubStore()
	store.collections["docs"] = nil
	srv := newTestServer(store)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/collections/docs", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, store.collections, "docs")
}

func TestListPrompts(t *testing.T) {
	srv := newTestServer(newStubStore())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/prompts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"prompts":["default"]}`, rec.Body.String())
}

func TestQuery(t *testing.T) {
	store := newStubStore()
	store.collections["docs"] = []chromem.Document{
		{Content: "chunk", Metadata: map[string]string{"source": "a.pdf"}},
	}
	srv := newTestServer(store)

	body, err := json.Marshal(rag.Request{Question: "what?", Collection: "docs"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.QueryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "42", result.Answer)
	assert.Equal(t, []string{"a.pdf"}, result.Sources)
}

func TestQueryBadJSON(t *testing.T) {
	srv := newTestServer(newStubStore())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartUpload(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	store := newStubStore()
	srv := newTestServer(store)

	body, contentType := multipartUpload(t,
		map[string]string{"data_type": "txt", "split_documents": "false"},
		map[string]string{"notes.txt": "some text to ingest"},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/collections/docs/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"collection":"docs","chunks":1}`, rec.Body.String())
	assert.Len(t, store.collections["docs"], 1)
}

func TestUploadInvalidDataType(t *testing.T) {
	srv := newTestServer(newStubStore())

	body, contentType := multipartUpload(t,
		map[string]string{"data_type": "csv"},
		map[string]string{"notes.csv": "a,b,c"},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/collections/docs/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadNoFiles(t *testing.T) {
	srv := newTestServer(newStubStore())

	body, contentType := multipartUpload(t, map[string]string{"data_type": "txt"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/collections/docs/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
