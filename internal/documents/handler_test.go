package documents_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"docanalytics-backend/internal/bootstrap"
	"docanalytics-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "guest-tester")
}

func docxBody(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(body.String())); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func postDocx(t *testing.T, router *gin.Engine, fileName string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(data); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestDocumentsUploadAndSearch(t *testing.T) {
	app := newTestApp(t)
	router := app.Router

	data := docxBody(t, "Firewall Field Guide", "Tuning the firewall and vpn against ddos floods.")
	resp := postDocx(t, router, "security.docx", data)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		DocumentID     string `json:"documentId"`
		Title          string `json:"title"`
		FileName       string `json:"fileName"`
		Classification string `json:"classification"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatalf("expected documentId, got empty")
	}
	if created.Title != "Firewall Field Guide" {
		t.Fatalf("expected extracted title, got %q", created.Title)
	}
	if created.Classification != "Computer Science > Security > Network Security" {
		t.Fatalf("unexpected classification %q", created.Classification)
	}

	// Search with highlighting.
	reqSearch := httptest.NewRequest(http.MethodGet, "/api/v1/documents?q=firewall", nil)
	addGuestHeader(reqSearch)
	respSearch := httptest.NewRecorder()
	router.ServeHTTP(respSearch, reqSearch)

	if respSearch.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respSearch.Code)
	}

	var listed struct {
		Stats struct {
			TotalDocuments int `json:"totalDocuments"`
		} `json:"stats"`
		Documents []struct {
			DocumentID string `json:"documentId"`
			Content    string `json:"content"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(respSearch.Body).Decode(&listed); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if listed.Stats.TotalDocuments != 1 || len(listed.Documents) != 1 {
		t.Fatalf("expected one matching document, got %+v", listed)
	}
	if !strings.Contains(listed.Documents[0].Content, "<mark>Firewall</mark>") {
		t.Fatalf("expected highlighted content, got %q", listed.Documents[0].Content)
	}
}

func TestDocumentsRejectUnsupportedUpload(t *testing.T) {
	app := newTestApp(t)

	resp := postDocx(t, app.Router, "notes.txt", []byte("plain text"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Error.Code != "unsupported_format" {
		t.Fatalf("expected unsupported_format, got %q", body.Error.Code)
	}
}

func TestDocumentsRequireIdentity(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestDocumentsClassifiedView(t *testing.T) {
	app := newTestApp(t)
	router := app.Router

	first := docxBody(t, "Containers", "Kernel process scheduling and thread semaphores.")
	if resp := postDocx(t, router, "os.docx", first); resp.Code != http.StatusCreated {
		t.Fatalf("upload os.docx: status %d", resp.Code)
	}
	second := docxBody(t, "Pipelines", "Hadoop and spark over a data lake with hive.")
	if resp := postDocx(t, router, "bigdata.docx", second); resp.Code != http.StatusCreated {
		t.Fatalf("upload bigdata.docx: status %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/classified", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Groups []struct {
			Label     string `json:"label"`
			Documents []struct {
				Title string `json:"title"`
			} `json:"documents"`
		} `json:"groups"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode classified response: %v", err)
	}
	if len(body.Groups) != 2 {
		t.Fatalf("expected two groups, got %+v", body.Groups)
	}
	// Labels come back sorted ascending.
	if body.Groups[0].Label != "Computer Science > Data Science > Big Data" {
		t.Fatalf("unexpected first group %q", body.Groups[0].Label)
	}
	if body.Groups[1].Label != "Computer Science > Systems > Operating Systems" {
		t.Fatalf("unexpected second group %q", body.Groups[1].Label)
	}
}

func TestDocumentsDeleteThenDownloadNotFound(t *testing.T) {
	app := newTestApp(t)
	router := app.Router

	data := docxBody(t, "Ephemeral", "Body text.")
	resp := postDocx(t, router, "ephemeral.docx", data)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: status %d", resp.Code)
	}
	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+created.DocumentID, nil)
	addGuestHeader(reqDel)
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", respDel.Code)
	}

	reqDl := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID+"/download", nil)
	addGuestHeader(reqDl)
	respDl := httptest.NewRecorder()
	router.ServeHTTP(respDl, reqDl)
	if respDl.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", respDl.Code)
	}
}
