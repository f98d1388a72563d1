package document

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"text_trans_api/models/models"
	"text_trans_api/pkg/docx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generateResponse struct {
	Code int                         `json:"code"`
	Data models.GenerateDocumentData `json:"data"`
}

func postGenerate(t *testing.T, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/generate-document", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	GenerateDocument(w, req)
	return w
}

func decodeDocument(t *testing.T, w *httptest.ResponseRecorder) (generateResponse, []byte) {
	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := base64.StdEncoding.DecodeString(resp.Data.DocumentData)
	require.NoError(t, err)
	return resp, raw
}

func TestGenerateDocumentTxt(t *testing.T) {
	w := postGenerate(t, models.GenerateDocumentRequest{
		TranslatedText:   "hola mundo",
		FileType:         "txt",
		OriginalFileName: "notes.txt",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp, raw := decodeDocument(t, w)
	assert.Equal(t, "hola mundo", string(raw))
	assert.Equal(t, "translated-notes.txt", resp.Data.FileName)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Data.ContentType)
}

func TestGenerateDocumentPdfDowngradesToTxt(t *testing.T) {
	w := postGenerate(t, models.GenerateDocumentRequest{
		TranslatedText:   "contenido",
		FileType:         "pdf",
		OriginalFileName: "report.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp, _ := decodeDocument(t, w)
	assert.Equal(t, "translated-report.txt", resp.Data.FileName)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Data.ContentType)
}

func TestGenerateDocumentDocxWithoutStructure(t *testing.T) {
	w := postGenerate(t, models.GenerateDocumentRequest{
		TranslatedText:   "primera línea\nsegunda línea",
		FileType:         "docx",
		OriginalFileName: "memo.docx",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp, raw := decodeDocument(t, w)
	assert.Equal(t, "translated-memo.docx", resp.Data.FileName)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", resp.Data.ContentType)

	text, err := docx.ExtractText(raw)
	require.NoError(t, err)
	assert.Equal(t, "primera línea\nsegunda línea", text)
}

func TestGenerateDocumentDocxWithStructure(t *testing.T) {
	original := docx.GeneratePlain("hello world")
	captured, err := docx.Capture(original)
	require.NoError(t, err)
	captured.TranslatedNodes = []string{"hola mundo"}

	w := postGenerate(t, models.GenerateDocumentRequest{
		TranslatedText:     "hola mundo",
		FileType:           "docx",
		OriginalFileName:   "memo.docx",
		TranslatedDocxData: captured,
	})
	require.Equal(t, http.StatusOK, w.Code)

	_, raw := decodeDocument(t, w)
	text, err := docx.ExtractText(raw)
	require.NoError(t, err)
	assert.Equal(t, "hola mundo", text)
}

func TestGenerateDocumentValidation(t *testing.T) {
	w := postGenerate(t, models.GenerateDocumentRequest{FileType: "txt"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postGenerate(t, models.GenerateDocumentRequest{
		TranslatedText: "text",
		FileType:       "odt",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "translated-report.docx", outputFileName("report.docx", "docx"))
	assert.Equal(t, "translated-document.txt", outputFileName("", "txt"))
	assert.Equal(t, "translated-archive.tar.txt", outputFileName("archive.tar.gz", "txt"))
	assert.Equal(t, "translated-.hidden.txt", outputFileName(".hidden", "txt"))
}
