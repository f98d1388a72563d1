package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"text_trans_api/config"
	"text_trans_api/models/tables"
	"text_trans_api/pkg/docx"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipelineBackend doubles the job table, object storage and the chat
// completion endpoint behind one httptest server, recording every
// status write the pipeline makes.
type pipelineBackend struct {
	job        tables.DocumentTranslationJob
	file       []byte
	downloadOK bool

	statuses    []string
	patchExtras []map[string]interface{}
	uploadedKey string
	uploaded    []byte
	recordRow   map[string]interface{}
	usageRow    map[string]interface{}
}

func setupPipeline(t *testing.T, job tables.DocumentTranslationJob, file []byte) *pipelineBackend {
	b := &pipelineBackend{job: job, file: file, downloadOK: true}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/chat/completions" && r.Method == "POST":
			var req struct {
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			content := req.Messages[len(req.Messages)-1].Content
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": strings.ToUpper(content)}},
				},
			})

		case r.URL.Path == "/rest/v1/document_translation_jobs" && r.Method == "GET":
			_ = json.NewEncoder(w).Encode([]tables.DocumentTranslationJob{b.job})

		case r.URL.Path == "/rest/v1/document_translation_jobs" && r.Method == "PATCH":
			var fields map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&fields)
			if status, ok := fields["status"].(string); ok {
				b.statuses = append(b.statuses, status)
			}
			b.patchExtras = append(b.patchExtras, fields)
			w.WriteHeader(http.StatusNoContent)

		case r.URL.Path == "/rest/v1/document_translations" && r.Method == "POST":
			b.recordRow = map[string]interface{}{}
			_ = json.NewDecoder(r.Body).Decode(&b.recordRow)
			w.WriteHeader(http.StatusCreated)

		case r.URL.Path == "/rest/v1/document_translation_usage" && r.Method == "POST":
			b.usageRow = map[string]interface{}{}
			_ = json.NewDecoder(r.Body).Decode(&b.usageRow)
			w.WriteHeader(http.StatusCreated)

		case strings.HasPrefix(r.URL.Path, "/storage/v1/object/sign/") && r.Method == "POST":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"signedURL": strings.TrimPrefix(r.URL.Path, "/storage/v1") + "?token=signed",
			})

		case strings.HasPrefix(r.URL.Path, "/storage/v1/object/") && r.Method == "GET":
			if !b.downloadOK {
				http.Error(w, "object not found", http.StatusNotFound)
				return
			}
			_, _ = w.Write(b.file)

		case strings.HasPrefix(r.URL.Path, "/storage/v1/object/") && r.Method == "POST":
			b.uploadedKey = strings.TrimPrefix(r.URL.Path, "/storage/v1/object/"+config.Cfg.Storage.Bucket+"/")
			b.uploaded, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)

		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	config.Cfg.Supabase.SupabaseUrl = server.URL
	config.Cfg.Supabase.SupabaseSecretKey = "service-key"
	config.Cfg.OpenAI.BaseUrl = server.URL
	return b
}

func runTask(t *testing.T, job tables.DocumentTranslationJob) error {
	task, err := NewDocumentTranslateTask(job.Userid, job.ID)
	require.NoError(t, err)
	return HandleDocumentTranslateTask(context.Background(), task)
}

func TestPipelineTxtJob(t *testing.T) {
	job := tables.DocumentTranslationJob{
		ID:               "5f7b9a1c-0000-4000-8000-000000000001",
		Userid:           "user-1",
		StorageKey:       "user-1/input.txt",
		OriginalFileName: "input.txt",
		FileType:         "txt",
		SourceLanguage:   "en",
		TargetLanguage:   "es",
		Status:           StatusPending,
	}
	b := setupPipeline(t, job, []byte("hello world"))

	require.NoError(t, runTask(t, job))

	assert.Equal(t, []string{StatusExtracting, StatusTranslating, StatusGenerating, StatusCompleted}, b.statuses)

	// The completed write carries the result row id.
	final := b.patchExtras[len(b.patchExtras)-1]
	assert.NotEmpty(t, final["result_id"])

	assert.Equal(t, "HELLO WORLD", string(b.uploaded))
	assert.Contains(t, b.uploadedKey, "translated-input.txt")
	assert.True(t, strings.HasPrefix(b.uploadedKey, "user-1/"))

	require.NotNil(t, b.recordRow)
	assert.Equal(t, "user-1", b.recordRow["user_id"])
	assert.Contains(t, b.recordRow["signed_url"], "?token=signed")
	assert.Equal(t, final["result_id"], b.recordRow["id"])

	require.NotNil(t, b.usageRow)
	assert.Equal(t, float64(len("hello world")), b.usageRow["char_total"])
}

func TestPipelineDocxJobTranslatesNodeByNode(t *testing.T) {
	job := tables.DocumentTranslationJob{
		ID:               "5f7b9a1c-0000-4000-8000-000000000002",
		Userid:           "user-2",
		StorageKey:       "user-2/memo.docx",
		OriginalFileName: "memo.docx",
		FileType:         "docx",
		SourceLanguage:   "en",
		TargetLanguage:   "es",
		Status:           StatusPending,
	}
	b := setupPipeline(t, job, docx.GeneratePlain("first line\nsecond line"))

	require.NoError(t, runTask(t, job))

	assert.Equal(t, []string{StatusExtracting, StatusTranslating, StatusGenerating, StatusCompleted}, b.statuses)
	assert.Contains(t, b.uploadedKey, "translated-memo.docx")

	// Each text node went through the model individually and landed
	// back in its own position.
	text, err := docx.ExtractText(b.uploaded)
	require.NoError(t, err)
	assert.Equal(t, "FIRST LINE\nSECOND LINE", text)
}

func TestPipelineFailureMarksJobFailed(t *testing.T) {
	job := tables.DocumentTranslationJob{
		ID:               "5f7b9a1c-0000-4000-8000-000000000003",
		Userid:           "user-3",
		StorageKey:       "user-3/gone.txt",
		OriginalFileName: "gone.txt",
		FileType:         "txt",
		SourceLanguage:   "en",
		TargetLanguage:   "es",
		Status:           StatusPending,
	}
	b := setupPipeline(t, job, nil)
	b.downloadOK = false

	err := runTask(t, job)
	require.Error(t, err)
	// A pipeline failure is terminal, not retried.
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	assert.Equal(t, []string{StatusExtracting, StatusFailed}, b.statuses)
	final := b.patchExtras[len(b.patchExtras)-1]
	errMsg, _ := final["error"].(string)
	assert.Contains(t, errMsg, "download")
}
