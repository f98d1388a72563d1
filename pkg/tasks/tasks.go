package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"text_trans_api/config"
	"text_trans_api/models/tables"
	"text_trans_api/pkg/docx"
	"text_trans_api/pkg/extract"
	"text_trans_api/pkg/llm"
	"text_trans_api/pkg/logger"
	"text_trans_api/pkg/storage"
	"text_trans_api/pkg/supabase"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	DocumentTranslate = "document:translate"
)

// Job status values, persisted after each pipeline step.
const (
	StatusPending     = "pending"
	StatusExtracting  = "extracting"
	StatusTranslating = "translating"
	StatusGenerating  = "generating"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
)

var AsynqClient *asynq.Client

func init() {
	AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", config.Cfg.Redis.Host, config.Cfg.Redis.Port),
		Password: config.Cfg.Redis.Password,
	})
}

type DocumentTranslatePayload struct {
	Userid string `json:"userid"`
	JobID  string `json:"job_id"`
}

func NewDocumentTranslateTask(userid string, jobID string) (*asynq.Task, error) {
	payload, err := json.Marshal(DocumentTranslatePayload{Userid: userid, JobID: jobID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(DocumentTranslate, payload), nil
}

// HandleDocumentTranslateTask runs the document pipeline:
// extract -> translate -> generate -> upload, advancing the job row's
// status at each step. Any step's failure marks the job failed; there
// is no retry or partial recovery between steps.
func HandleDocumentTranslateTask(ctx context.Context, t *asynq.Task) error {
	var p DocumentTranslatePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	job, err := fetchJob(ctx, p.JobID)
	if err != nil {
		return fmt.Errorf("failed to fetch job: %v", err)
	}

	if err := runPipeline(ctx, job); err != nil {
		if failErr := setJobStatus(ctx, job.ID, StatusFailed, map[string]interface{}{"error": err.Error()}); failErr != nil {
			logger.Logger.Error("failed to mark job failed", "job_id", job.ID, "error", failErr.Error())
		}
		return fmt.Errorf("document pipeline failed: %v: %w", err, asynq.SkipRetry)
	}

	return nil
}

func runPipeline(ctx context.Context, job *tables.DocumentTranslationJob) error {
	// extract
	if err := setJobStatus(ctx, job.ID, StatusExtracting, nil); err != nil {
		return err
	}

	original, err := storage.Download(ctx, config.Cfg.Storage.Bucket, job.StorageKey)
	if err != nil {
		return fmt.Errorf("download: %v", err)
	}

	text, err := extract.FromBytes(original, job.FileType)
	if err != nil {
		return fmt.Errorf("extract: %v", err)
	}

	// translate
	if err := setJobStatus(ctx, job.ID, StatusTranslating, nil); err != nil {
		return err
	}

	var output []byte
	var outputName, contentType string

	if job.FileType == "docx" {
		// Node-by-node translation keeps a 1:1 alignment so the
		// patcher can substitute in place and keep formatting.
		data, err := docx.Capture(original)
		if err != nil {
			return fmt.Errorf("capture: %v", err)
		}

		for _, node := range data.OriginalNodes {
			if strings.TrimSpace(node) == "" {
				data.TranslatedNodes = append(data.TranslatedNodes, node)
				continue
			}
			translated, err := llm.Translate(ctx, job.SourceLanguage, job.TargetLanguage, node)
			if err != nil {
				return fmt.Errorf("translate: %v", err)
			}
			data.TranslatedNodes = append(data.TranslatedNodes, translated)
		}

		if err := setJobStatus(ctx, job.ID, StatusGenerating, nil); err != nil {
			return err
		}

		output = docx.Build(strings.Join(data.TranslatedNodes, "\n"), data)
		outputName = translatedFileName(job.OriginalFileName, "docx")
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	} else {
		translated, err := llm.Translate(ctx, job.SourceLanguage, job.TargetLanguage, text)
		if err != nil {
			return fmt.Errorf("translate: %v", err)
		}

		if err := setJobStatus(ctx, job.ID, StatusGenerating, nil); err != nil {
			return err
		}

		// pdf output is downgraded to plain text.
		output = []byte(translated)
		outputName = translatedFileName(job.OriginalFileName, "txt")
		contentType = "text/plain; charset=utf-8"
	}

	// upload + record
	key := storage.NewObjectKey(job.Userid, outputName)
	if err := storage.Upload(ctx, config.Cfg.Storage.Bucket, key, output, contentType); err != nil {
		return fmt.Errorf("upload: %v", err)
	}

	expiry := config.Cfg.Storage.DocumentUrlHours * 3600
	signedURL, err := storage.CreateSignedURL(ctx, config.Cfg.Storage.Bucket, key, expiry)
	if err != nil {
		return fmt.Errorf("sign: %v", err)
	}

	resultID := uuid.New().String()
	now := time.Now().UTC()
	record := map[string]interface{}{
		"id":              resultID,
		"user_id":         job.Userid,
		"document_name":   outputName,
		"source_language": job.SourceLanguage,
		"target_language": job.TargetLanguage,
		"file_size":       len(output),
		"signed_url":      signedURL,
		"create_time":     now.Format(time.RFC3339),
		"expires_at":      now.Add(time.Duration(expiry) * time.Second).Format(time.RFC3339),
	}
	if err := supabase.Insert(ctx, "document_translations", record); err != nil {
		return fmt.Errorf("record: %v", err)
	}

	if err := addDocumentUsage(ctx, job, len(text)); err != nil {
		// Usage accounting failures do not fail a finished translation.
		logger.Logger.Error("failed to record document usage", "job_id", job.ID, "error", err.Error())
	}

	logger.Logger.Info("document translated", "job_id", job.ID, "userid", job.Userid, "result_id", resultID)

	return setJobStatus(ctx, job.ID, StatusCompleted, map[string]interface{}{"result_id": resultID})
}

func translatedFileName(original string, ext string) string {
	base := original
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return fmt.Sprintf("translated-%s.%s", base, ext)
}

func fetchJob(ctx context.Context, jobID string) (*tables.DocumentTranslationJob, error) {
	queryParams := url.Values{}
	queryParams.Add("select", "*")
	queryParams.Add("id", "eq."+jobID)
	queryParams.Add("limit", "1")

	var jobs []tables.DocumentTranslationJob
	if err := supabase.SelectInto(ctx, "document_translation_jobs", queryParams, &jobs); err != nil {
		return nil, err
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("job %s not found", jobID)
	}

	return &jobs[0], nil
}

func setJobStatus(ctx context.Context, jobID string, status string, extra map[string]interface{}) error {
	updateData := map[string]interface{}{
		"status":      status,
		"update_time": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range extra {
		updateData[k] = v
	}

	queryParams := url.Values{}
	queryParams.Add("id", "eq."+jobID)
	return supabase.Update(ctx, "document_translation_jobs", queryParams, updateData)
}

func addDocumentUsage(ctx context.Context, job *tables.DocumentTranslationJob, charTotal int) error {
	return supabase.Insert(ctx, "document_translation_usage", map[string]interface{}{
		"user_id":       job.Userid,
		"job_id":        job.ID,
		"document_name": job.OriginalFileName,
		"char_total":    charTotal,
		"create_time":   time.Now().UTC().Format(time.RFC3339),
	})
}
