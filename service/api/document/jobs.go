package document

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"text_trans_api/config"
	"text_trans_api/models/models"
	"text_trans_api/models/tables"
	"text_trans_api/pkg/extract"
	"text_trans_api/pkg/logger"
	responsex "text_trans_api/pkg/response"
	"text_trans_api/pkg/supabase"
	"text_trans_api/pkg/tasks"
	"text_trans_api/pkg/users"
	"text_trans_api/service/api/middleware/auth"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

// CreateJob handles POST /user/documents/translate: validate the
// uploaded file against the caller's plan, record a pending job row
// and enqueue it for the worker.
func CreateJob(w http.ResponseWriter, r *http.Request) {
	var requestData models.DocumentJobRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid request format. Please check your request body.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.StorageKey == "" || requestData.OriginalFileName == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Please provide the uploaded file reference.",
			Data: map[string]interface{}{},
		})
		return
	}

	if !extract.IsSupportedType(requestData.FileType) {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Unsupported file type. Supported types: pdf, docx, txt.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.SourceLanguage == "" || requestData.TargetLanguage == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Please specify the source and target languages.",
			Data: map[string]interface{}{},
		})
		return
	}

	userid := auth.GetUserIDFromContext(r)
	user_info, err := users.EnsureUser(r.Context(), userid, auth.GetEmailFromContext(r))
	if err != nil {
		logger.Logger.Error("failed to resolve user", "userid", userid, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Internal server error. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	plan := config.GetPlan(user_info.Plan)
	if plan.MaxDocumentSize == 0 {
		responsex.RespondWithJSON(w, http.StatusForbidden, models.Response{
			Code: http.StatusForbidden,
			Msg:  "Document translation is not included in your plan.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.FileSize > plan.MaxDocumentSize {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Document exceeds the size limit for your plan.",
			Data: map[string]interface{}{},
		})
		return
	}

	jobID := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)
	jobRow := map[string]interface{}{
		"id":                 jobID,
		"user_id":            userid,
		"storage_key":        requestData.StorageKey,
		"original_file_name": requestData.OriginalFileName,
		"file_type":          requestData.FileType,
		"file_size":          requestData.FileSize,
		"source_language":    requestData.SourceLanguage,
		"target_language":    requestData.TargetLanguage,
		"status":             tasks.StatusPending,
		"create_time":        now,
		"update_time":        now,
	}

	if err := supabase.Insert(r.Context(), "document_translation_jobs", jobRow); err != nil {
		logger.Logger.Error("failed to create job row", "userid", userid, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Unable to create translation job. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	task, err := tasks.NewDocumentTranslateTask(userid, jobID)
	if err != nil {
		logger.Logger.Error("failed to build task", "job_id", jobID, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Unable to enqueue translation job. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	info, err := tasks.AsynqClient.Enqueue(task)
	if err != nil {
		logger.Logger.Error("failed to enqueue task", "job_id", jobID, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Unable to enqueue translation job. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	logger.Logger.Info("enqueued document job", "job_id", jobID, "task_id", info.ID, "queue", info.Queue)

	responsex.RespondWithJSON(w, http.StatusCreated, models.Response{
		Code: http.StatusCreated,
		Msg:  "Translation job created successfully",
		Data: map[string]interface{}{"id": jobID, "status": tasks.StatusPending},
	})
}

// GetJob handles GET /user/documents/jobs/{id}.
func GetJob(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if _, err := uuid.Parse(id); err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid ID format",
			Data: map[string]interface{}{},
		})
		return
	}

	queryParams := url.Values{}
	queryParams.Add("select", "*")
	queryParams.Add("id", "eq."+id)
	queryParams.Add("user_id", "eq."+auth.GetUserIDFromContext(r))
	queryParams.Add("limit", "1")

	var jobs []tables.DocumentTranslationJob
	if err := supabase.SelectInto(r.Context(), "document_translation_jobs", queryParams, &jobs); err != nil {
		logger.Logger.Error("failed to fetch job", "job_id", id, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Internal server error. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	if len(jobs) == 0 {
		responsex.RespondWithJSON(w, http.StatusNotFound, models.Response{
			Code: http.StatusNotFound,
			Msg:  "Job not found",
			Data: map[string]interface{}{},
		})
		return
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Success",
		Data: jobs[0],
	})
}
