package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	api "github.com/watchair/watchair/api/v1"
	"github.com/watchair/watchair/internal/handlers/v1/mappers"
	"github.com/watchair/watchair/pkg/log"
)

// (POST /api/v1/domains/{domainId}/files)
func (h *ServiceHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	domainID, err := pathUUID(r, "domainId")
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}

	logger := log.NewDebugLogger("job_handler").WithContext(r.Context()).Operation("upload_file").WithUUID("domain_id", domainID).Build()

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.replyError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", MaxUploadSize))
			return
		}
		logger.Error(err).Log()
		h.replyError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read multipart form: %v", err))
		return
	}
	defer file.Close()

	name, err := h.jobSrv.UploadFile(r.Context(), domainID, header.Filename, file)
	if err != nil {
		logger.Error(err).Log()
		h.replyServiceError(w, r, err)
		return
	}

	logger.Success().WithString("file_name", name).Log()
	h.reply(w, r, http.StatusCreated, api.FileUpload{Id: name})
}

// (POST /api/v1/domains/{domainId}/jobs)
func (h *ServiceHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	domainID, err := pathUUID(r, "domainId")
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}

	var form api.JobCreate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		h.replyError(w, r, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		h.replyServiceError(w, r, err)
		return
	}

	job, err := h.jobSrv.CreateFileJob(r.Context(), domainID, form.FileName)
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}
	h.reply(w, r, http.StatusCreated, mappers.JobToApi(*job))
}

// (GET /api/v1/domains/{domainId}/jobs)
func (h *ServiceHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	domainID, err := pathUUID(r, "domainId")
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}

	jobs, err := h.jobSrv.ListJobs(r.Context(), domainID)
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}
	h.reply(w, r, http.StatusOK, mappers.JobListToApi(jobs))
}

// (GET /api/v1/domains/{domainId}/jobs/{jobId})
func (h *ServiceHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	domainID, err := pathUUID(r, "domainId")
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}
	jobID, err := pathUUID(r, "jobId")
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}

	job, err := h.jobSrv.GetJob(r.Context(), domainID, jobID)
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}
	h.reply(w, r, http.StatusOK, mappers.JobToApi(*job))
}
