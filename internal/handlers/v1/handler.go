package v1

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/watchair/watchair/api/v1"
	"github.com/watchair/watchair/internal/handlers/validator"
	"github.com/watchair/watchair/internal/service"
	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/pkg/requestid"
)

// MaxUploadSize bounds the multipart body of a workbook upload.
const MaxUploadSize = 32 << 20

type ServiceHandler struct {
	domainSrv *service.DomainService
	jobSrv    *service.JobService
	metricSrv *service.MetricService
	validator *validator.Validator
}

func NewServiceHandler(domainService *service.DomainService, jobService *service.JobService, metricService *service.MetricService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewDomainValidationRules()...)
	v.Register(validator.NewJobValidationRules()...)

	return &ServiceHandler{
		domainSrv: domainService,
		jobSrv:    jobService,
		metricSrv: metricService,
		validator: v,
	}
}

// RegisterRoutes mounts the /api/v1 endpoints on router.
func (h *ServiceHandler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/fields/review-score", h.ListReviewScores)

		r.Route("/domains", func(r chi.Router) {
			r.Get("/", h.ListDomains)
			r.Post("/", h.CreateDomain)

			r.Route("/{domainId}", func(r chi.Router) {
				r.Get("/", h.GetDomain)
				r.Post("/files", h.UploadFile)
				r.Get("/jobs", h.ListJobs)
				r.Post("/jobs", h.CreateJob)
				r.Get("/jobs/{jobId}", h.GetJob)
				r.Get("/metrics", h.ListMetrics)
			})
		})
	})
}

// (GET /api/v1/health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Health{Status: "ok"})
}

func (h *ServiceHandler) reply(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

func (h *ServiceHandler) replyError(w http.ResponseWriter, r *http.Request, status int, message string) {
	body := api.Error{Message: message}
	if rid := requestid.FromRequest(r); rid != "" {
		body.RequestId = &rid
	}
	h.reply(w, r, status, body)
}

// replyServiceError maps the service and validation errors onto HTTP statuses.
// Anything unknown is reported as an internal error without its details.
func (h *ServiceHandler) replyServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound     *service.ErrResourceNotFound
		invalid      *service.ErrInvalidRequest
		invalidField *validator.ErrInvalidField
		exists       *service.ErrFileAlreadyExists
	)

	switch {
	case errors.As(err, &notFound):
		h.replyError(w, r, http.StatusNotFound, err.Error())
	case errors.As(err, &invalid), errors.As(err, &invalidField):
		h.replyError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &exists), errors.Is(err, store.ErrDuplicateKey):
		h.replyError(w, r, http.StatusConflict, err.Error())
	default:
		h.replyError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, service.NewErrInvalidRequest("invalid %s: %v", param, err)
	}
	return id, nil
}
