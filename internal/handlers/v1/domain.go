package v1

import (
	"net/http"

	"github.com/go-chi/render"

	api "github.com/watchair/watchair/api/v1"
	"github.com/watchair/watchair/internal/handlers/v1/mappers"
	"github.com/watchair/watchair/pkg/log"
)

// (GET /api/v1/domains)
func (h *ServiceHandler) ListDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.domainSrv.ListDomains(r.Context())
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}
	h.reply(w, r, http.StatusOK, mappers.DomainListToApi(domains))
}

// (POST /api/v1/domains)
func (h *ServiceHandler) CreateDomain(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("domain_handler").WithContext(r.Context()).Operation("create_domain").Build()

	var form api.DomainCreate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		h.replyError(w, r, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	if err := h.validator.Struct(form); err != nil {
		h.replyServiceError(w, r, err)
		return
	}

	domain, err := h.domainSrv.CreateDomain(r.Context(), mappers.DomainFormApi(form))
	if err != nil {
		logger.Error(err).Log()
		h.replyServiceError(w, r, err)
		return
	}

	logger.Success().WithString("domain_id", domain.ID.String()).Log()
	h.reply(w, r, http.StatusCreated, mappers.DomainToApi(*domain))
}

// (GET /api/v1/domains/{domainId})
func (h *ServiceHandler) GetDomain(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "domainId")
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}

	domain, err := h.domainSrv.GetDomain(r.Context(), id)
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}
	h.reply(w, r, http.StatusOK, mappers.DomainToApi(*domain))
}
