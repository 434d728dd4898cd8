package v1

import (
	"net/http"

	"github.com/watchair/watchair/internal/handlers/v1/mappers"
)

// (GET /api/v1/domains/{domainId}/metrics)
func (h *ServiceHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	domainID, err := pathUUID(r, "domainId")
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}

	headers, err := h.metricSrv.ListMetrics(r.Context(), domainID)
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}
	h.reply(w, r, http.StatusOK, mappers.MetricHeaderListToApi(headers))
}

// (GET /api/v1/fields/review-score)
func (h *ServiceHandler) ListReviewScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.metricSrv.ListReviewScores(r.Context())
	if err != nil {
		h.replyServiceError(w, r, err)
		return
	}
	h.reply(w, r, http.StatusOK, mappers.ReviewScoreListToApi(scores))
}
