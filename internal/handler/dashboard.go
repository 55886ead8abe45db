package handler

import (
	"net/http"
	"strconv"
)

const defaultAlertasLimit = 20

// AlertasRecientes lista las respuestas en alerta más recientes junto con
// los totales. Solo accesible para el personal.
func (h *Handler) AlertasRecientes(w http.ResponseWriter, r *http.Request) {
	limit := defaultAlertasLimit
	if param := r.URL.Query().Get("limit"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, http.StatusBadRequest, "Límite inválido")
			return
		}
		limit = parsed
	}

	alertas, err := h.repository.GetAlertasRecientes(limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	total, totalAlertas, err := h.repository.CountEncuestas()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Alertas recientes", map[string]any{
		"total_encuestas": total,
		"total_alertas":   totalAlertas,
		"umbral_alerta":   h.config.WHO5.UmbralAlerta,
		"recientes":       alertas,
	})
}
