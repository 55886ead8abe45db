package handler

import (
	"log/slog"
	"net/http"

	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
)

// ResponderEncuesta registra una respuesta WHO-5 del usuario autenticado.
// Si el puntaje queda por debajo del umbral se notifica al equipo de
// bienestar por la cola de correos.
func (h *Handler) ResponderEncuesta(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Identity)

	var req struct {
		Respuestas []int32 `json:"respuestas" validate:"required,len=5,dive,min=0,max=5"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	encuesta := &domain.Encuesta{
		UserID: myInfo.ID,
	}
	copy(encuesta.Respuestas[:], req.Respuestas)
	encuesta.Calificar(h.config.WHO5.UmbralAlerta)

	if err := h.repository.InsertEncuesta(encuesta); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if encuesta.Alerta && h.config.WHO5.CorreoAlertas != "" {
		if err := h.publishMail(domain.MailMessage{
			Type: "alerta_bienestar",
			To:   h.config.WHO5.CorreoAlertas,
			Data: domain.AlertaBienestarMailData{
				Nombres:      myInfo.Nombres,
				Apellidos:    myInfo.Apellidos,
				Correo:       myInfo.CorreoInstitucional,
				TipoUsuario:  string(myInfo.Tipo),
				PuntajeBruto: encuesta.PuntajeBruto,
				Porcentaje:   encuesta.Porcentaje,
			},
		}); err != nil {
			// La encuesta ya quedó guardada; la notificación no debe tumbar
			// la respuesta
			slog.Error("no se pudo publicar la alerta de bienestar", "error", err)
		}
	}

	h.createdResponse(w, r, "Encuesta registrada", encuesta)
}

func (h *Handler) MisEncuestas(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Identity)

	encuestas, err := h.repository.GetEncuestasByUser(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Historial de encuestas", encuestas)
}
