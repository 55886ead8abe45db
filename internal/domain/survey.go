package domain

import "time"

// Escala WHO-5: cinco preguntas, cada respuesta entre 0 y 5.
const (
	WHO5Preguntas    = 5
	WHO5RespuestaMin = 0
	WHO5RespuestaMax = 5
)

type Encuesta struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Respuestas    [5]int32   `json:"respuestas"`
	PuntajeBruto  int32      `json:"puntaje_bruto"` // 0-25
	Porcentaje    int32      `json:"porcentaje"`    // puntaje bruto * 4, 0-100
	Alerta        bool       `json:"alerta"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Calificar calcula los puntajes y marca la alerta cuando el puntaje bruto
// queda por debajo del umbral configurado.
func (e *Encuesta) Calificar(umbralAlerta int) {
	var bruto int32
	for _, r := range e.Respuestas {
		bruto += r
	}
	e.PuntajeBruto = bruto
	e.Porcentaje = bruto * 4
	e.Alerta = bruto < int32(umbralAlerta)
}
