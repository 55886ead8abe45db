package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncuestaCalificar(t *testing.T) {
	tests := []struct {
		name           string
		respuestas     [5]int32
		wantBruto      int32
		wantPorcentaje int32
		wantAlerta     bool
	}{
		{"bienestar maximo", [5]int32{5, 5, 5, 5, 5}, 25, 100, false},
		{"bienestar minimo", [5]int32{0, 0, 0, 0, 0}, 0, 0, true},
		{"justo debajo del umbral", [5]int32{3, 3, 2, 2, 2}, 12, 48, true},
		{"justo en el umbral", [5]int32{3, 3, 3, 2, 2}, 13, 52, false},
		{"mixto sin alerta", [5]int32{4, 3, 5, 2, 4}, 18, 72, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encuesta := &Encuesta{Respuestas: tt.respuestas}
			encuesta.Calificar(13)

			assert.Equal(t, tt.wantBruto, encuesta.PuntajeBruto)
			assert.Equal(t, tt.wantPorcentaje, encuesta.Porcentaje)
			assert.Equal(t, tt.wantAlerta, encuesta.Alerta)
		})
	}
}

func TestEncuestaCalificarUmbralConfigurable(t *testing.T) {
	encuesta := &Encuesta{Respuestas: [5]int32{3, 3, 3, 3, 3}}

	encuesta.Calificar(13)
	assert.False(t, encuesta.Alerta)

	encuesta.Calificar(20)
	assert.True(t, encuesta.Alerta)
}
