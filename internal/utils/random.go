package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/identity"
	"golang.org/x/crypto/bcrypt"
)

var nombresComunes = []string{
	"Juan", "Camila", "Andrés", "Valentina", "Santiago", "María", "Carlos", "Daniela",
	"Felipe", "Laura", "Sebastián", "Paula", "Diego", "Sofía", "Julián", "Ana",
	"Mateo", "Isabela", "Nicolás", "Gabriela",
}

var apellidosComunes = []string{
	"García", "Rodríguez", "Martínez", "López", "González", "Hernández", "Pérez",
	"Sánchez", "Ramírez", "Torres", "Flórez", "Vargas", "Castro", "Ortiz", "Rojas",
	"Moreno", "Jiménez", "Muñoz", "Gutiérrez", "Osorio",
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// correoDesdeNombre arma la parte local del correo a partir del nombre, sin
// tildes y con un sufijo numérico para evitar colisiones.
func correoDesdeNombre(nombres, apellidos string) string {
	local := identity.Normalize(nombres) + "." + identity.Normalize(apellidos)
	local = strings.ReplaceAll(local, " ", "")
	return fmt.Sprintf("%s%03d", local, rand.Intn(1000))
}

func GenerateRandomStudent(password, dominioEstudiante string) (*domain.Identity, error) {
	nombres := nombresComunes[rand.Intn(len(nombresComunes))]
	apellidos := apellidosComunes[rand.Intn(len(apellidosComunes))] + " " + apellidosComunes[rand.Intn(len(apellidosComunes))]

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	programas := identity.Programas.Entries()

	return &domain.Identity{
		Tipo:                domain.TipoEstudiante,
		Nombres:             nombres,
		Apellidos:           apellidos,
		TipoDocumento:       domain.DocumentoCC,
		NumeroDocumento:     fmt.Sprintf("1%09d", rand.Intn(1000000000)),
		CorreoInstitucional: correoDesdeNombre(nombres, apellidos) + dominioEstudiante,
		PasswordHash:        string(passwordHash),
		Rol:                 domain.RolEstudiante,
		Estudiante: &domain.PerfilEstudiante{
			Programa:  programas[rand.Intn(len(programas))],
			Promocion: fmt.Sprintf("%d-%d", 2020+rand.Intn(6), 1+rand.Intn(2)),
		},
		ConsentAccepted: true,
		CanContact:      rand.Intn(2) == 0,
	}, nil
}

func GenerateRandomStaff(password, dominioPersonal string) (*domain.Identity, error) {
	nombres := nombresComunes[rand.Intn(len(nombresComunes))]
	apellidos := apellidosComunes[rand.Intn(len(apellidosComunes))] + " " + apellidosComunes[rand.Intn(len(apellidosComunes))]

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cargos := identity.Cargos.Entries()

	return &domain.Identity{
		Tipo:                domain.TipoPersonal,
		Nombres:             nombres,
		Apellidos:           apellidos,
		TipoDocumento:       domain.DocumentoCC,
		NumeroDocumento:     fmt.Sprintf("%08d", rand.Intn(100000000)),
		CorreoInstitucional: correoDesdeNombre(nombres, apellidos) + dominioPersonal,
		PasswordHash:        string(passwordHash),
		Rol:                 domain.RolPersonal,
		Personal: &domain.PerfilPersonal{
			Cargo: cargos[rand.Intn(len(cargos))],
		},
		ConsentAccepted: true,
		CanContact:      rand.Intn(2) == 0,
	}, nil
}

func GenerateRandomEncuesta(userID int64, umbralAlerta int) *domain.Encuesta {
	e := &domain.Encuesta{
		UserID: userID,
	}
	for i := range e.Respuestas {
		e.Respuestas[i] = int32(rand.Intn(domain.WHO5RespuestaMax + 1))
	}
	e.Calificar(umbralAlerta)
	return e
}
