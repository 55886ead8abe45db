package domain

import "errors"

// PolicyViolation indica que la entrada incumple una regla de contraseña,
// de dominio de correo o de vocabulario. El mensaje se muestra al usuario.
type PolicyViolation struct {
	Reason string
}

func (e *PolicyViolation) Error() string {
	return e.Reason
}

// ConflictError indica que ya existe un usuario con el mismo valor en un
// campo único (correo institucional o número de documento).
type ConflictError struct {
	Campo string
}

func (e *ConflictError) Error() string {
	switch e.Campo {
	case "numero_documento":
		return "Ya existe un usuario con este número de documento"
	default:
		return "Ya existe un usuario con este correo institucional"
	}
}

var (
	// ErrInvalidCredentials no distingue entre usuario inexistente y
	// contraseña incorrecta.
	ErrInvalidCredentials = errors.New("Correo o contraseña incorrectos")

	ErrTokenExpired = errors.New("El token ha expirado")
	ErrTokenInvalid = errors.New("Token inválido")
)
