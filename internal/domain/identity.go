package domain

import (
	"encoding/json"
	"time"
)

type TipoUsuario string

const (
	TipoEstudiante TipoUsuario = "estudiante"
	TipoPersonal   TipoUsuario = "personal"
)

type Rol string

const (
	RolEstudiante Rol = "estudiante"
	RolPersonal   Rol = "personal"
)

type TipoDocumento string

const (
	DocumentoCC TipoDocumento = "CC" // Cédula de Ciudadanía
	DocumentoTI TipoDocumento = "TI" // Tarjeta de Identidad
	DocumentoCE TipoDocumento = "CE" // Cédula de Extranjería
	DocumentoPA TipoDocumento = "PA" // Pasaporte
)

type PerfilEstudiante struct {
	Programa  string `json:"programa"`
	Promocion string `json:"promocion"` // formato YYYY-1 o YYYY-2
}

type PerfilPersonal struct {
	Cargo string `json:"cargo"`
}

// Identity es el registro canónico de un usuario. Exactamente uno de
// Estudiante o Personal es no-nulo, según Tipo.
type Identity struct {
	ID                  int64
	Tipo                TipoUsuario
	Nombres             string
	Apellidos           string
	TipoDocumento       TipoDocumento
	NumeroDocumento     string
	CorreoInstitucional string
	PasswordHash        string
	Rol                 Rol
	Estudiante          *PerfilEstudiante
	Personal            *PerfilPersonal
	ConsentAccepted     bool
	ConsentDate         *time.Time
	CanContact          bool
	CreatedAt           time.Time
	LastLogin           *time.Time
	Version             int32
}

type identityJSON struct {
	ID                  int64         `json:"id"`
	TipoUsuario         TipoUsuario   `json:"tipo_usuario"`
	Nombres             string        `json:"nombres"`
	Apellidos           string        `json:"apellidos"`
	TipoDocumento       TipoDocumento `json:"tipo_documento"`
	NumeroDocumento     string        `json:"numero_documento"`
	CorreoInstitucional string        `json:"correo_institucional"`
	Rol                 Rol           `json:"rol"`
	Programa            *string       `json:"programa"`
	Promocion           *string       `json:"promocion"`
	Cargo               *string       `json:"cargo"`
	ConsentAccepted     bool          `json:"consent_accepted"`
	ConsentDate         *time.Time    `json:"consent_date"`
	CanContact          bool          `json:"can_contact"`
	CreatedAt           time.Time     `json:"created_at"`
	LastLogin           *time.Time    `json:"last_login"`
}

// MarshalJSON aplana el perfil según el tipo de usuario y nunca expone el
// hash de la contraseña.
func (i *Identity) MarshalJSON() ([]byte, error) {
	out := identityJSON{
		ID:                  i.ID,
		TipoUsuario:         i.Tipo,
		Nombres:             i.Nombres,
		Apellidos:           i.Apellidos,
		TipoDocumento:       i.TipoDocumento,
		NumeroDocumento:     i.NumeroDocumento,
		CorreoInstitucional: i.CorreoInstitucional,
		Rol:                 i.Rol,
		ConsentAccepted:     i.ConsentAccepted,
		ConsentDate:         i.ConsentDate,
		CanContact:          i.CanContact,
		CreatedAt:           i.CreatedAt,
		LastLogin:           i.LastLogin,
	}

	switch i.Tipo {
	case TipoEstudiante:
		if i.Estudiante != nil {
			out.Programa = &i.Estudiante.Programa
			out.Promocion = &i.Estudiante.Promocion
		}
	case TipoPersonal:
		if i.Personal != nil {
			out.Cargo = &i.Personal.Cargo
		}
	}

	return json.Marshal(out)
}
