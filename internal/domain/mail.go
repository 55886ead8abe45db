package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ResetPasswordMailData struct {
	Nombres    string `json:"nombres"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AlertaBienestarMailData struct {
	Nombres      string `json:"nombres"`
	Apellidos    string `json:"apellidos"`
	Correo       string `json:"correo"`
	TipoUsuario  string `json:"tipoUsuario"`
	PuntajeBruto int32  `json:"puntajeBruto"`
	Porcentaje   int32  `json:"porcentaje"`
}
