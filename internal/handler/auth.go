package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/identity"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) RegistrarEstudiante(w http.ResponseWriter, r *http.Request) {
	req := identity.RegistroEstudiante{}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	usuario, err := h.registrar.RegisterStudent(&req)
	if err != nil {
		h.registrationError(w, r, err)
		return
	}

	h.createdResponse(w, r, "Registro exitoso", usuario)
}

func (h *Handler) RegistrarPersonal(w http.ResponseWriter, r *http.Request) {
	req := identity.RegistroPersonal{}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	usuario, err := h.registrar.RegisterStaff(&req)
	if err != nil {
		h.registrationError(w, r, err)
		return
	}

	h.createdResponse(w, r, "Registro exitoso", usuario)
}

type usuarioResumen struct {
	ID          int64              `json:"id"`
	Nombres     string             `json:"nombres"`
	Apellidos   string             `json:"apellidos"`
	Correo      string             `json:"correo"`
	TipoUsuario domain.TipoUsuario `json:"tipo_usuario"`
	Rol         domain.Rol         `json:"rol"`
}

// Login recibe las credenciales como formulario (username = correo
// institucional) y devuelve un token bearer junto con un resumen del
// usuario.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req := struct {
		Username string `validate:"required"`
		Password string `validate:"required"`
	}{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	usuario, err := h.sessions.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.unauthorized(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token, _, err := h.sessions.IssueToken(usuario)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Inicio de sesión exitoso", map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"usuario": usuarioResumen{
			ID:          usuario.ID,
			Nombres:     usuario.Nombres,
			Apellidos:   usuario.Apellidos,
			Correo:      usuario.CorreoInstitucional,
			TipoUsuario: usuario.Tipo,
			Rol:         usuario.Rol,
		},
	})
}

func (h *Handler) ListarProgramas(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "Programas académicos disponibles", map[string][]string{
		"programas": identity.Programas.Entries(),
	})
}

func (h *Handler) ListarCargos(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "Cargos disponibles", map[string][]string{
		"cargos": identity.Cargos.Entries(),
	})
}

// publishMail serializa el mensaje y lo publica en la cola de correos.
func (h *Handler) publishMail(msg domain.MailMessage) error {
	mailData, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correo string `json:"correo" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	usuario, err := h.repository.GetIdentityByEmail(strings.ToLower(strings.TrimSpace(req.Correo)))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// Aunque el usuario no exista se responde igual, para no revelar
			// qué correos están registrados
			h.successResponse(w, r, "El código de verificación fue enviado por correo", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// Generar el OTP y guardarlo en redis
	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.redisClient.Set(ctx, fmt.Sprintf("otp_%s_reset_password", usuario.CorreoInstitucional), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "reset_password",
		To:   usuario.CorreoInstitucional,
		Data: domain.ResetPasswordMailData{
			Nombres:    usuario.Nombres,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // el correo muestra minutos
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "El código de verificación fue enviado por correo", nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correo   string `json:"correo" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	correo := strings.ToLower(strings.TrimSpace(req.Correo))

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, fmt.Sprintf("otp_%s_reset_password", correo)).Result()
	if err != nil || otp != req.OTP {
		h.errorResponse(w, r, http.StatusBadRequest, "Código de verificación incorrecto")
		return
	}

	// La nueva contraseña pasa por la misma política que en el registro
	if err := h.policy.ValidatePassword(req.Password); err != nil {
		h.registrationError(w, r, err)
		return
	}

	usuario, err := h.repository.GetIdentityByEmail(correo)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "Código de verificación incorrecto")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.UpdatePasswordHash(usuario.ID, string(passwordHash)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.redisClient.Del(ctx, fmt.Sprintf("otp_%s_reset_password", correo)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Contraseña restablecida", nil)
}
