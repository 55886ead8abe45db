package handler

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/config"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/identity"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/repository"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/session"
)

var promocionRegexp = regexp.MustCompile(`^\d{4}-[12]$`)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	policy      *identity.CredentialPolicy
	registrar   *identity.Registrar
	sessions    *session.Issuer

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// Validación estructural de la promoción (YYYY-1 o YYYY-2)
	if err := validate.RegisterValidation("promocion", func(fl validator.FieldLevel) bool {
		return promocionRegexp.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := validate.RegisterTranslation("promocion", trans, func(ut ut.Translator) error {
		return ut.Add("promocion", "Formato de promoción inválido. Use: YYYY-1 o YYYY-2", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("promocion", fe.Field())
		return t
	}); err != nil {
		return nil, err
	}

	policy := identity.NewCredentialPolicy(cfg.Universidad.DominioEstudiante, cfg.Universidad.DominioPersonal)
	registrar := identity.NewRegistrar(policy, identity.Programas, identity.Cargos, repo)

	sessions, err := session.NewIssuer(cfg.JWT.Secret, cfg.JWT.ExpirationMinutes, repo)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		policy:      policy,
		registrar:   registrar,
		sessions:    sessions,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/health", h.Health)

	// Autenticación y registro
	h.Mux.Route("/api/auth", func(r chi.Router) {
		r.Post("/registro/estudiante", h.RegistrarEstudiante)
		r.Post("/registro/personal", h.RegistrarPersonal)
		r.Post("/login", h.Login)
		r.Get("/programas", h.ListarProgramas)
		r.Get("/cargos", h.ListarCargos)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Las siguientes rutas requieren un token de sesión válido
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/me", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/api/encuestas", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.ResponderEncuesta)
			r.Get("/mias", h.MisEncuestas)
		})

		// El tablero solo es visible para el personal
		r.Route("/api/dashboard", func(r chi.Router) {
			r.Use(h.RequiredRol([]domain.Rol{domain.RolPersonal}))
			r.Get("/alertas", h.AlertasRecientes)
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "ok", nil)
}
