package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN            string `env:"DSN,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	JWT struct {
		ExpirationMinutes int    `env:"EXPIRATION_MINUTES" envDefault:"1440"` // 24 horas
		Secret            string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Universidad struct {
		Nombre            string `env:"NOMBRE" envDefault:"Uniempresarial"`
		DominioEstudiante string `env:"DOMINIO_ESTUDIANTE" envDefault:"@estudiantes.uniempresarial.edu.co"`
		DominioPersonal   string `env:"DOMINIO_PERSONAL" envDefault:"@uniempresarial.edu.co"`
	} `envPrefix:"UNIVERSIDAD_"`
	InitialAdmin struct {
		Nombres         string `env:"NOMBRES" envDefault:"Administrador"`
		Apellidos       string `env:"APELLIDOS" envDefault:"Bienestar"`
		NumeroDocumento string `env:"NUMERO_DOCUMENTO" envDefault:"0000000000"`
		Email           string `env:"EMAIL,required"`
		Password        string `env:"PASSWORD,required"`
		Cargo           string `env:"CARGO" envDefault:"Personal de Bienestar"`
	} `envPrefix:"INITIAL_ADMIN_"`
	WHO5 struct {
		UmbralAlerta        int    `env:"UMBRAL_ALERTA" envDefault:"13"`
		CambioSignificativo int    `env:"CAMBIO_SIGNIFICATIVO" envDefault:"10"` // en puntos porcentuales
		CorreoAlertas       string `env:"CORREO_ALERTAS"`
	} `envPrefix:"WHO5_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD,required"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	OTP struct {
		Expiration int `env:"EXPIRATION" envDefault:"900"` // 15 minutos
	} `envPrefix:"OTP_"`
	Seed struct {
		User struct {
			Password string `env:"PASSWORD,required"`
		} `envPrefix:"USER_"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Solo se devuelve el primer error para que el log quede claro
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
