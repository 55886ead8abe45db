package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/config"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/repository"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var userID int64

	flag.IntVar(&op, "op", 0, "operación (1: insertar estudiantes, 2: insertar personal, 3: insertar encuestas de un usuario)")
	flag.IntVar(&n, "n", 5, "cantidad de registros a insertar")
	flag.Int64Var(&userID, "user-id", 0, "ID del usuario para las encuestas")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Cargar la configuración
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuración", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Crear el pool de conexiones
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("no se pudo crear el pool de conexiones", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("no se pudo conectar a la base de datos", "error", err)
		return
	}

	// Crear el repository
	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no se indicó ninguna operación")
	case 1:
		if n <= 0 {
			slog.Error("la cantidad de estudiantes debe ser positiva")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			estudiante, err := utils.GenerateRandomStudent(cfg.Seed.User.Password, cfg.Universidad.DominioEstudiante)
			if err != nil {
				slog.Error("no se pudo generar el estudiante", slog.String("error", err.Error()))
				continue
			}

			if err := repo.InsertIdentity(estudiante); err != nil {
				slog.Error("no se pudo insertar el estudiante", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("estudiantes insertados", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("la cantidad de personal debe ser positiva")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			personal, err := utils.GenerateRandomStaff(cfg.Seed.User.Password, cfg.Universidad.DominioPersonal)
			if err != nil {
				slog.Error("no se pudo generar el registro de personal", slog.String("error", err.Error()))
				continue
			}

			if err := repo.InsertIdentity(personal); err != nil {
				slog.Error("no se pudo insertar el registro de personal", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("personal insertado", slog.Int("count", n-cnt))
	case 3:
		if userID <= 0 {
			slog.Error("debe indicar un user-id válido")
			return
		}
		if n <= 0 {
			slog.Error("la cantidad de encuestas debe ser positiva")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			encuesta := utils.GenerateRandomEncuesta(userID, cfg.WHO5.UmbralAlerta)
			if err := repo.InsertEncuesta(encuesta); err != nil {
				slog.Error("no se pudo insertar la encuesta", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("encuestas insertadas", slog.Int("count", n-cnt))
	default:
		slog.Error("operación no válida")
	}
}
