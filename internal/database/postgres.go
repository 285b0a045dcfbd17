package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/dayflowhq/dayflow/internal/config"
)

func NewConnect(cfg *config.Config, logger *slog.Logger) (*pgx.Conn, error) {
	url := fmt.Sprintf("postgres://%s:%s@%s/%s",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Database)

	conn, err := pgx.Connect(context.Background(), url)
	if err != nil {
		logger.Error("Error connecting to DB", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Connected to DB successfully")
	return conn, nil
}
