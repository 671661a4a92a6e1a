// cmd/migrate/main.go
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"card-advisor/internal/catalog"
	"card-advisor/internal/config"
	"card-advisor/internal/merchants"
	"card-advisor/internal/storage/postgres"
)

func main() {
	seedPath := flag.String("seed", "", "YAML file of known merchants to upsert after migrating")
	dir := flag.String("dir", "migrations", "migrations directory, relative to the working directory")
	flag.Parse()

	cfg := config.MustLoad()

	db, err := sql.Open("pgx", cfg.DBConn)
	if err != nil {
		slog.Error("Не удалось открыть БД", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		slog.Error("Не удалось получить рабочую директорию", "error", err)
		os.Exit(1)
	}
	migrationsDir := filepath.Join(wd, *dir)

	slog.Info("Применяем миграции", "dir", migrationsDir)
	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Не удалось выбрать диалект", "error", err)
		os.Exit(1)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		slog.Error("Миграции завершились с ошибкой", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Миграции применены")

	if *seedPath != "" {
		if err := seed(context.Background(), cfg.DBConn, *seedPath); err != nil {
			slog.Error("Не удалось загрузить мерчантов", "error", err)
			os.Exit(1)
		}
	}
}

func seed(ctx context.Context, dsn, path string) error {
	rows, err := merchants.LoadSeedFile(path)
	if err != nil {
		return err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewStorage(pool)
	cat := catalog.Default()
	var n int
	for _, m := range rows {
		if !cat.Known(m.CategoryID) {
			slog.Warn("Пропускаем мерчанта с неизвестной категорией", "name", m.Name, "category", m.CategoryID)
			continue
		}
		if err := store.UpsertMerchant(ctx, m); err != nil {
			return err
		}
		n++
	}
	slog.Info("✅ Мерчанты загружены", "count", n, "file", path)
	return nil
}
