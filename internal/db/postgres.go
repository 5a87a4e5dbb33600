package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/models"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(url string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelError,
		)
	}

	// * Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// * Verify connection
	if err := db.Ping(); err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelError,
		)
	}

	logger.Info("connected to database successfully 🎉")
	return &PostgresDB{db: db}, nil
}

func (p *PostgresDB) Migrate(source string) error {
	driver, err := postgres.WithInstance(p.db, &postgres.Config{})
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelError,
		)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration instance",
			"Could not create migration instance with database",
			err,
			errors.LevelError,
		)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresDB) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

func (p *PostgresDB) InsertContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	row := p.db.QueryRowContext(ctx, query, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		return errors.New(
			"DB_CONTACT_ERROR",
			"Failed to store contact message",
			fmt.Sprintf("Could not insert contact message from '%s'", msg.Email),
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresDB) GetContactMessage(ctx context.Context, id string) (*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, created_at, notified_at
		FROM contact_messages
		WHERE id = $1
	`

	msg, err := scanContactMessage(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New(
				errors.RefContactNotFound,
				"Contact message not found",
				fmt.Sprintf("Contact message '%s' does not exist", id),
				err,
				errors.LevelInfo,
			)
		}
		return nil, errors.New(
			"DB_CONTACT_ERROR",
			"Failed to fetch contact message",
			fmt.Sprintf("Could not fetch contact message '%s'", id),
			err,
			errors.LevelError,
		)
	}

	return msg, nil
}

func (p *PostgresDB) MarkContactMessageNotified(ctx context.Context, id string, at time.Time) error {
	res, err := p.db.ExecContext(ctx, `UPDATE contact_messages SET notified_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return errors.New(
			"DB_CONTACT_ERROR",
			"Failed to update contact message",
			fmt.Sprintf("Could not mark contact message '%s' as notified", id),
			err,
			errors.LevelError,
		)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.New(
			errors.RefContactNotFound,
			"Contact message not found",
			fmt.Sprintf("Contact message '%s' does not exist", id),
			nil,
			errors.LevelInfo,
		)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContactMessage(row rowScanner) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	var notified sql.NullTime

	err := row.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.CreatedAt, &notified)
	if err != nil {
		return nil, err
	}

	if notified.Valid {
		msg.NotifiedAt = &notified.Time
	}
	return &msg, nil
}
