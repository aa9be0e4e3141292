package storage

import (
	"time"

	"github.com/careerhq/career-platform/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// Cursor marks a position in a created_at DESC, id DESC listing.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}
