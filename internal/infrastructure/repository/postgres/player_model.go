package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID          int64         `db:"id"`
	PublicID    string        `db:"public_id"`
	ClubID      string        `db:"club_id"`
	Name        string        `db:"name"`
	SquadNumber sql.NullInt64 `db:"squad_number"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
	DeletedAt   *time.Time    `db:"deleted_at"`
}
