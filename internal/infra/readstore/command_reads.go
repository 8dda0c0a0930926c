package readstore

import (
	"promo-slot-engine/internal/infra/db"
	"promo-slot-engine/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// CommandReads serves the write side's validation lookups. It runs over
// whatever DBTX it is given, so the unit of work can rebind it to an open
// transaction for reads that must see uncommitted writes.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

var _ shared.CommandReads = (*CommandReads)(nil)
