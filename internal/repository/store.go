package repository

import (
	"context"

	"gorm.io/gorm"
)

// DefaultListLimit is the page size used when the caller does not give one.
const DefaultListLimit = 100

// Page is offset pagination applied after filtering and ordering.
// A zero Limit means the default unless LimitSet is true, in which case no rows are returned.
type Page struct {
	Skip     int
	Limit    int
	LimitSet bool
}

// Empty reports whether the caller explicitly asked for zero rows.
func (p Page) Empty() bool {
	return p.LimitSet && p.Limit <= 0
}

// WithDefault fills in limit when the caller gave none.
func (p Page) WithDefault(limit int) Page {
	if p.Limit <= 0 && !p.LimitSet {
		p.Limit = limit
	}
	return p
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	skip := p.Skip
	if skip < 0 {
		skip = 0
	}
	return db.Offset(skip).Limit(limit)
}

// Store groups the entity repositories so a unit of work can span several of them.
type Store interface {
	Users() UserRepository
	Zones() ZoneRepository
	Sources() SourceRepository
	Indicators() IndicatorRepository
	// WithTransaction executes fn within a database transaction. Repositories obtained
	// from tx share the transaction; fn returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed store.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Users() UserRepository           { return NewUserRepository(s.db) }
func (s *store) Zones() ZoneRepository           { return NewZoneRepository(s.db) }
func (s *store) Sources() SourceRepository       { return NewSourceRepository(s.db) }
func (s *store) Indicators() IndicatorRepository { return NewIndicatorRepository(s.db) }

// WithTransaction executes a function within a database transaction.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &store{db: tx})
	})
}

// deleteByID removes a row by primary key, reporting gorm.ErrRecordNotFound when nothing matched.
func deleteByID(ctx context.Context, db *gorm.DB, value interface{}, id uint) error {
	res := db.WithContext(ctx).Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
