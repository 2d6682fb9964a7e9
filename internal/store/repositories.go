package store

import "github.com/avolkov/core-admin/internal/logger"

// Storages bundles every repository behind the persistence port. Services
// receive the whole bundle and pick the repositories they need.
type Storages struct {
	UserRepository  UserRepository
	MenuRepository  MenuRepository
	GrantRepository GrantRepository
	AuditRepository AuditRepository
}

// NewStorages wires all repositories to the shared database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, logger),
		MenuRepository:  NewMenuRepository(db, logger),
		GrantRepository: NewGrantRepository(db, logger),
		AuditRepository: NewAuditRepository(db, logger),
	}
}
