package service

import (
	"talentbridge_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnsProject is the single ownership check used by every project-mutating
// entry point: the listing creator and the owning company account both count.
func OwnsProject(project *model.Project, userID uint) bool {
	if userID == 0 {
		return false
	}
	return project.CreatedBy == userID || project.CompanyID == userID
}

// lockForUpdate takes a row lock so concurrent shift/reindex passes on the
// same project serialize. SQLite (used in tests) has no row locks; its
// single-writer transactions already serialize.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
