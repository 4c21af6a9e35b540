package sqlstore

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockingClause 行锁(SELECT ... FOR UPDATE)
// sqlite没有行锁语法,写事务本身就是串行的,直接跳过
func lockingClause(db *gorm.DB) []clause.Expression {
	if db.Dialector.Name() == "sqlite" {
		return nil
	}
	return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
}
