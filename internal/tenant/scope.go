package tenant

import (
	"time"

	"gorm.io/gorm"
)

// Scope restricts a query to one company. An empty companyID leaves the query
// unscoped, which only cross-tenant jobs should rely on.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == "" {
			return db
		}
		return db.Where("company_id = ?", companyID)
	}
}

func Employee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// Window keeps rows whose column falls in the half-open range [from, to).
func Window(column string, from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" < ?", from, to)
	}
}

// ScopeOrUnassigned is Scope that also keeps rows with no company_id. Use it
// only once the owning employee has been checked against companyID.
func ScopeOrUnassigned(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == "" {
			return db
		}
		return db.Where("(company_id = ? OR company_id IS NULL)", companyID)
	}
}
