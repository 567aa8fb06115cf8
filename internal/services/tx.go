package services

import (
	"database/sql"

	"gorm.io/gorm"
)

// Transactor runs a function inside one database transaction; the workflow
// commits only if the function returns nil. *gorm.DB satisfies it.
type Transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
