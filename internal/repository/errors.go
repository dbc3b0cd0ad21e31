// Package repository holds the SQL access layer. Every repository wraps a
// *sql.DB and speaks the placeholder dialect shared by SQLite and MySQL.
//
// The sentinel errors below let higher layers such as handlers tell a
// missing row apart from a storage failure. Storage failures are wrapped
// with %w and otherwise passed through untouched.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// Not-found sentinels. Handlers translate these into HTTP 404 responses.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrGateNotFound          = errors.New("gate not found")
	ErrSightingNotFound      = errors.New("sighting not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
)

// ErrEmailExists is returned by UserRepo.Create when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// isUniqueViolation reports whether err is a unique-key violation from
// either supported driver.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062 // ER_DUP_ENTRY
	}
	return false
}
