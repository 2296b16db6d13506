package db

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
)

// mysqlDupEntry is the server error number for a unique key violation.
const mysqlDupEntry = 1062

// IsUniqueViolation reports whether the provided error is a MySQL duplicate
// key violation. When keyName is provided, the helper additionally looks for
// the key name in the error message.
func IsUniqueViolation(err error, keyName string) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number != mysqlDupEntry {
			return false
		}
		if keyName == "" {
			return true
		}
		return strings.Contains(mysqlErr.Message, keyName)
	}
	// Fallback for stores (sqlite in tests) that surface the violation as text.
	msg := err.Error()
	if keyName != "" && !strings.Contains(msg, keyName) {
		return false
	}
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// IsLostConnection reports whether the error indicates a closed or lost
// connection, the one failure class treated as retryable.
func IsLostConnection(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "closed network connection") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "invalid connection")
}

// WrapPersistence translates a storage failure into the typed error the HTTP
// layer renders. Lost connections become retryable dependency failures;
// everything else is an internal error.
func WrapPersistence(err error, message string) *pkgerrors.Error {
	if IsLostConnection(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
