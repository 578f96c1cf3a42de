package postgres

import "regexp"

// violatesFK is the fragment PostgreSQL includes in foreign key violation messages.
const violatesFK = "violates foreign key constraint"

var (
	// These errors originate from the std lib database/sql package.
	//
	// Cf., https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go
	errSQLScan = regexp.MustCompile(`sql: expected \d+ destination arguments in Scan, not \d+`)

	// errSQLSyntax is a loose aggregation of error codes originating from PostgreSQL itself
	// that are some sort of syntax issue in the statement or datatype mismatch.
	//
	// Cf., https://www.postgresql.org/docs/current/errcodes-appendix.html
	errSQLSyntax = regexp.MustCompile(`SQLSTATE (42601|22P02)`)

	errConstraintViolation = regexp.MustCompile(`SQLSTATE (23502)`)
	errUniqViolation       = regexp.MustCompile(`SQLSTATE (23505)`)
)
