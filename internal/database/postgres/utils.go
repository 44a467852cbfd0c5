package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. Services check uniqueness explicitly before inserting; the
// constraint is the backstop for races, so its violation still has to map
// to the same typed error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// textToStr converts a nullable pgtype.Text to a plain string
func textToStr(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// strToText converts a string to pgtype.Text, mapping "" to NULL
func strToText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// int4ToPtr converts a nullable pgtype.Int4 to *int
func int4ToPtr(n pgtype.Int4) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}

// ptrToInt4 converts *int to pgtype.Int4, mapping nil to NULL
func ptrToInt4(p *int) pgtype.Int4 {
	if p == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*p), Valid: true}
}
