package repositories

import (
	"errors"
	"strings"

	"kiosk/internal/apperr"
	"kiosk/internal/models"

	"gorm.io/gorm"
)

// paginate applies offset and limit to q. A zero limit leaves the query
// unbounded.
func paginate(q *gorm.DB, page models.Page) *gorm.DB {
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern that matches the folded s literally
// anywhere in a folded column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(models.FoldName(s)) + "%"
}

// lookupErr converts a single-record lookup error into the store taxonomy.
func lookupErr(op, kind, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("%s with ID %s not found", kind, id)
	}
	return apperr.FromStore(op, err)
}
