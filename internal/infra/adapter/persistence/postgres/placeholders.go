// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"
)

// int64Placeholders builds a numbered placeholder list ($1, $2, ...) and the
// matching argument slice for an IN clause. start is the first placeholder
// number to use.
func int64Placeholders(start int, ids []int64) (string, []interface{}) {
	holders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		holders[i] = fmt.Sprintf("$%d", start+i)
		args[i] = id
	}
	return strings.Join(holders, ", "), args
}
