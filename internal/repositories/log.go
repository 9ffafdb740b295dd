package repositories

import (
	"strings"

	"github.com/li812/face-bank/internal/logger"
)

// logQuery logs a query on a single line together with its outcome.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
