package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateFormat = time.DateOnly

// Cursor identifies the last row of a page. TransactionID breaks ties between
// rows sharing a date and sequence.
type Cursor struct {
	TransactionDate time.Time
	Sequence        int64
	TransactionID   string
}

// EncodeToken creates a base64 encoded cursor from the last row of a page.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%d|%s", c.TransactionDate.Format(dateFormat), c.Sequence, c.TransactionID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	transactionDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (transaction date parse): %w", err)
	}

	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}

	if parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (missing transaction id)")
	}

	return Cursor{TransactionDate: transactionDate, Sequence: sequence, TransactionID: parts[2]}, nil
}
