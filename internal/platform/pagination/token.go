package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Cursor pins a list position to the creation timestamp and document id of
// the last item served. Firestore listings order by createdAt with the
// document id as tie-breaker, so the pair restarts a query exactly where the
// previous page ended.
type Cursor struct {
	CreatedAt time.Time
	DocID     string
}

// EncodeToken serialises the cursor into a base64 URL-safe page token.
func EncodeToken(cursor Cursor) string {
	if cursor.DocID == "" {
		return ""
	}
	payload := fmt.Sprintf("%s|%s", cursor.CreatedAt.UTC().Format(time.RFC3339Nano), cursor.DocID)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// DecodeToken parses the page token produced by EncodeToken back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Cursor{}, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("%w: malformed cursor", ErrInvalidPageToken)
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	return Cursor{CreatedAt: ts.UTC(), DocID: parts[1]}, nil
}
