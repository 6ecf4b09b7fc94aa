package firestore

import (
	"slices"
	"strings"
	"time"
)

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		if t := strings.TrimSpace(value); t != "" {
			trimmed = append(trimmed, t)
		} else {
			trimmed = append(trimmed, "")
		}
	}
	return slices.Clone(trimmed)
}

func chooseTime(primary time.Time, fallback time.Time) time.Time {
	if !primary.IsZero() {
		return primary.UTC()
	}
	if !fallback.IsZero() {
		return fallback.UTC()
	}
	return time.Time{}
}

func normalizeTimePointer(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	if value.IsZero() {
		return nil
	}
	ts := value.UTC()
	return &ts
}

func userDocPath(userID string) string {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "/users/") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "users/") {
		return "/" + trimmed
	}
	return "/users/" + trimmed
}

func extractOwner(ownerRef string, ownerUID string) string {
	if trimmed := strings.TrimSpace(ownerUID); trimmed != "" {
		return trimmed
	}
	ref := strings.TrimSpace(ownerRef)
	ref = strings.TrimPrefix(ref, "/")
	const prefix = "users/"
	if strings.HasPrefix(ref, prefix) {
		return ref[len(prefix):]
	}
	return ref
}
