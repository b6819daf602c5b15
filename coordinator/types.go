package coordinator

import (
	"errors"
	"strconv"
	"strings"
)

// User is one registered participant. IDs are sequential, zero-based and
// immutable once assigned; users are never removed.
type User struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

// Stats pairs the active session's predictions with the archive accumulated
// across all previously stopped sessions. JSON field names match the admin
// stat wire format.
type Stats struct {
	Current    map[int]string `json:"Current"`
	Historical map[int]string `json:"Old"`
}

// Rejection causes surfaced by coordinator operations. The transport layer
// collapses all of them into a generic rejection status; they are kept
// distinct so logs and tests can tell them apart.
var (
	ErrInvalidSecret   = errors.New("secret rejected")
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionActive   = errors.New("session already active")
	ErrUnknownUser     = errors.New("unknown user")
)

// renderPredictions joins a prediction list into its textual wire form:
// each value followed by a single space, so [3 1 4] renders as "3 1 4 ".
func renderPredictions(preds []int) string {
	var sb strings.Builder
	for _, p := range preds {
		sb.WriteString(strconv.Itoa(p))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func renderAll(preds map[int][]int) map[int]string {
	out := make(map[int]string, len(preds))
	for id, seq := range preds {
		out[id] = renderPredictions(seq)
	}
	return out
}
