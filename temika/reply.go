package temika

import (
	"strconv"
	"strings"
)

// Contract tokens of the instrument protocol. Command completion is inferred
// purely from these literal substrings appearing in the reply stream; there is
// no framing and no structural parser on the client side.
const (
	// TokenDone terminates motion commands issued with a wait_moving_end
	// fragment.
	TokenDone = "Done"

	// TokenStatus terminates status queries. Scalar replies carry their value
	// after the "status " marker.
	TokenStatus = "status"

	// TokenFault signals an instrument fault requiring human intervention.
	TokenFault = "ERROR"
)

// statusMarker locates the scalar value inside a status reply.
const statusMarker = TokenStatus + " "

// ParseStatus extracts the scalar value from a status reply.
//
// The value is the first whitespace-delimited token following the literal
// "status " marker. The second return value reports whether the marker was
// found and the token parsed as a float; a miss is a parse miss, not an error.
func ParseStatus(reply string) (float64, bool) {
	idx := strings.Index(reply, statusMarker)
	if idx < 0 {
		return 0, false
	}

	fields := strings.Fields(reply[idx+len(statusMarker):])
	if len(fields) == 0 {
		return 0, false
	}

	val, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}

	return val, true
}
