package command

import (
	"fmt"
	"strings"

	"github.com/zuhaib786/FerroDB/internal/protocol/resp"
)

// formatReply renders a RESP reply as text for the terminal.
func formatReply(r resp.Reply) string {
	switch r.Kind {
	case resp.KindSimpleString:
		return r.Str
	case resp.KindError:
		return fmt.Sprintf("(error) %s %s", r.ErrPfx, r.ErrMsg)
	case resp.KindInteger:
		return fmt.Sprintf("(integer) %d", r.Int)
	case resp.KindBulk:
		return string(r.Bulk)
	case resp.KindNullBulk, resp.KindNullArray:
		return "(nil)"
	case resp.KindArray:
		if len(r.Array) == 0 {
			return "(empty array)"
		}
		lines := make([]string, len(r.Array))
		for i, elem := range r.Array {
			lines[i] = fmt.Sprintf("%d) %s", i+1, formatReply(elem))
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}

// replyErr converts a RESP error reply into a Go error, or returns nil for
// any other reply kind.
func replyErr(r resp.Reply) error {
	if r.Kind != resp.KindError {
		return nil
	}
	return fmt.Errorf("%s %s", r.ErrPfx, r.ErrMsg)
}
