package resp

import (
	"bufio"
	"bytes"
	"strconv"
)

// Kind identifies which RESP reply variant a Reply holds.
type Kind int

const (
	KindSimpleString Kind = iota
	KindError
	KindInteger
	KindBulk
	KindNullBulk
	KindArray
	KindNullArray
)

// Reply is a RESP reply tree. Leaf kinds (SimpleString/Error/Integer/Bulk)
// carry their payload directly; Array carries nested Replies, so a single
// Reply value can represent anything from `+OK\r\n` to a multi-element
// array such as the flat member/score list `ZRANGE ... WITHSCORES` returns.
type Reply struct {
	Kind    Kind
	Str     string  // SimpleString payload
	ErrPfx  string  // Error prefix, e.g. "ERR" or "WRONGTYPE"
	ErrMsg  string  // Error message
	Int     int64   // Integer payload
	Bulk    []byte  // Bulk payload
	Array   []Reply // Array elements
}

// OK is the canonical `+OK\r\n` reply.
var OK = Reply{Kind: KindSimpleString, Str: "OK"}

// SimpleString builds a `+...\r\n` reply.
func SimpleString(s string) Reply { return Reply{Kind: KindSimpleString, Str: s} }

// Error builds a `-PREFIX message\r\n` reply.
func Error(prefix, msg string) Reply { return Reply{Kind: KindError, ErrPfx: prefix, ErrMsg: msg} }

// Integer builds a `:N\r\n` reply.
func Integer(n int64) Reply { return Reply{Kind: KindInteger, Int: n} }

// Bulk builds a `$len\r\n...\r\n` reply. A nil slice is encoded as the same
// non-null bulk string of length zero; use NullBulk for `$-1\r\n`.
func Bulk(b []byte) Reply { return Reply{Kind: KindBulk, Bulk: b} }

// BulkString is a convenience wrapper around Bulk for string payloads.
func BulkString(s string) Reply { return Reply{Kind: KindBulk, Bulk: []byte(s)} }

// NullBulk is the `$-1\r\n` reply, used when a key or element is missing.
var NullBulk = Reply{Kind: KindNullBulk}

// Array builds a `*len\r\n...` reply from already-built elements.
func Array(elems []Reply) Reply { return Reply{Kind: KindArray, Array: elems} }

// NullArray is the `*-1\r\n` reply.
var NullArray = Reply{Kind: KindNullArray}

// BulkStringArray is a convenience wrapper for the common case of an array
// of bulk strings (e.g. LRANGE, SMEMBERS).
func BulkStringArray(items []string) Reply {
	elems := make([]Reply, len(items))
	for i, s := range items {
		elems[i] = BulkString(s)
	}
	return Array(elems)
}

// Encode writes the reply to w in RESP wire format.
func (r Reply) Encode(w *bufio.Writer) error {
	switch r.Kind {
	case KindSimpleString:
		if _, err := w.WriteString("+" + r.Str + "\r\n"); err != nil {
			return err
		}
	case KindError:
		if _, err := w.WriteString("-" + r.ErrPfx + " " + r.ErrMsg + "\r\n"); err != nil {
			return err
		}
	case KindInteger:
		if _, err := w.WriteString(":" + strconv.FormatInt(r.Int, 10) + "\r\n"); err != nil {
			return err
		}
	case KindBulk:
		if _, err := w.WriteString("$" + strconv.Itoa(len(r.Bulk)) + "\r\n"); err != nil {
			return err
		}
		if _, err := w.Write(r.Bulk); err != nil {
			return err
		}
		if _, err := w.WriteString("\r\n"); err != nil {
			return err
		}
	case KindNullBulk:
		if _, err := w.WriteString("$-1\r\n"); err != nil {
			return err
		}
	case KindArray:
		if _, err := w.WriteString("*" + strconv.Itoa(len(r.Array)) + "\r\n"); err != nil {
			return err
		}
		for _, elem := range r.Array {
			if err := elem.Encode(w); err != nil {
				return err
			}
		}
	case KindNullArray:
		if _, err := w.WriteString("*-1\r\n"); err != nil {
			return err
		}
	}
	return nil
}

// EncodeCommand renders args as a RESP array of bulk strings — the wire
// form the AOF uses to log mutating commands and a RESP client uses to send
// requests.
func EncodeCommand(w *bufio.Writer, args [][]byte) error {
	if _, err := w.WriteString("*" + strconv.Itoa(len(args)) + "\r\n"); err != nil {
		return err
	}
	for _, a := range args {
		if _, err := w.WriteString("$" + strconv.Itoa(len(a)) + "\r\n"); err != nil {
			return err
		}
		if _, err := w.Write(a); err != nil {
			return err
		}
		if _, err := w.WriteString("\r\n"); err != nil {
			return err
		}
	}
	return nil
}

// EncodeCommandBytes is a convenience for callers that want the encoded
// bytes directly rather than writing to a *bufio.Writer (e.g. computing an
// AOF entry's size before appending it to a buffer).
func EncodeCommandBytes(args [][]byte) []byte {
	buf := &bytes.Buffer{}
	bw := bufio.NewWriter(buf)
	_ = EncodeCommand(bw, args)
	_ = bw.Flush()
	return buf.Bytes()
}

// ReadReply reads one reply from r — the client-side counterpart to
// Encode, used by the CLI to parse what the server sends back.
func ReadReply(r *bufio.Reader) (Reply, error) {
	line, err := readLine(r, MaxInlineLen)
	if err != nil {
		return Reply{}, err
	}
	if len(line) == 0 {
		return Reply{}, ErrProtocol
	}

	switch line[0] {
	case '+':
		return SimpleString(string(line[1:])), nil
	case '-':
		prefix, msg := string(line[1:]), ""
		if idx := bytes.IndexByte(line[1:], ' '); idx >= 0 {
			prefix, msg = string(line[1:1+idx]), string(line[2+idx:])
		}
		return Error(prefix, msg), nil
	case ':':
		n, err := parseInt(line[1:])
		if err != nil {
			return Reply{}, err
		}
		return Integer(n), nil
	case '$':
		n, err := parseInt(line[1:])
		if err != nil {
			return Reply{}, err
		}
		if n < 0 {
			return NullBulk, nil
		}
		if n > MaxBulkLen {
			return Reply{}, ErrLimitExceeded
		}
		buf := make([]byte, n+2)
		if _, err := readFull(r, buf); err != nil {
			return Reply{}, err
		}
		if buf[n] != '\r' || buf[n+1] != '\n' {
			return Reply{}, ErrProtocol
		}
		return Bulk(buf[:n]), nil
	case '*':
		n, err := parseInt(line[1:])
		if err != nil {
			return Reply{}, err
		}
		if n < 0 {
			return NullArray, nil
		}
		if n > MaxArrayLen {
			return Reply{}, ErrLimitExceeded
		}
		elems := make([]Reply, n)
		for i := int64(0); i < n; i++ {
			elem, err := ReadReply(r)
			if err != nil {
				return Reply{}, err
			}
			elems[i] = elem
		}
		return Array(elems), nil
	default:
		return Reply{}, ErrProtocol
	}
}
