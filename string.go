package thrift

import "unicode/utf8"

// escapeTable mirrors the teacher's original kJSONCharTable exactly: it
// covers the 0x30 bytes below '0' that need special handling when written
// inside a JSON string.
//   0    -> escape as "\u00XX"
//   1    -> write verbatim
//   other -> write "\" followed by that byte
var escapeTable = [0x30]byte{
	0x00: 0, 0x01: 0, 0x02: 0, 0x03: 0, 0x04: 0, 0x05: 0, 0x06: 0, 0x07: 0,
	0x08: 'b', 0x09: 't', 0x0a: 'n', 0x0b: 0, 0x0c: 'f', 0x0d: 'r', 0x0e: 0, 0x0f: 0,
	0x10: 0, 0x11: 0, 0x12: 0, 0x13: 0, 0x14: 0, 0x15: 0, 0x16: 0, 0x17: 0,
	0x18: 0, 0x19: 0, 0x1a: 0, 0x1b: 0, 0x1c: 0, 0x1d: 0, 0x1e: 0, 0x1f: 0,
	0x20: 1, 0x21: 1, 0x22: '"', 0x23: 1, 0x24: 1, 0x25: 1, 0x26: 1, 0x27: 1,
	0x28: 1, 0x29: 1, 0x2a: 1, 0x2b: 1, 0x2c: 1, 0x2d: 1, 0x2e: 1, 0x2f: 1,
}

const hexDigits = "0123456789abcdef"

// escapeChars/escapeCharVals decode the single-character escapes accepted
// after a backslash: '"', '\\', 'b', 'f', 'n', 'r', 't'.
const escapeChars = "\"\\bfnrt"

var escapeCharVals = [len(escapeChars)]byte{'"', '\\', '\b', '\f', '\n', '\r', '\t'}

func writeEscapeUnicode(trans Transport, ch byte) error {
	buf := [6]byte{'\\', 'u', '0', '0', hexDigits[ch>>4], hexDigits[ch&0x0f]}
	return trans.Write(buf[:])
}

// writeStringChar writes a single byte of a string payload, escaping it per
// escapeTable and the '\' doubling rule.
func writeStringChar(trans Transport, ch byte) error {
	if ch >= 0x30 {
		if ch == '\\' {
			return trans.Write([]byte{'\\', '\\'})
		}
		return trans.Write([]byte{ch})
	}
	switch out := escapeTable[ch]; {
	case out == 1:
		return trans.Write([]byte{ch})
	case out > 1:
		return trans.Write([]byte{'\\', out})
	default:
		return writeEscapeUnicode(trans, ch)
	}
}

// writeString writes str as a quoted, escaped JSON string in the active
// context, ticking the context's separator first.
func writeString(s *contextStack, str string) error {
	if err := s.top.writeNext(s.trans); err != nil {
		return err
	}
	if err := writeByte1(s.trans, '"'); err != nil {
		return err
	}
	for i := 0; i < len(str); i++ {
		if err := writeStringChar(s.trans, str[i]); err != nil {
			return err
		}
	}
	return writeByte1(s.trans, '"')
}

func writeTypeTag(s *contextStack, t Type) error {
	name, err := t.jsonName()
	if err != nil {
		return err
	}
	return writeString(s, name)
}

// readString reads a quoted, escaped JSON string from the active context,
// ticking the context's separator first. Escape sequences are unescaped;
// \uXXXX sequences are interpreted as UTF-16 code units, with surrogate
// pairs recombined into a single rune before being appended as UTF-8.
func readString(s *contextStack) (string, error) {
	if err := s.top.readNext(s.reader); err != nil {
		return "", err
	}
	return readStringNoContext(s.reader)
}

// readStringNoContext reads a quoted string without first ticking any
// context's separator — used when the context tick already happened
// (readDouble peeks ahead before deciding), matching the teacher's
// readString(str, skipContext) parameter.
func readStringNoContext(r *lookaheadReader) (string, error) {
	if err := r.expect('"'); err != nil {
		return "", err
	}
	var out []byte
	var pendingHigh rune
	havePendingHigh := false
	for {
		ch, err := r.read()
		if err != nil {
			return "", err
		}
		if ch == '"' {
			break
		}
		if ch == '\\' {
			esc, err := r.read()
			if err != nil {
				return "", err
			}
			if esc == 'u' {
				unit, err := readHex4(r)
				if err != nil {
					return "", err
				}
				switch {
				case unit >= 0xD800 && unit <= 0xDBFF:
					if havePendingHigh {
						return "", errInvalidData("missing low surrogate")
					}
					pendingHigh = rune(unit)
					havePendingHigh = true
					continue
				case unit >= 0xDC00 && unit <= 0xDFFF:
					if !havePendingHigh {
						return "", errInvalidData("missing high surrogate")
					}
					r := decodeSurrogatePair(pendingHigh, rune(unit))
					out = appendRune(out, r)
					havePendingHigh = false
					continue
				default:
					if havePendingHigh {
						return "", errInvalidData("missing low surrogate")
					}
					out = appendRune(out, rune(unit))
					continue
				}
			}
			idx := indexByte(escapeChars, esc)
			if idx < 0 {
				return "", errInvalidData("unknown escape character %q", esc)
			}
			ch = escapeCharVals[idx]
		}
		if havePendingHigh {
			return "", errInvalidData("missing low surrogate")
		}
		out = append(out, ch)
	}
	if havePendingHigh {
		return "", errInvalidData("missing low surrogate")
	}
	return string(out), nil
}

func readTypeTag(s *contextStack) (Type, error) {
	name, err := readString(s)
	if err != nil {
		return StopType, err
	}
	return typeFromJSONName(name)
}

func readHex4(r *lookaheadReader) (uint16, error) {
	var v uint16
	for i := 0; i < 4; i++ {
		ch, err := r.read()
		if err != nil {
			return 0, err
		}
		d, err := hexVal(ch)
		if err != nil {
			return 0, err
		}
		v = v<<4 | uint16(d)
	}
	return v, nil
}

func hexVal(ch byte) (byte, error) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', nil
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, nil
	default:
		return 0, errInvalidData("expected hex digit; got %q", ch)
	}
}

func decodeSurrogatePair(high, low rune) rune {
	return ((high - 0xD800) << 10) + (low - 0xDC00) + 0x10000
}

func appendRune(buf []byte, r rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
