package thrift

// lookaheadReader is a one-byte peek buffer over a Transport's read side.
// The JSON grammar only ever needs one byte of lookahead (to tell whether a
// struct's field list has ended, or whether a double/number is quoted), so
// a single buffered byte plus a flag is all the state this needs.
type lookaheadReader struct {
	trans   Transport
	pending byte
	hasByte bool
}

func newLookaheadReader(trans Transport) *lookaheadReader {
	return &lookaheadReader{trans: trans}
}

// read consumes and returns the next byte, pulling from the transport if
// nothing is buffered.
func (r *lookaheadReader) read() (byte, error) {
	if r.hasByte {
		r.hasByte = false
		return r.pending, nil
	}
	b, err := r.trans.ReadAll(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// peek returns the next byte without consuming it, buffering it for the
// following read/peek call.
func (r *lookaheadReader) peek() (byte, error) {
	if !r.hasByte {
		b, err := r.trans.ReadAll(1)
		if err != nil {
			return 0, err
		}
		r.pending = b[0]
		r.hasByte = true
	}
	return r.pending, nil
}

// expect reads one byte and fails with InvalidData if it isn't want.
func (r *lookaheadReader) expect(want byte) error {
	got, err := r.read()
	if err != nil {
		return err
	}
	if got != want {
		return errInvalidData("expected %q; got %q", want, got)
	}
	return nil
}
