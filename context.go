package thrift

// context is a grammar node: it knows how to emit/consume the delimiters of
// one JSON container level, the separator due before each successive
// element, and whether the next number must be quoted. Three closed variants
// exist — bareContext, pairContext, listContext — dispatched through this
// interface rather than an open class hierarchy, per the contextual grammar
// engine's "polymorphism over context variants" design: the behaviors are a
// small, fixed set of constants and separator/quote rules, not something a
// caller should be able to extend.
type context interface {
	// writeStart ticks parent (a new element begins at its level), then
	// writes this context's own opening delimiter.
	writeStart(trans Transport, parent context) error
	// writeEnd writes this context's closing delimiter.
	writeEnd(trans Transport) error
	// writeNext emits the separator due before the next primitive write
	// inside this context.
	writeNext(trans Transport) error
	// escapeNum reports whether the next written/read number must be
	// quoted as a JSON string in this context (true only in map-key / field-
	// key position, i.e. the slot right before a ':').
	escapeNum() bool

	readStart(r *lookaheadReader, parent context) error
	readEnd(r *lookaheadReader) error
	readNext(r *lookaheadReader) error
}

const (
	objectStart = '{'
	objectEnd   = '}'
	arrayStart  = '['
	arrayEnd    = ']'
	pairSep     = ':'
	elemSep     = ','
)

func writeByte1(trans Transport, b byte) error {
	return trans.Write([]byte{b})
}

// bareContext is the context at the bottom of every stack: it has no
// opening/closing delimiters of its own to emit (nothing is ever pushed
// "onto" it in the normal sense — it only ever plays the role of parent for
// the first real push), never separates, and never quotes numbers.
type bareContext struct{}

func (bareContext) writeStart(trans Transport, parent context) error { return nil }
func (bareContext) writeEnd(trans Transport) error                   { return nil }
func (bareContext) writeNext(trans Transport) error                  { return nil }
func (bareContext) escapeNum() bool                                  { return false }
func (bareContext) readStart(r *lookaheadReader, parent context) error { return nil }
func (bareContext) readEnd(r *lookaheadReader) error                   { return nil }
func (bareContext) readNext(r *lookaheadReader) error                  { return nil }

// pairContext drives the member separators of a JSON object: alternating
// ':' between a key and its value, ',' between successive members, and
// requiring numbers in key position to be quoted.
type pairContext struct {
	first bool
	colon bool
}

func newPairContext() *pairContext {
	return &pairContext{first: true, colon: true}
}

func (c *pairContext) writeStart(trans Transport, parent context) error {
	if err := parent.writeNext(trans); err != nil {
		return err
	}
	return writeByte1(trans, objectStart)
}

func (c *pairContext) writeEnd(trans Transport) error {
	return writeByte1(trans, objectEnd)
}

func (c *pairContext) writeNext(trans Transport) error {
	if c.first {
		c.first = false
		c.colon = true
		return nil
	}
	sep := byte(elemSep)
	if c.colon {
		sep = pairSep
	}
	c.colon = !c.colon
	return writeByte1(trans, sep)
}

func (c *pairContext) escapeNum() bool { return c.colon }

func (c *pairContext) readStart(r *lookaheadReader, parent context) error {
	if err := parent.readNext(r); err != nil {
		return err
	}
	return r.expect(objectStart)
}

func (c *pairContext) readEnd(r *lookaheadReader) error {
	return r.expect(objectEnd)
}

func (c *pairContext) readNext(r *lookaheadReader) error {
	if c.first {
		c.first = false
		c.colon = true
		return nil
	}
	sep := byte(elemSep)
	if c.colon {
		sep = pairSep
	}
	c.colon = !c.colon
	return r.expect(sep)
}

// listContext drives the ',' separator between successive JSON array
// elements. Numbers are never quoted inside a list.
type listContext struct {
	first bool
}

func newListContext() *listContext {
	return &listContext{first: true}
}

func (c *listContext) writeStart(trans Transport, parent context) error {
	if err := parent.writeNext(trans); err != nil {
		return err
	}
	return writeByte1(trans, arrayStart)
}

func (c *listContext) writeEnd(trans Transport) error {
	return writeByte1(trans, arrayEnd)
}

func (c *listContext) writeNext(trans Transport) error {
	if c.first {
		c.first = false
		return nil
	}
	return writeByte1(trans, elemSep)
}

func (c *listContext) escapeNum() bool { return false }

func (c *listContext) readStart(r *lookaheadReader, parent context) error {
	if err := parent.readNext(r); err != nil {
		return err
	}
	return r.expect(arrayStart)
}

func (c *listContext) readEnd(r *lookaheadReader) error {
	return r.expect(arrayEnd)
}

func (c *listContext) readNext(r *lookaheadReader) error {
	if c.first {
		c.first = false
		return nil
	}
	return r.expect(elemSep)
}
