package thrift

// contextStack is a LIFO of contexts tracking the current syntactic nesting
// of one JSON stream. Its top always reflects the innermost currently open
// container. push ticks the previous top (via writeStart/readStart) and
// installs the new context; pop closes the current context and restores
// whatever was beneath it.
//
// Each stack owns a Transport (write side) and a lookaheadReader (read
// side); the RPC protocol keeps two independent stacks — one bound to the
// live transport, one bound to the in-memory scratch buffer — rather than
// rebinding a single stack's transport mid-stream.
type contextStack struct {
	trans   Transport
	reader  *lookaheadReader
	top     context
	parents []context
}

func newContextStack(trans Transport) *contextStack {
	return &contextStack{
		trans:  trans,
		reader: newLookaheadReader(trans),
		top:    bareContext{},
	}
}

func (s *contextStack) pushWrite(c context) error {
	if err := c.writeStart(s.trans, s.top); err != nil {
		return err
	}
	s.parents = append(s.parents, s.top)
	s.top = c
	return nil
}

func (s *contextStack) pushRead(c context) error {
	if err := c.readStart(s.reader, s.top); err != nil {
		return err
	}
	s.parents = append(s.parents, s.top)
	s.top = c
	return nil
}

func (s *contextStack) popWrite() error {
	if err := s.top.writeEnd(s.trans); err != nil {
		return err
	}
	s.restore()
	return nil
}

func (s *contextStack) popRead() error {
	if err := s.top.readEnd(s.reader); err != nil {
		return err
	}
	s.restore()
	return nil
}

func (s *contextStack) restore() {
	n := len(s.parents)
	s.top = s.parents[n-1]
	s.parents = s.parents[:n-1]
}

// depth returns the number of contexts pushed beyond the root. A correctly
// closed message leaves depth at 0.
func (s *contextStack) depth() int {
	return len(s.parents)
}
