package thrift

import "testing"

func TestPairContextWriteSeparators(t *testing.T) {
	trans := NewMemoryTransport()
	outer := bareContext{}
	c := newPairContext()
	if err := c.writeStart(trans, outer); err != nil {
		t.Fatalf("writeStart: %v", err)
	}
	// key 1
	if c.escapeNum() != true {
		t.Errorf("escapeNum() before first key = false, want true")
	}
	if err := c.writeNext(trans); err != nil { // first call: no separator
		t.Fatalf("writeNext: %v", err)
	}
	if c.escapeNum() != true {
		t.Errorf("escapeNum() after first tick (first key position) = false, want true")
	}
	if err := c.writeNext(trans); err != nil { // ':'
		t.Fatalf("writeNext: %v", err)
	}
	if c.escapeNum() != false {
		t.Errorf("escapeNum() after ':' (value position) = true, want false")
	}
	if err := c.writeNext(trans); err != nil { // ','
		t.Fatalf("writeNext: %v", err)
	}
	if err := c.writeEnd(trans); err != nil {
		t.Fatalf("writeEnd: %v", err)
	}
	got := string(trans.Bytes())
	want := "{:,}"
	if got != want {
		t.Errorf("pair separators = %q, want %q", got, want)
	}
}

func TestListContextWriteSeparators(t *testing.T) {
	trans := NewMemoryTransport()
	outer := bareContext{}
	c := newListContext()
	if err := c.writeStart(trans, outer); err != nil {
		t.Fatalf("writeStart: %v", err)
	}
	if c.escapeNum() {
		t.Errorf("list context escapeNum() = true, want false")
	}
	c.writeNext(trans) // first: nothing
	c.writeNext(trans) // ','
	c.writeNext(trans) // ','
	c.writeEnd(trans)
	got := string(trans.Bytes())
	want := "[,,]"
	if got != want {
		t.Errorf("list separators = %q, want %q", got, want)
	}
}

func TestBareContextNeverEmits(t *testing.T) {
	trans := NewMemoryTransport()
	var c bareContext
	c.writeStart(trans, bareContext{})
	c.writeNext(trans)
	c.writeEnd(trans)
	if len(trans.Bytes()) != 0 {
		t.Errorf("bareContext emitted %q, want nothing", trans.Bytes())
	}
}

func TestPairContextReadMismatchFails(t *testing.T) {
	trans := NewMemoryTransport()
	trans.Write([]byte("{X"))
	r := newLookaheadReader(trans)
	c := newPairContext()
	if err := c.readStart(r, bareContext{}); err != nil {
		t.Fatalf("readStart: %v", err)
	}
	c.readNext(r) // first tick: consumes nothing
	err := c.readNext(r)
	if !Is(err, InvalidData) {
		t.Errorf("readNext() err = %v, want InvalidData", err)
	}
}

func TestContextStackDepth(t *testing.T) {
	trans := NewMemoryTransport()
	s := newContextStack(trans)
	if s.depth() != 0 {
		t.Fatalf("fresh stack depth = %d, want 0", s.depth())
	}
	if err := s.pushWrite(newListContext()); err != nil {
		t.Fatalf("pushWrite: %v", err)
	}
	if s.depth() != 1 {
		t.Errorf("depth after push = %d, want 1", s.depth())
	}
	if err := s.pushWrite(newPairContext()); err != nil {
		t.Fatalf("pushWrite: %v", err)
	}
	if s.depth() != 2 {
		t.Errorf("depth after nested push = %d, want 2", s.depth())
	}
	if err := s.popWrite(); err != nil {
		t.Fatalf("popWrite: %v", err)
	}
	if err := s.popWrite(); err != nil {
		t.Fatalf("popWrite: %v", err)
	}
	if s.depth() != 0 {
		t.Errorf("depth after unwind = %d, want 0", s.depth())
	}
	if got, want := string(trans.Bytes()), "[{}]"; got != want {
		t.Errorf("wire = %q, want %q", got, want)
	}
}
