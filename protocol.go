package thrift

// Protocol implements the base JSON codec: self-describing messages as
// ordered arrays, structs as field-id-keyed objects, and type-tagged
// values, all driven by a single context stack over one Transport.
//
// A Protocol is not safe for concurrent use, and its calls must be made in
// the order the wire grammar expects (WriteMessageBegin before any field
// writes, WriteFieldBegin/End bracketing each field, and so on) — the same
// discipline TJSONProtocol imposes on its caller in the teacher's C++
// implementation.
type Protocol struct {
	stack *contextStack
}

// NewProtocol returns a Protocol that reads and writes through trans.
func NewProtocol(trans Transport) *Protocol {
	return &Protocol{stack: newContextStack(trans)}
}

// Depth reports how many contexts remain open. A well-formed message
// sequence returns this to 0 after every WriteMessageEnd/ReadMessageEnd.
func (p *Protocol) Depth() int { return p.stack.depth() }

// --- message ---

func (p *Protocol) WriteMessageBegin(name string, mtype MessageType, seqid int32) error {
	if err := p.stack.pushWrite(newListContext()); err != nil {
		return err
	}
	if err := writeInt64(p.stack, protocolVersion); err != nil {
		return err
	}
	if err := writeString(p.stack, name); err != nil {
		return err
	}
	if err := writeInt64(p.stack, int64(mtype)); err != nil {
		return err
	}
	return writeInt64(p.stack, int64(seqid))
}

func (p *Protocol) WriteMessageEnd() error { return p.stack.popWrite() }

func (p *Protocol) ReadMessageBegin() (name string, mtype MessageType, seqid int32, err error) {
	if err = p.stack.pushRead(newListContext()); err != nil {
		return
	}
	version, err := readInt64(p.stack)
	if err != nil {
		return
	}
	if version != protocolVersion {
		err = errBadVersion("message contained bad version %d", version)
		return
	}
	name, err = readString(p.stack)
	if err != nil {
		return
	}
	mt, err := readInt64(p.stack)
	if err != nil {
		return
	}
	mtype = MessageType(mt)
	sid, err := readSizeField(p.stack, maxInt32)
	if err != nil {
		return
	}
	seqid = int32(sid)
	return
}

func (p *Protocol) ReadMessageEnd() error { return p.stack.popRead() }

// --- struct ---

func (p *Protocol) WriteStructBegin() error { return structBeginWrite(p.stack) }
func (p *Protocol) WriteStructEnd() error   { return structEndWrite(p.stack) }
func (p *Protocol) ReadStructBegin() error  { return structBeginRead(p.stack) }
func (p *Protocol) ReadStructEnd() error    { return structEndRead(p.stack) }

// --- fields ---

func (p *Protocol) WriteFieldBegin(id int16, ftype Type) error { return fieldBeginWrite(p.stack, id, ftype) }
func (p *Protocol) WriteFieldEnd() error                       { return fieldEndWrite(p.stack) }

// WriteFieldStop emits nothing: the struct's closing '}' is what signals
// the end of the field list on the wire.
func (p *Protocol) WriteFieldStop() error { return nil }

// ReadFieldBegin returns ftype == StopType when the struct's field list
// has ended (the next byte is '}'), without consuming anything.
func (p *Protocol) ReadFieldBegin() (int16, Type, error) { return fieldBeginRead(p.stack) }
func (p *Protocol) ReadFieldEnd() error                  { return fieldEndRead(p.stack) }

// --- containers ---

func (p *Protocol) WriteMapBegin(keyType, valType Type, size int) error {
	return mapBeginWrite(p.stack, keyType, valType, size)
}
func (p *Protocol) WriteMapEnd() error { return mapEndWrite(p.stack) }
func (p *Protocol) ReadMapBegin() (Type, Type, int, error) { return mapBeginRead(p.stack) }
func (p *Protocol) ReadMapEnd() error                      { return mapEndRead(p.stack) }

func (p *Protocol) WriteListBegin(elemType Type, size int) error {
	return listLikeBeginWrite(p.stack, elemType, size)
}
func (p *Protocol) WriteListEnd() error               { return listLikeEndWrite(p.stack) }
func (p *Protocol) ReadListBegin() (Type, int, error) { return listLikeBeginRead(p.stack) }
func (p *Protocol) ReadListEnd() error                { return listLikeEndRead(p.stack) }

func (p *Protocol) WriteSetBegin(elemType Type, size int) error {
	return listLikeBeginWrite(p.stack, elemType, size)
}
func (p *Protocol) WriteSetEnd() error               { return listLikeEndWrite(p.stack) }
func (p *Protocol) ReadSetBegin() (Type, int, error) { return listLikeBeginRead(p.stack) }
func (p *Protocol) ReadSetEnd() error                { return listLikeEndRead(p.stack) }

// --- primitives ---

func (p *Protocol) WriteBool(v bool) error      { return writeBoolValue(p.stack, v) }
func (p *Protocol) WriteByte(v int8) error      { return writeByteValue(p.stack, v) }
func (p *Protocol) WriteI16(v int16) error      { return writeInt64(p.stack, int64(v)) }
func (p *Protocol) WriteI32(v int32) error      { return writeInt64(p.stack, int64(v)) }
func (p *Protocol) WriteI64(v int64) error      { return writeInt64(p.stack, v) }
func (p *Protocol) WriteDouble(v float64) error { return writeDouble(p.stack, v) }
func (p *Protocol) WriteString(v string) error  { return writeString(p.stack, v) }
func (p *Protocol) WriteBinary(v []byte) error  { return writeBinary(p.stack, v) }

func (p *Protocol) ReadBool() (bool, error)      { return readBoolValue(p.stack) }
func (p *Protocol) ReadByte() (int8, error)      { return readByteValue(p.stack) }
func (p *Protocol) ReadI16() (int16, error)      { return readI16Value(p.stack) }
func (p *Protocol) ReadI32() (int32, error)      { return readI32Value(p.stack) }
func (p *Protocol) ReadI64() (int64, error)      { return readInt64(p.stack) }
func (p *Protocol) ReadDouble() (float64, error) { return readDouble(p.stack) }
func (p *Protocol) ReadString() (string, error)  { return readString(p.stack) }
func (p *Protocol) ReadBinary() ([]byte, error)  { return readBinary(p.stack) }
