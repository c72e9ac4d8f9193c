package thrift

// This file holds the struct/field/container grammar operations shared by
// both Protocol (base codec) and RPCProtocol (JSON-RPC envelope codec).
// Both protocols push the same context shapes in the same order; they only
// differ in which contextStack (and therefore which Transport) the pushes
// land on. Keeping the operations as free functions over *contextStack lets
// RPCProtocol switch stacks per call (transport while writing, transport or
// scratch buffer while reading) without duplicating the grammar itself.

func structBeginWrite(s *contextStack) error { return s.pushWrite(newPairContext()) }
func structEndWrite(s *contextStack) error   { return s.popWrite() }
func structBeginRead(s *contextStack) error  { return s.pushRead(newPairContext()) }
func structEndRead(s *contextStack) error    { return s.popRead() }

func fieldBeginWrite(s *contextStack, id int16, ftype Type) error {
	if err := writeInt64(s, int64(id)); err != nil {
		return err
	}
	if err := s.pushWrite(newPairContext()); err != nil {
		return err
	}
	return writeTypeTag(s, ftype)
}

func fieldEndWrite(s *contextStack) error { return s.popWrite() }

// fieldBeginRead returns ftype == StopType, without consuming anything,
// when the next byte is the struct's closing '}'.
func fieldBeginRead(s *contextStack) (id int16, ftype Type, err error) {
	next, err := s.reader.peek()
	if err != nil {
		return
	}
	if next == objectEnd {
		ftype = StopType
		return
	}
	fid, err := readSizeField(s, maxInt16)
	if err != nil {
		return
	}
	id = int16(fid)
	if err = s.pushRead(newPairContext()); err != nil {
		return
	}
	ftype, err = readTypeTag(s)
	return
}

func fieldEndRead(s *contextStack) error { return s.popRead() }

func mapBeginWrite(s *contextStack, keyType, valType Type, size int) error {
	if err := s.pushWrite(newListContext()); err != nil {
		return err
	}
	if err := writeTypeTag(s, keyType); err != nil {
		return err
	}
	if err := writeTypeTag(s, valType); err != nil {
		return err
	}
	if err := writeInt64(s, int64(size)); err != nil {
		return err
	}
	return s.pushWrite(newPairContext())
}

func mapEndWrite(s *contextStack) error {
	if err := s.popWrite(); err != nil {
		return err
	}
	return s.popWrite()
}

func mapBeginRead(s *contextStack) (keyType, valType Type, size int, err error) {
	if err = s.pushRead(newListContext()); err != nil {
		return
	}
	if keyType, err = readTypeTag(s); err != nil {
		return
	}
	if valType, err = readTypeTag(s); err != nil {
		return
	}
	n, err := readSizeField(s, maxUint32)
	if err != nil {
		return
	}
	size = int(n)
	err = s.pushRead(newPairContext())
	return
}

func mapEndRead(s *contextStack) error {
	if err := s.popRead(); err != nil {
		return err
	}
	return s.popRead()
}

func listLikeBeginWrite(s *contextStack, elemType Type, size int) error {
	if err := s.pushWrite(newListContext()); err != nil {
		return err
	}
	if err := writeTypeTag(s, elemType); err != nil {
		return err
	}
	return writeInt64(s, int64(size))
}

func listLikeEndWrite(s *contextStack) error { return s.popWrite() }

func listLikeBeginRead(s *contextStack) (elemType Type, size int, err error) {
	if err = s.pushRead(newListContext()); err != nil {
		return
	}
	if elemType, err = readTypeTag(s); err != nil {
		return
	}
	n, err := readSizeField(s, maxUint32)
	if err != nil {
		return
	}
	size = int(n)
	return
}

func listLikeEndRead(s *contextStack) error { return s.popRead() }
