package thrift

// RPCProtocol implements the JSON-RPC 2.0 envelope codec: every message is
// a single JSON object carrying "jsonrpc", "method"/"id"/"params" (call),
// "id"/"result" (reply), "id"/"error" (exception), or the no-id
// "method"/"params" shape (oneway), with the actual Thrift struct body
// nested as the value of "params", "result", or the error object's "data".
//
// Because JSON object members are unordered, the envelope can't be framed
// with the same single forward-only context stack the base Protocol uses:
// ReadMessageBegin has to consume the whole envelope, keyed by field name,
// before it knows which struct body to hand the caller. It does this by
// capturing the body object verbatim into an in-memory scratch buffer
// while scanning the envelope, then switching the active context stack
// over to that buffer for the caller's own struct/field reads — the
// "two-channel I/O" split the teacher's mode_/contexts() split implements.
type RPCProtocol struct {
	transStack *contextStack
	buf        *MemoryTransport
	bufStack   *contextStack
	mode       rwMode

	message jsonrpcMessage
	flags   rpcFlags

	// pendingDataKey is true from the moment WriteMessageBegin(Exception,
	// ...) decides an exception is being written until either the caller's
	// first WriteStructBegin supplies the "data" value, or WriteMessageEnd
	// synthesizes an empty one. This is what keeps "data" from ever being
	// emitted without a following struct (see writePendingData).
	pendingDataKey bool
}

// NewRPCProtocol returns an RPCProtocol that reads and writes envelopes
// through trans, staging each message's body in a private scratch buffer.
func NewRPCProtocol(trans Transport) *RPCProtocol {
	buf := NewMemoryTransport()
	return &RPCProtocol{
		transStack: newContextStack(trans),
		buf:        buf,
		bufStack:   newContextStack(buf),
		mode:       modeTransport,
	}
}

// active returns whichever context stack reads and writes currently route
// through: the live transport, except for the portion of a read between
// ReadMessageBegin and ReadMessageEnd, which replays the captured body out
// of the scratch buffer.
func (p *RPCProtocol) active() *contextStack {
	if p.mode == modeBuffered {
		return p.bufStack
	}
	return p.transStack
}

// --- message ---

func (p *RPCProtocol) WriteMessageBegin(name string, mtype MessageType, seqid int32) error {
	p.mode = modeTransport
	p.buf.ResetBuffer()
	p.flags = rpcVersion
	p.pendingDataKey = false

	if err := structBeginWrite(p.transStack); err != nil {
		return err
	}
	if err := writeString(p.transStack, keyJSONRPCName); err != nil {
		return err
	}
	if err := writeString(p.transStack, jsonRPCVersion); err != nil {
		return err
	}

	switch mtype {
	case CallMessage:
		p.message.method = name
		p.message.id = seqid
		p.flags = rpcRequest
		if err := writeString(p.transStack, keyJSONRPCMethod); err != nil {
			return err
		}
		if err := writeString(p.transStack, p.message.method); err != nil {
			return err
		}
		return writeString(p.transStack, keyJSONRPCParams)

	case OnewayMessage:
		p.message.method = name
		p.flags = rpcNotification
		if err := writeString(p.transStack, keyJSONRPCMethod); err != nil {
			return err
		}
		if err := writeString(p.transStack, p.message.method); err != nil {
			return err
		}
		return writeString(p.transStack, keyJSONRPCParams)

	case ReplyMessage:
		p.message.id = seqid
		p.flags = rpcResponse
		return writeString(p.transStack, keyJSONRPCResult)

	case ExceptionMessage:
		p.message.id = seqid
		p.message.errorCode = exceptionErrorCode
		p.message.errorMessage = "Thrift exception"
		p.flags = rpcError
		if err := writeString(p.transStack, keyJSONRPCError); err != nil {
			return err
		}
		if err := structBeginWrite(p.transStack); err != nil {
			return err
		}
		if err := writeString(p.transStack, keyJSONRPCCode); err != nil {
			return err
		}
		if err := writeInt64(p.transStack, int64(p.message.errorCode)); err != nil {
			return err
		}
		if err := writeString(p.transStack, keyJSONRPCMessage); err != nil {
			return err
		}
		if err := writeString(p.transStack, p.message.errorMessage); err != nil {
			return err
		}
		// The "data" key itself is withheld until the caller actually
		// begins a struct (see WriteStructBegin) or WriteMessageEnd
		// synthesizes an empty one — never emitted with nothing after it.
		p.pendingDataKey = true
		return nil

	default:
		p.buf.ResetBuffer()
		p.flags = rpcUnset
		return errNotImplemented("unrecognized message type %d", mtype)
	}
}

func (p *RPCProtocol) WriteMessageEnd() error {
	switch p.flags {
	case rpcRequest, rpcFullRequest, rpcResponse:
		if err := writeString(p.transStack, keyJSONRPCID); err != nil {
			return err
		}
		if err := writeInt64(p.transStack, int64(p.message.id)); err != nil {
			return err
		}
	case rpcError, rpcFullError:
		if err := p.writePendingData(); err != nil {
			return err
		}
		if err := structEndWrite(p.transStack); err != nil {
			return err
		}
		if err := writeString(p.transStack, keyJSONRPCID); err != nil {
			return err
		}
		if err := writeInt64(p.transStack, int64(p.message.id)); err != nil {
			return err
		}
	case rpcNotification:
		// no trailing fields
	default:
		p.buf.ResetBuffer()
		p.flags = rpcUnset
		return errInvalidData("invalid JSON-RPC message")
	}
	if err := structEndWrite(p.transStack); err != nil {
		return err
	}
	p.buf.ResetBuffer()
	p.flags = rpcUnset
	return nil
}

// ReadMessageBegin consumes the complete envelope object from the
// transport (field order is not guaranteed, so it cannot be framed any
// other way), classifies it against the seven recognized flag
// combinations, and leaves the body's struct available for the caller's
// own ReadStructBegin et al. via the scratch buffer.
func (p *RPCProtocol) ReadMessageBegin() (name string, mtype MessageType, seqid int32, err error) {
	p.buf.ResetBuffer()
	p.bufStack = newContextStack(p.buf)
	p.mode = modeTransport
	p.flags = rpcUnset

	if err = structBeginRead(p.transStack); err != nil {
		return
	}
	for {
		var ch byte
		ch, err = p.transStack.reader.peek()
		if err != nil {
			return
		}
		if ch == objectEnd {
			break
		}
		if err = p.readRPCField(); err != nil {
			return
		}
	}
	if err = structEndRead(p.transStack); err != nil {
		return
	}

	switch p.flags {
	case rpcRequest, rpcFullRequest:
		name = p.message.method
		mtype = CallMessage
		seqid = p.message.id
		if p.flags == rpcRequest {
			err = p.writeEmptyBody()
		}
	case rpcNotification, rpcFullNotification:
		name = p.message.method
		mtype = OnewayMessage
		seqid = 0
		if p.flags == rpcNotification {
			err = p.writeEmptyBody()
		}
	case rpcError, rpcFullError, rpcResponse:
		name = ""
		seqid = p.message.id
		if p.flags == rpcResponse {
			mtype = ReplyMessage
		} else {
			mtype = ExceptionMessage
		}
		if p.flags == rpcError {
			err = p.writeEmptyBody()
		}
	default:
		p.buf.ResetBuffer()
		p.flags = rpcUnset
		err = errInvalidData("invalid JSON-RPC message")
	}
	if err != nil {
		return
	}

	p.mode = modeBuffered
	return
}

// writeEmptyBody stages "{}" directly into the scratch buffer for a
// request/notification/error envelope that omitted its params/data object.
func (p *RPCProtocol) writeEmptyBody() error {
	return p.buf.Write([]byte{objectStart, objectEnd})
}

// writePendingData emits the withheld "data" key followed immediately by
// an empty struct, for an exception whose caller never wrote one. It is a
// no-op once WriteStructBegin has already supplied the real key+value (it
// clears pendingDataKey as soon as it fires). Called from WriteMessageEnd
// so "data" is never left dangling with nothing after it on the wire.
func (p *RPCProtocol) writePendingData() error {
	if !p.pendingDataKey {
		return nil
	}
	p.pendingDataKey = false
	if err := writeString(p.transStack, keyJSONRPCData); err != nil {
		return err
	}
	if err := structBeginWrite(p.transStack); err != nil {
		return err
	}
	return structEndWrite(p.transStack)
}

func (p *RPCProtocol) ReadMessageEnd() error {
	p.buf.ResetBuffer()
	p.flags = rpcUnset
	p.mode = modeTransport
	return nil
}

// readRPCField reads one "key": value member of the envelope (or, when
// called recursively from inside an "error" object, one of its members)
// and folds the corresponding bit into p.flags. params/result/data values
// are captured verbatim into the scratch buffer rather than parsed, since
// at this point the caller's struct shape isn't known yet.
func (p *RPCProtocol) readRPCField() error {
	key, err := readString(p.transStack)
	if err != nil {
		return err
	}
	switch key {
	case keyJSONRPCName:
		version, err := readString(p.transStack)
		if err != nil {
			return err
		}
		if version != jsonRPCVersion {
			return errBadVersion("message contained bad version %q", version)
		}
		p.flags |= rpcVersion

	case keyJSONRPCMethod:
		method, err := readString(p.transStack)
		if err != nil {
			return err
		}
		p.message.method = method
		p.flags |= rpcMethod

	case keyJSONRPCID:
		id, err := readI32Value(p.transStack)
		if err != nil {
			return err
		}
		p.message.id = id
		p.flags |= rpcID

	case keyJSONRPCParams:
		if err := readRawObject(p.transStack, p.buf); err != nil {
			return err
		}
		p.flags |= rpcParams

	case keyJSONRPCResult:
		if err := readRawObject(p.transStack, p.buf); err != nil {
			return err
		}
		p.flags |= rpcResult

	case keyJSONRPCError:
		if err := structBeginRead(p.transStack); err != nil {
			return err
		}
		for {
			if err := p.readRPCField(); err != nil {
				return err
			}
			ch, err := p.transStack.reader.peek()
			if err != nil {
				return err
			}
			if ch == objectEnd {
				break
			}
		}
		if err := structEndRead(p.transStack); err != nil {
			return err
		}

	case keyJSONRPCCode:
		code, err := readI32Value(p.transStack)
		if err != nil {
			return err
		}
		p.message.errorCode = code
		p.flags |= rpcErrCode

	case keyJSONRPCMessage:
		msg, err := readString(p.transStack)
		if err != nil {
			return err
		}
		p.message.errorMessage = msg
		p.flags |= rpcErrMsg

	case keyJSONRPCData:
		if err := readRawObject(p.transStack, p.buf); err != nil {
			return err
		}
		p.flags |= rpcErrData

	default:
		return errInvalidData("unknown JSON-RPC keyword %q", key)
	}
	return nil
}

// --- struct ---

// WriteStructBegin supplies the "data" key withheld by WriteMessageBegin's
// exception branch the first time the caller begins a struct after it, so
// "data" is only ever written immediately followed by its value. Nested
// struct-typed fields inside the body are unaffected — pendingDataKey is
// already false by the time those calls happen.
func (p *RPCProtocol) WriteStructBegin() error {
	if p.pendingDataKey {
		p.pendingDataKey = false
		if err := writeString(p.transStack, keyJSONRPCData); err != nil {
			return err
		}
	}
	return structBeginWrite(p.active())
}
func (p *RPCProtocol) WriteStructEnd() error   { return structEndWrite(p.active()) }
func (p *RPCProtocol) ReadStructBegin() error  { return structBeginRead(p.active()) }
func (p *RPCProtocol) ReadStructEnd() error    { return structEndRead(p.active()) }

// --- fields ---

func (p *RPCProtocol) WriteFieldBegin(id int16, ftype Type) error {
	return fieldBeginWrite(p.active(), id, ftype)
}
func (p *RPCProtocol) WriteFieldEnd() error { return fieldEndWrite(p.active()) }
func (p *RPCProtocol) WriteFieldStop() error { return nil }

func (p *RPCProtocol) ReadFieldBegin() (int16, Type, error) { return fieldBeginRead(p.active()) }
func (p *RPCProtocol) ReadFieldEnd() error                  { return fieldEndRead(p.active()) }

// --- containers ---

func (p *RPCProtocol) WriteMapBegin(keyType, valType Type, size int) error {
	return mapBeginWrite(p.active(), keyType, valType, size)
}
func (p *RPCProtocol) WriteMapEnd() error                   { return mapEndWrite(p.active()) }
func (p *RPCProtocol) ReadMapBegin() (Type, Type, int, error) { return mapBeginRead(p.active()) }
func (p *RPCProtocol) ReadMapEnd() error                      { return mapEndRead(p.active()) }

func (p *RPCProtocol) WriteListBegin(elemType Type, size int) error {
	return listLikeBeginWrite(p.active(), elemType, size)
}
func (p *RPCProtocol) WriteListEnd() error               { return listLikeEndWrite(p.active()) }
func (p *RPCProtocol) ReadListBegin() (Type, int, error) { return listLikeBeginRead(p.active()) }
func (p *RPCProtocol) ReadListEnd() error                { return listLikeEndRead(p.active()) }

func (p *RPCProtocol) WriteSetBegin(elemType Type, size int) error {
	return listLikeBeginWrite(p.active(), elemType, size)
}
func (p *RPCProtocol) WriteSetEnd() error               { return listLikeEndWrite(p.active()) }
func (p *RPCProtocol) ReadSetBegin() (Type, int, error) { return listLikeBeginRead(p.active()) }
func (p *RPCProtocol) ReadSetEnd() error                { return listLikeEndRead(p.active()) }

// --- primitives ---

func (p *RPCProtocol) WriteBool(v bool) error      { return writeBoolValue(p.active(), v) }
func (p *RPCProtocol) WriteByte(v int8) error      { return writeByteValue(p.active(), v) }
func (p *RPCProtocol) WriteI16(v int16) error      { return writeInt64(p.active(), int64(v)) }
func (p *RPCProtocol) WriteI32(v int32) error      { return writeInt64(p.active(), int64(v)) }
func (p *RPCProtocol) WriteI64(v int64) error      { return writeInt64(p.active(), v) }
func (p *RPCProtocol) WriteDouble(v float64) error { return writeDouble(p.active(), v) }
func (p *RPCProtocol) WriteString(v string) error  { return writeString(p.active(), v) }
func (p *RPCProtocol) WriteBinary(v []byte) error  { return writeBinary(p.active(), v) }

func (p *RPCProtocol) ReadBool() (bool, error)      { return readBoolValue(p.active()) }
func (p *RPCProtocol) ReadByte() (int8, error)      { return readByteValue(p.active()) }
func (p *RPCProtocol) ReadI16() (int16, error)      { return readI16Value(p.active()) }
func (p *RPCProtocol) ReadI32() (int32, error)      { return readI32Value(p.active()) }
func (p *RPCProtocol) ReadI64() (int64, error)      { return readInt64(p.active()) }
func (p *RPCProtocol) ReadDouble() (float64, error) { return readDouble(p.active()) }
func (p *RPCProtocol) ReadString() (string, error)  { return readString(p.active()) }
func (p *RPCProtocol) ReadBinary() ([]byte, error)  { return readBinary(p.active()) }
