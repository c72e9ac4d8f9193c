package thrift

// Type identifies the wire shape of a single field or element value. It is
// the JSON codec's equivalent of Thrift's TType.
type Type byte

const (
	StopType Type = iota
	BoolType
	ByteType
	I16Type
	I32Type
	I64Type
	DoubleType
	StringType
	StructType
	MapType
	ListType
	SetType
)

// typeNames holds the short JSON identifier written on the wire for every
// Type except StopType, which is never written explicitly — it is signaled
// by the closing '}' of a struct's field list.
var typeNames = map[Type]string{
	BoolType:   "tf",
	ByteType:   "i8",
	I16Type:    "i16",
	I32Type:    "i32",
	I64Type:    "i64",
	DoubleType: "dbl",
	StringType: "str",
	StructType: "rec",
	MapType:    "map",
	ListType:   "lst",
	SetType:    "set",
}

// nameToType is the inverse of typeNames, built once at init time.
var nameToType = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

func (t Type) jsonName() (string, error) {
	name, ok := typeNames[t]
	if !ok {
		return "", errNotImplemented("unknown type tag %d", t)
	}
	return name, nil
}

func typeFromJSONName(name string) (Type, error) {
	t, ok := nameToType[name]
	if !ok {
		return StopType, errNotImplemented("unrecognized type identifier %q", name)
	}
	return t, nil
}

// MessageType identifies the kind of RPC message a header or envelope
// describes.
type MessageType int32

const (
	CallMessage MessageType = iota + 1
	ReplyMessage
	ExceptionMessage
	OnewayMessage
)

// protocolVersion is the literal leading integer of every base-codec
// message header.
const protocolVersion = 1

// jsonRPCVersion is the literal value of the envelope's "jsonrpc" field.
const jsonRPCVersion = "2.0"
