package thrift

// rpcFlags tracks which JSON-RPC envelope keys have been written (as the
// expected final shape) or observed (accumulated while reading), mirroring
// JSONRPCFlags in the teacher's TJSONRPCProtocol.h bit for bit.
type rpcFlags uint16

const (
	rpcUnset   rpcFlags = 0
	rpcVersion rpcFlags = 1 << 0
	rpcMethod  rpcFlags = 1 << 1
	rpcID      rpcFlags = 1 << 2
	rpcParams  rpcFlags = 1 << 3
	rpcResult  rpcFlags = 1 << 4
	rpcErrCode rpcFlags = 1 << 5
	rpcErrMsg  rpcFlags = 1 << 6
	rpcErrData rpcFlags = 1 << 7
)

// The seven recognized envelope shapes. Any accumulated flag set that
// doesn't exactly equal one of these after parsing an envelope is rejected.
const (
	rpcRequest          = rpcVersion | rpcID | rpcMethod
	rpcFullRequest      = rpcRequest | rpcParams
	rpcNotification     = rpcVersion | rpcMethod
	rpcFullNotification = rpcNotification | rpcParams
	rpcResponse         = rpcVersion | rpcID | rpcResult
	rpcError            = rpcVersion | rpcID | rpcErrCode | rpcErrMsg
	rpcFullError        = rpcError | rpcErrData
)

// jsonrpcMessage carries the envelope-level metadata that WriteMessageBegin/
// End and ReadMessageBegin/End thread through the actual struct payload,
// mirroring TJSONRPCProtocol::JSONRPCMessage.
type jsonrpcMessage struct {
	method       string
	id           int32
	errorCode    int32
	errorMessage string
}

// rwMode selects which of RPCProtocol's two context stacks (and therefore
// which Transport) reads and writes are currently routed through.
type rwMode int

const (
	modeTransport rwMode = iota
	modeBuffered
)

const (
	keyJSONRPCName    = "jsonrpc"
	keyJSONRPCMethod  = "method"
	keyJSONRPCParams  = "params"
	keyJSONRPCID      = "id"
	keyJSONRPCResult  = "result"
	keyJSONRPCError   = "error"
	keyJSONRPCCode    = "code"
	keyJSONRPCMessage = "message"
	keyJSONRPCData    = "data"
)

// exceptionErrorCode is the JSON-RPC error code this codec assigns every
// Thrift application exception it writes; -32000 is the bottom of the
// "server error" range JSON-RPC 2.0 reserves for implementation-defined use.
const exceptionErrorCode = -32000
