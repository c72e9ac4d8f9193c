package thrift

// This file holds the scalar read/write operations shared by Protocol and
// RPCProtocol, following the same "free function over *contextStack"
// pattern as grammar.go so neither protocol type duplicates range-checking
// logic the other already has right.

func writeBoolValue(s *contextStack, v bool) error {
	var i int64
	if v {
		i = 1
	}
	return writeInt64(s, i)
}

// writeByteValue writes v as an int64 literal. The teacher's C++ narrows
// an int8_t through boost::lexical_cast via an intermediate int16_t because
// lexical_cast treats int8_t as a character type; Go has no such pitfall,
// so this just widens to int64 directly.
func writeByteValue(s *contextStack, v int8) error { return writeInt64(s, int64(v)) }

func readBoolValue(s *contextStack) (bool, error) {
	v, err := readInt64(s)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// readByteValue range-checks to [-128, 127], rejecting out-of-range values
// instead of the teacher's C++ assert-based narrowing.
func readByteValue(s *contextStack) (int8, error) {
	v, err := readInt64(s)
	if err != nil {
		return 0, err
	}
	if v < -128 || v > 127 {
		return 0, errInvalidData("byte value %d out of range [-128, 127]", v)
	}
	return int8(v), nil
}

func readI16Value(s *contextStack) (int16, error) {
	v, err := readInt64(s)
	if err != nil {
		return 0, err
	}
	if v < -1<<15 || v > maxInt16 {
		return 0, errSizeLimit("i16 value %d out of range", v)
	}
	return int16(v), nil
}

func readI32Value(s *contextStack) (int32, error) {
	v, err := readInt64(s)
	if err != nil {
		return 0, err
	}
	if v < -1<<31 || v > maxInt32 {
		return 0, errSizeLimit("i32 value %d out of range", v)
	}
	return int32(v), nil
}
