package thrift

import "testing"

func writeBinaryInList(b []byte) string {
	trans := NewMemoryTransport()
	stack := newContextStack(trans)
	stack.pushWrite(newListContext())
	writeBinary(stack, b)
	stack.popWrite()
	return string(trans.Bytes())
}

func TestBase64NoPaddingOnWrite(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{}, `[""]`},
		{[]byte("f"), `["Zg"]`},
		{[]byte("fo"), `["Zm8"]`},
		{[]byte("foo"), `["Zm9v"]`},
		{[]byte("foob"), `["Zm9vYg"]`},
		{[]byte("fooba"), `["Zm9vYmE"]`},
		{[]byte("foobar"), `["Zm9vYmFy"]`},
	}
	for _, tt := range tests {
		if got := writeBinaryInList(tt.in); got != tt.want {
			t.Errorf("writeBinary(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBase64DecodeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "f", "fo", "foo", "foob", "fooba", "foobar", "hello, world!"} {
		wire := writeBinaryInList([]byte(s))
		trans := NewMemoryTransport()
		trans.Write([]byte(wire))
		stack := newContextStack(trans)
		stack.pushRead(newListContext())
		got, err := readBinary(stack)
		if err != nil {
			t.Fatalf("readBinary(%q): %v", wire, err)
		}
		if string(got) != s {
			t.Errorf("round trip %q: wire=%q got=%q", s, wire, got)
		}
	}
}

func TestBase64DecodesPaddedInput(t *testing.T) {
	trans := NewMemoryTransport()
	trans.Write([]byte(`["Zm8"]`))
	unpadded := newContextStack(trans)
	unpadded.pushRead(newListContext())
	got1, err := readBinary(unpadded)
	if err != nil {
		t.Fatalf("readBinary unpadded: %v", err)
	}

	trans2 := NewMemoryTransport()
	trans2.Write([]byte(`["Zm8="]`))
	padded := newContextStack(trans2)
	padded.pushRead(newListContext())
	got2, err := readBinary(padded)
	if err != nil {
		t.Fatalf("readBinary padded: %v", err)
	}
	if string(got1) != string(got2) {
		t.Errorf("padded/unpadded decode mismatch: %q vs %q", got1, got2)
	}

	trans3 := NewMemoryTransport()
	trans3.Write([]byte(`["Zm9vYg=="]`))
	paddedTwo := newContextStack(trans3)
	paddedTwo.pushRead(newListContext())
	got3, err := readBinary(paddedTwo)
	if err != nil {
		t.Fatalf("readBinary %%2 padded: %v", err)
	}
	if string(got3) != "foob" {
		t.Errorf("readBinary(%q) = %q, want %q", `Zm9vYg==`, got3, "foob")
	}
}

func TestBase64InvalidCharacterRejected(t *testing.T) {
	trans := NewMemoryTransport()
	trans.Write([]byte(`["!!!!"]`))
	stack := newContextStack(trans)
	stack.pushRead(newListContext())
	if _, err := readBinary(stack); !Is(err, InvalidData) {
		t.Errorf("readBinary(invalid) err = %v, want InvalidData", err)
	}
}
