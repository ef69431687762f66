package curl

import (
	"fmt"
	"sync"
)

// bufPool pools []byte slices for the encoder fast path.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 512)
		return &b
	},
}

// Marshal returns the shell text of v as a single line.
//
// v must be a Command or *Command, or implement Marshaler. Arguments are
// written in order after "curl"; each word is left bare when that is safe,
// otherwise single- or double-quoted, so Parse(Marshal(cmd)) yields cmd.
//
// Marshal uses a sync.Pool buffer internally.
func Marshal(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("curl: Marshal(nil)")
	}

	if m, ok := v.(Marshaler); ok {
		return m.MarshalCurl()
	}

	switch cmd := v.(type) {
	case Command:
		return marshalCommand(cmd, false)
	case *Command:
		if cmd == nil {
			return nil, fmt.Errorf("curl: Marshal(nil *Command)")
		}
		return marshalCommand(*cmd, false)
	default:
		return nil, fmt.Errorf("curl: Marshal unsupported type %T (expected Command)", v)
	}
}

// MarshalIndent is like Marshal but puts every argument on its own
// backslash-continued line.
func MarshalIndent(cmd Command) ([]byte, error) {
	return marshalCommand(cmd, true)
}

func marshalCommand(cmd Command, multiline bool) ([]byte, error) {
	bp := bufPool.Get().(*[]byte)
	buf := (*bp)[:0]

	buf, err := appendCommand(buf, cmd, multiline)
	if err != nil {
		*bp = buf[:0]
		bufPool.Put(bp)
		return nil, err
	}

	result := make([]byte, len(buf))
	copy(result, buf)
	*bp = buf
	bufPool.Put(bp)
	return result, nil
}
