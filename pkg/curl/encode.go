package curl

import (
	"io"
)

// Encoder writes curl commands to an output stream, one per line.
type Encoder struct {
	w         io.Writer
	multiline bool
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetMultiline makes the encoder put every argument on its own
// backslash-continued line.
func (enc *Encoder) SetMultiline(on bool) {
	enc.multiline = on
}

// Encode writes the shell text of v followed by a newline.
// v must be a Command or *Command, or implement Marshaler.
func (enc *Encoder) Encode(v interface{}) error {
	var data []byte
	var err error
	switch cmd := v.(type) {
	case Command:
		data, err = marshalCommand(cmd, enc.multiline)
	case *Command:
		if cmd != nil {
			data, err = marshalCommand(*cmd, enc.multiline)
			break
		}
		data, err = Marshal(v)
	default:
		data, err = Marshal(v)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = enc.w.Write(data)
	return err
}
