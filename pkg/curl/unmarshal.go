package curl

import (
	"fmt"
)

// Unmarshal parses curl command text and stores the result in v.
//
// v must be a *Command, a *Request (the command folded by ToRequest), or
// implement Unmarshaler.
func Unmarshal(data []byte, v interface{}) error {
	if v == nil {
		return fmt.Errorf("curl: Unmarshal(nil)")
	}

	if u, ok := v.(Unmarshaler); ok {
		return u.UnmarshalCurl(data)
	}

	switch target := v.(type) {
	case *Command:
		cmd, err := Parse(string(data))
		if err != nil {
			return err
		}
		*target = cmd
		return nil

	case *Request:
		cmd, err := Parse(string(data))
		if err != nil {
			return err
		}
		req, err := ToRequest(cmd)
		if err != nil {
			return err
		}
		*target = *req
		return nil

	default:
		return fmt.Errorf("curl: Unmarshal unsupported type %T (expected *Command or *Request)", v)
	}
}
