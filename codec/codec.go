// Package codec centralizes element-sequence encoding.
//
// Codec selection is a compatibility boundary: snapshots record the codec
// name in their header, so bytes written by one codec are always decoded by
// the same codec, never by whatever Default happens to be at read time.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Self-describing formats (snapshots) store the codec name in their header
// and select the codec through this function on load.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when none is configured.
//
// This affects newly-written snapshots only; existing snapshots are
// self-describing and select their codec by name.
var Default Codec = GoJSON{}
