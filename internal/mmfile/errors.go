package mmfile

import "errors"

// ErrUnsupported indicates memory mapping is not available on this
// platform.
var ErrUnsupported = errors.New("mmfile: memory mapping unsupported on this platform")
