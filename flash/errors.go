package flash

import "errors"

// Kind is the closed categorization every device-specific error must map
// to. It enables generic error handling independent of the concrete
// hardware error type.
type Kind int

const (
	// KindOther is an implementation-specific failure, e.g. a hardware fault.
	KindOther Kind = iota

	// KindNotAligned means an argument offset or length violates a
	// granularity requirement.
	KindNotAligned

	// KindOutOfBounds means an argument range exceeds device capacity, or
	// an erase range runs backwards.
	KindOutOfBounds
)

func (k Kind) String() string {
	switch k {
	case KindNotAligned:
		return "arguments are not properly aligned"
	case KindOutOfBounds:
		return "arguments are out of bounds"
	default:
		return "an implementation specific error occurred"
	}
}

var (
	// ErrNotAligned indicates an offset or length not aligned to the
	// relevant device granularity.
	ErrNotAligned = errors.New("flash: arguments not aligned")

	// ErrOutOfBounds indicates a range outside the device's addressable
	// capacity. A backwards erase range is out of bounds, never a no-op.
	ErrOutOfBounds = errors.New("flash: arguments out of bounds")
)

// KindError is implemented by device error types that classify themselves.
type KindError interface {
	error

	// StorageKind reports the generic category of the error.
	StorageKind() Kind
}

// KindOf maps err to its generic Kind. Errors implementing KindError report
// their own kind; otherwise the sentinel errors are matched through the
// wrap chain. Anything else is KindOther.
func KindOf(err error) Kind {
	var ke KindError
	if errors.As(err, &ke) {
		return ke.StorageKind()
	}
	switch {
	case errors.Is(err, ErrNotAligned):
		return KindNotAligned
	case errors.Is(err, ErrOutOfBounds):
		return KindOutOfBounds
	default:
		return KindOther
	}
}
