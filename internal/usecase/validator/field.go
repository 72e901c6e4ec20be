package validator

// State names the variant a Field is in
type State string

const (
	StateEmpty   State = "empty"
	StateValid   State = "valid"
	StateInvalid State = "invalid"
)

// ErrorKind is the symbolic reason a field was rejected
type ErrorKind string

const (
	ErrorKindInvalid     ErrorKind = "invalid"
	ErrorKindLowBalance  ErrorKind = "lowBalance"
	ErrorKindSameAddress ErrorKind = "sameAddress"
)

// Field is the validation state of a single form field.
// It is exactly one of Empty[T], Valid[T] or Invalid[T]; the interface is sealed.
type Field[T any] interface {
	State() State
	isField()
}

// Empty is a field the user has not touched yet
type Empty[T any] struct{}

// Valid is a field whose raw input parsed into an accepted value
type Valid[T any] struct {
	Value T
}

// Invalid is a rejected field. Raw keeps the user input; nil means the input was undefined.
type Invalid[T any] struct {
	Raw  *string
	Kind ErrorKind
}

func (Empty[T]) State() State   { return StateEmpty }
func (Valid[T]) State() State   { return StateValid }
func (Invalid[T]) State() State { return StateInvalid }

func (Empty[T]) isField()   {}
func (Valid[T]) isField()   {}
func (Invalid[T]) isField() {}

// Input wraps a raw string so it can be passed where undefined input is also allowed
func Input(raw string) *string {
	return &raw
}

// invalid builds an Invalid field, copying raw so the state never aliases caller memory
func invalid[T any](raw *string, kind ErrorKind) Field[T] {
	if raw == nil {
		return Invalid[T]{Kind: kind}
	}
	return Invalid[T]{Raw: Input(*raw), Kind: kind}
}

// isValid reports whether f is tracked and in the Valid variant
func isValid[T any](f Field[T]) bool {
	_, ok := f.(Valid[T])
	return ok
}

// revalidate re-runs a field with its current value.
// Valid values are rechecked as typed values; Empty and Invalid fields are re-parsed from their raw input.
func revalidate[T any](f Field[T], recheck func(Valid[T]) Field[T], parse func(*string) Field[T]) Field[T] {
	switch f := f.(type) {
	case Valid[T]:
		return recheck(f)
	case Invalid[T]:
		return parse(f.Raw)
	case Empty[T]:
		return parse(nil)
	default:
		return f
	}
}
