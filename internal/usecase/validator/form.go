package validator

// Form keeps the current state of one open dialog.
// A Form is used by a single caller and is not safe for concurrent use.
type Form struct {
	validator *Validator
	state     FormState
}

// NewForm creates a form with every tracked field Empty
func NewForm(v *Validator) *Form {
	return &Form{validator: v, state: v.Initial()}
}

// Dispatch applies an action and returns the new state
func (f *Form) Dispatch(action Action) FormState {
	f.state = f.validator.Reduce(f.state, action)
	return f.state
}

// State returns the current state
func (f *Form) State() FormState {
	return f.state
}

// Error returns the single error message for the current state, or ""
func (f *Form) Error() string {
	return f.validator.ErrorMessage(f.state)
}

// FieldError returns the first invalid field for the current state, or nil
func (f *Form) FieldError() *FieldError {
	return f.validator.Error(f.state)
}

// Ready reports whether the current state may be submitted
func (f *Form) Ready() bool {
	return f.validator.Ready(f.state)
}

// CreateValidator returns the initial state, a dispatch function and an error message accessor
// for a form tracking fields
func CreateValidator(fields []FieldName, opts ...Option) (FormState, func(Action) FormState, func() string) {
	form := NewForm(NewValidator(fields, opts...))
	return form.State(), form.Dispatch, form.Error
}
