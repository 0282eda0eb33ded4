package customize

// ValidationError signals user input that cannot be accepted (bad file type,
// oversized file, missing photo or text). It never mutates existing state and
// the user may retry immediately.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given user-facing message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// DecodeError signals an image that failed to decode. The frame is left empty
// and no other selection is touched.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string {
	return e.Message
}

// IsDecodeError reports whether err is a DecodeError
func IsDecodeError(err error) bool {
	_, ok := err.(*DecodeError)
	return ok
}

// SubmissionError carries the order collaborator's rejection verbatim.
// Submissions are never retried automatically; the session state stays intact
// so the user can resubmit.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}

// IsSubmissionError reports whether err is a SubmissionError
func IsSubmissionError(err error) bool {
	_, ok := err.(*SubmissionError)
	return ok
}
