package imagebutton

import "errors"

// Code identifies an error raised by the component itself, as opposed to
// a value forwarded from a failed upload routine.
type Code int

const (
	// CodeNoFile: the selection event carried no file.
	CodeNoFile Code = 1

	// CodeBadExtension: the filename did not match the allow-list.
	CodeBadExtension Code = 2

	// CodeTooBig: the file exceeded the configured size cap.
	CodeTooBig Code = 3

	// CodeUploading: an upload attempt failed. Reserved for embedders
	// that want to surface upload failures through the error view; the
	// component itself forwards upload errors verbatim instead.
	CodeUploading Code = 4
)

// Message returns the user-facing text for the code.
func (c Code) Message() string {
	switch c {
	case CodeNoFile:
		return "No file selected"
	case CodeBadExtension:
		return "Bad file type"
	case CodeTooBig:
		return "Too big"
	case CodeUploading:
		return "Error while uploading"
	default:
		return "Unknown error"
	}
}

// Error is a validation or upload error raised by the component. Upload
// routine failures are NOT wrapped in Error; they pass through to
// OnImageUploadError untouched, so consumers can tell the two apart
// with errors.As:
//
//	var ie *imagebutton.Error
//	if errors.As(err, &ie) {
//	    // internal taxonomy, ie.Code is one of the Code constants
//	} else {
//	    // upstream value from the upload routine
//	}
type Error struct {
	Code Code
}

// Error implements the error interface with the user-facing text.
func (e *Error) Error() string {
	return e.Code.Message()
}

// NewError creates an Error with the given code.
func NewError(code Code) *Error {
	return &Error{Code: code}
}

// InternalCode extracts the component's error code from err. The second
// return is false when err came from an upload routine (or is nil).
func InternalCode(err error) (Code, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code, true
	}
	return 0, false
}
