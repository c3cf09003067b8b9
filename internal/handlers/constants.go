package handlers

const (
	CSRFFormField  = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"

	ErrInvalidFormData     = "Invalid form data"
	ErrForbidden           = "Forbidden"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
	ErrLessonNotFound      = "Lesson not found"
)
