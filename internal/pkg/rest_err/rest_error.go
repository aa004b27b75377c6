package rest_err

import "net/http"

type RestErr struct {
	Message  string   `json:"message"`
	Err      string   `json:"error"`
	Code     int      `json:"code"`
	RayTrace string   `json:"ray_trace,omitempty"`
	Causes   []Causes `json:"causes,omitempty"`
}

func (r *RestErr) Error() string {
	return r.Message
}

func NewRestErr(rayTrace *string, message, err string, code int, causes []Causes) *RestErr {
	restErr := &RestErr{
		Message: message,
		Err:     err,
		Code:    code,
		Causes:  causes,
	}
	if rayTrace != nil {
		restErr.RayTrace = *rayTrace
	}
	return restErr
}

func NewBadRequestError(rayTrace *string, message string) *RestErr {
	return NewRestErr(rayTrace, message, ErrBadRequest, http.StatusBadRequest, nil)
}

func NewBadRequestValidationError(rayTrace *string, message string, causes []Causes) *RestErr {
	return NewRestErr(rayTrace, message, ErrBadRequest, http.StatusBadRequest, causes)
}

func NewUnprocessableError(rayTrace *string, message string) *RestErr {
	return NewRestErr(rayTrace, message, ErrUnprocessable, http.StatusUnprocessableEntity, nil)
}

func NewInternalServerError(rayTrace *string, message string, causes []Causes) *RestErr {
	return NewRestErr(rayTrace, message, ErrInternalServerError, http.StatusInternalServerError, causes)
}

func NewNotFoundError(rayTrace *string, message string) *RestErr {
	return NewRestErr(rayTrace, message, ErrNotFound, http.StatusNotFound, nil)
}

func NewForbiddenError(rayTrace *string, message string) *RestErr {
	return NewRestErr(rayTrace, message, ErrForbidden, http.StatusForbidden, nil)
}

func NewConflictValidationError(rayTrace *string, message string, causes []Causes) *RestErr {
	return NewRestErr(rayTrace, message, ErrConflict, http.StatusConflict, causes)
}
