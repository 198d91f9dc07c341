package core

import "fmt"

// ErrorAccessDenied is the raw denial signal from a rule enforcer.
// It is translated at the policy engine boundary and must never
// reach a transport handler.
type ErrorAccessDenied struct {
	Rule string
}

func (e ErrorAccessDenied) Error() string {
	return fmt.Sprintf("access denied by rule %s", e.Rule)
}

func NewErrorAccessDenied(rule string) ErrorAccessDenied {
	return ErrorAccessDenied{Rule: rule}
}

type ErrorForbidden struct {
}

func (e ErrorForbidden) Error() string {
	return "Forbidden"
}

func NewErrorForbidden() ErrorForbidden {
	return ErrorForbidden{}
}

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorAlreadyExists struct {
}

func (e ErrorAlreadyExists) Error() string {
	return "Already Exists"
}

func NewErrorAlreadyExists() ErrorAlreadyExists {
	return ErrorAlreadyExists{}
}
