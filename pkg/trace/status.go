package trace

import (
	"google.golang.org/grpc/codes"
)

// Status is the terminal state of a span: a canonical code plus an
// optional message. The zero value is OK.
type Status struct {
	Code    codes.Code
	Message string
}

// StatusOK is the default status reported for spans that never set one.
var StatusOK = Status{Code: codes.OK}

func (s Status) IsOK() bool {
	return s.Code == codes.OK
}
