package payroll

import "errors"

var ErrStatementRender = errors.New("salary statement could not be rendered")
