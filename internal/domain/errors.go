package domain

import "errors"

// ErrContractViolation marks caller bugs: invalid day of month, negative or NaN
// amounts. Data-quality problems are reported through Warning fields instead.
var ErrContractViolation = errors.New("contract violation")
