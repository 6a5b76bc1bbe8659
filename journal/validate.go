package journal

import (
	"errors"
	"strings"
)

var (
	ErrPairRequired      = errors.New("pair is required")
	ErrInvalidOpenPrice  = errors.New("invalid open price")
	ErrInvalidTakeProfit = errors.New("invalid take profit")
	ErrInvalidStopLoss   = errors.New("invalid stop loss")
	ErrInvalidOpenedAt   = errors.New("invalid opened at")

	ErrReasonWithoutClose = errors.New("close reason requires a close time")
)

// Validate checks a candidate field by field and returns the first failure.
// There are no cross-field checks: a take profit below the open price is accepted.
func Validate(c Candidate) error {
	if strings.TrimSpace(c.Pair) == "" {
		return ErrPairRequired
	}
	// !(x > 0) also rejects NaN.
	if !(c.OpenPrice > 0) {
		return ErrInvalidOpenPrice
	}
	if !(c.TakeProfit > 0) {
		return ErrInvalidTakeProfit
	}
	if !(c.StopLoss > 0) {
		return ErrInvalidStopLoss
	}
	return nil
}

// ValidateRecord applies the candidate checks to a stored record and requires
// a parseable OpenedAt. Records arriving through Import never passed Create.
func ValidateRecord(t TradeRecord) error {
	err := Validate(Candidate{
		Pair:       t.Pair,
		OpenPrice:  t.OpenPrice,
		TakeProfit: t.TakeProfit,
		StopLoss:   t.StopLoss,
	})
	if err != nil {
		return err
	}
	if _, err := ParseTime(t.OpenedAt); err != nil {
		return ErrInvalidOpenedAt
	}
	return nil
}

// IsValidationError reports whether err is one of the candidate validation failures.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrPairRequired) ||
		errors.Is(err, ErrInvalidOpenPrice) ||
		errors.Is(err, ErrInvalidTakeProfit) ||
		errors.Is(err, ErrInvalidStopLoss) ||
		errors.Is(err, ErrInvalidOpenedAt) ||
		errors.Is(err, ErrReasonWithoutClose)
}

// CheckClosure enforces that a close reason is only recorded on a closed trade.
// Stores call it before committing an update.
func CheckClosure(t TradeRecord) error {
	if strings.TrimSpace(t.CloseReason) != "" && !t.IsClosed() {
		return ErrReasonWithoutClose
	}
	return nil
}
