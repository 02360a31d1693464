package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind tags a market data error so callers can pick a status without string matching.
type Kind string

const (
	// KindUnsupportedMarket means the instrument is outside the static enumeration.
	KindUnsupportedMarket Kind = Kind(UnsupportedMarketError)
	// KindUnsupportedPeriod means the period identifier is outside the calendar.
	KindUnsupportedPeriod Kind = Kind(UnsupportedPeriodError)
	// KindDataSourceUnavailable means the row store failed, timed out or was cancelled.
	KindDataSourceUnavailable Kind = Kind(DataSourceUnavailableError)
	// KindMalformedInput means input violated the contract of a strict component.
	KindMalformedInput Kind = Kind(MalformedInputError)
)

// Category returns the error category for the kind.
func (k Kind) Category() Category {
	switch k {
	case KindDataSourceUnavailable:
		return CategoryDatabase
	case KindUnsupportedMarket, KindUnsupportedPeriod, KindMalformedInput:
		return CategoryValidation
	default:
		return CategoryExternal
	}
}

// MarketDataError is the structured error surfaced by the market data engine.
type MarketDataError struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *MarketDataError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *MarketDataError) Unwrap() error {
	return e.Err
}

// Details returns the error as ErrorDetails so transport layers can render {code, message, field}.
func (e *MarketDataError) Details() *ErrorDetails {
	return NewErrorDetailsWithObject(e.Message, string(e.Kind), e.Field, e.Kind.Category())
}

// NewUnsupportedMarket returns an UnsupportedMarket error for the given identifier.
func NewUnsupportedMarket(market string) *MarketDataError {
	return &MarketDataError{
		Kind:    KindUnsupportedMarket,
		Message: fmt.Sprintf("unsupported market: %s", market),
		Field:   "market",
	}
}

// NewUnsupportedPeriod returns an UnsupportedPeriod error for the given identifier.
func NewUnsupportedPeriod(period string) *MarketDataError {
	return &MarketDataError{
		Kind:    KindUnsupportedPeriod,
		Message: fmt.Sprintf("unsupported period: %s", period),
		Field:   "period",
	}
}

// NewDataSourceUnavailable wraps a row store failure. The cause keeps its stack trace.
func NewDataSourceUnavailable(op string, err error) *MarketDataError {
	return &MarketDataError{
		Kind:    KindDataSourceUnavailable,
		Message: fmt.Sprintf("%s: data source unavailable", op),
		Err:     TracerFromError(err),
	}
}

// NewMalformedInput returns a MalformedInput error.
func NewMalformedInput(field, format string, args ...any) *MarketDataError {
	return &MarketDataError{
		Kind:    KindMalformedInput,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// KindOf returns the kind of the first MarketDataError in err's chain.
func KindOf(err error) (Kind, bool) {
	var mdErr *MarketDataError
	if stderrors.As(err, &mdErr) {
		return mdErr.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries a MarketDataError of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
