package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest is returned when an analysis request fails validation.
var ErrInvalidRequest = errors.New("invalid analysis request")

var validate = validator.New()

// AnalysisRequest holds the three dashboard inputs.
type AnalysisRequest struct {
	Symbol string    `json:"symbol" validate:"required,max=20,printascii"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

// NewAnalysisRequest normalises the ticker and truncates both dates to
// calendar days. A start after end is not rejected here; the data source
// answers it with an empty result.
func NewAnalysisRequest(symbol string, start, end time.Time) (AnalysisRequest, error) {
	req := AnalysisRequest{
		Symbol: strings.ToUpper(strings.TrimSpace(symbol)),
		Start:  CalendarDate(start),
		End:    CalendarDate(end),
	}
	if err := validate.Struct(req); err != nil {
		return AnalysisRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return req, nil
}

// ParseDate parses a YYYY-MM-DD date, returning def when s is empty.
func ParseDate(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: expected YYYY-MM-DD", ErrInvalidRequest, s)
	}
	return t, nil
}

func (r AnalysisRequest) String() string {
	return fmt.Sprintf("%s %s..%s", r.Symbol, r.Start.Format(DateLayout), r.End.Format(DateLayout))
}
