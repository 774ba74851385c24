package roster

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// YearOptions configures generation of a whole year
type YearOptions struct {
	Options

	// Continuity carries parity from each month's last week into the next month.
	// When false every month resolves its own anchor from Options, so a month
	// boundary may repeat a week type.
	Continuity bool
}

// GenerateYear generates January to December of year in order.
// Any month failing validation aborts the whole run.
func GenerateYear(year int, snapshot *model.Snapshot, opts YearOptions) ([]*Result, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year out of range: %d", ErrInvalidInput, year)
	}

	results := make([]*Result, 0, 12)
	monthOpts := opts.Options

	for m := 1; m <= 12; m++ {
		month := fmt.Sprintf("%04d-%02d", year, m)

		result, err := Generate(month, snapshot, monthOpts)
		if err != nil {
			return nil, fmt.Errorf("month %s: %w", month, err)
		}
		results = append(results, result)

		if opts.Continuity {
			monthOpts = continueFrom(result, monthOpts)
		}
	}

	return results, nil
}

// continueFrom anchors the next month on the week holding this month's last day
func continueFrom(prev *Result, opts Options) Options {
	days, err := EnumerateMonth(prev.Month)
	if err != nil || len(days) == 0 {
		return opts
	}

	last := days[len(days)-1].Time
	next := opts
	next.Anchor = ParityAnchor{Date: last, Parity: prev.Anchor.WeekTypeOf(last)}
	next.BaseWeekType = ""
	next.HonorRotationConfig = false

	return next
}
