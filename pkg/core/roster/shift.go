package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

var oddRatioPattern = regexp.MustCompile(`^\s*(\d+)\s*A\s*:\s*(\d+)\s*B\s*$`)

// ParseOddRatio parses an odd-group ratio such as "2A:3B" into its A and B counts
func ParseOddRatio(ratio string) (int, int, error) {
	matches := oddRatioPattern.FindStringSubmatch(ratio)
	if matches == nil {
		return 0, 0, fmt.Errorf("%w: odd ratio must look like 2A:3B, got %q", ErrInvalidInput, ratio)
	}

	aCount, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad A count in odd ratio %q", ErrInvalidInput, ratio)
	}
	bCount, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad B count in odd ratio %q", ErrInvalidInput, ratio)
	}

	return aCount, bCount, nil
}

// AllocateShifts assigns every member of a group a nominal shift for the month.
// members must be the group's active persons in list order; the order decides
// who lands in A when the group is split.
//
// Rules, highest priority first:
//   - a person whose capability is fixed to A or B always gets that shift
//   - even_split: even groups put the first half in A; odd groups put the first
//     N in A where N comes from the odd ratio (ceil(n/2) when no ratio is set)
//   - anything else defaults to A
func AllocateShifts(group model.Group, members []model.Person) (map[string]model.Shift, error) {
	shifts := make(map[string]model.Shift, len(members))

	aSlots := len(members)
	if group.Strategy == model.StrategyEvenSplit {
		size := len(members)
		switch {
		case size%2 == 0:
			aSlots = size / 2
		case group.OddRatio != "":
			aCount, _, err := ParseOddRatio(group.OddRatio)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", group.Name, err)
			}
			aSlots = aCount
		default:
			aSlots = (size + 1) / 2
		}
	}

	for i, person := range members {
		switch person.ShiftCapability {
		case model.CapabilityAOnly:
			shifts[person.Name] = model.ShiftA
		case model.CapabilityBOnly:
			shifts[person.Name] = model.ShiftB
		default:
			if i < aSlots {
				shifts[person.Name] = model.ShiftA
			} else {
				shifts[person.Name] = model.ShiftB
			}
		}
	}

	return shifts, nil
}

// AlternateForMonth swaps A and B for the group's split members in even-numbered
// months when the group alternates monthly. Fixed capabilities are left alone.
func AlternateForMonth(shifts map[string]model.Shift, group model.Group, members []model.Person, month time.Month) {
	if !group.AlternateMonthly || month%2 == 1 {
		return
	}
	for _, person := range members {
		if person.ShiftCapability != model.CapabilityAny {
			continue
		}
		switch shifts[person.Name] {
		case model.ShiftA:
			shifts[person.Name] = model.ShiftB
		case model.ShiftB:
			shifts[person.Name] = model.ShiftA
		}
	}
}
