package planner

// ValidatePolicy checks the policy before any item is touched.
// Three 12 hour shifts exceed a production day and are rejected for either size class.
func ValidatePolicy(p Policy) error {
	switch p.Mode {
	case ModeSuggested, ModeGeneral:
	default:
		return &InvalidPolicyError{Reason: "unknown planning mode " + string(p.Mode)}
	}

	switch p.SizeFilter {
	case FilterAll, FilterSmall, FilterLarge:
	default:
		return &InvalidPolicyError{Reason: "unknown size filter " + string(p.SizeFilter)}
	}

	for _, size := range PlannedSizes {
		shift, ok := p.Shifts[size]
		if !ok {
			return &InvalidPolicyError{Size: size, Reason: "missing shift policy"}
		}

		invalid := func(reason string) error {
			return &InvalidPolicyError{
				Size:          size,
				Shifts:        shift.Shifts,
				HoursPerShift: shift.HoursPerShift,
				Reason:        reason,
			}
		}

		if shift.Shifts < 1 || shift.Shifts > 3 {
			return invalid("shift count must be 1, 2 or 3")
		}
		if shift.HoursPerShift != 8 && shift.HoursPerShift != 12 {
			return invalid("hours per shift must be 8 or 12")
		}
		if shift.Shifts == 3 && shift.HoursPerShift == 12 {
			return invalid("3 shifts of 12 hours are not allowed")
		}
		if p.UnitsPerShift.Lookup(size, shift.HoursPerShift) < 0 {
			return invalid("units per shift cannot be negative")
		}
	}

	return nil
}
