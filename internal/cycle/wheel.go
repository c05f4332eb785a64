package cycle

// periodArcDays and fertileArcDays are the spans drawn on the cycle wheel.
const (
	periodArcDays  = 5
	fertileArcDays = fertileLeadDays + 1
)

// WheelGeometry holds the angles, in degrees, that a cycle-wheel renderer needs. One
// cycle maps onto a full 360 degree turn, so each day covers 360/length degrees.
type WheelGeometry struct {
	DegreesPerDay    float64 `json:"degrees_per_day"`
	PeriodArcStart   float64 `json:"period_arc_start"`
	PeriodArcExtent  float64 `json:"period_arc_extent"`
	FertileArcStart  float64 `json:"fertile_arc_start"`
	FertileArcExtent float64 `json:"fertile_arc_extent"`
	MarkerAngle      float64 `json:"marker_angle"`
}

// Wheel computes the wheel angles for s. cycleLength must be the length s was predicted
// with.
func Wheel(s Schedule, cycleLength int) (WheelGeometry, error) {
	if cycleLength <= 0 {
		return WheelGeometry{}, ErrInvalidCycleLength
	}

	step := 360 / float64(cycleLength)
	fertileStartDay := DaysBetween(s.LastPeriod, s.FertileStart)

	return WheelGeometry{
		DegreesPerDay:    step,
		PeriodArcStart:   step * float64(cycleLength-1),
		PeriodArcExtent:  step * periodArcDays,
		FertileArcStart:  step * float64(fertileStartDay-1),
		FertileArcExtent: step * fertileArcDays,
		MarkerAngle:      step * float64(s.CurrentCycleDay-1),
	}, nil
}
