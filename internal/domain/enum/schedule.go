package enum

// Schedule classifies a drug under the prescription schedules recognised by
// the store. Anything other than ScheduleNone gates checkout on doctor
// details or an attached prescription.
type Schedule string

const (
	ScheduleNone     Schedule = "none"
	ScheduleH        Schedule = "H"
	ScheduleH1       Schedule = "H1"
	ScheduleNarcotic Schedule = "narcotic"
	ScheduleTB       Schedule = "tb"
)

// RequiresPrescription reports whether a sale of this schedule needs a
// prescribing doctor or an attached prescription.
func (s Schedule) RequiresPrescription() bool {
	return s != ScheduleNone && s != ""
}

// IsValid checks if the schedule is a recognised value
func (s Schedule) IsValid() bool {
	switch s {
	case ScheduleNone, ScheduleH, ScheduleH1, ScheduleNarcotic, ScheduleTB:
		return true
	}
	return false
}
