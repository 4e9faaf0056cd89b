package models

// Fixed generator limits.
const (
	// MaxAttempts bounds the random draws spent on one subject.
	MaxAttempts = 1000
	// MaxLecturesPerDay caps the lectures one faculty member gives per day.
	MaxLecturesPerDay = 2
)

// DefaultDays are used when a request does not name its own days.
var DefaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DefaultSlots are used when a request does not name its own slots.
var DefaultSlots = []string{"9-10", "10-11", "11-12", "1-2", "2-3"}

// FixedRooms is the room pool shared by every generation run. It is not
// overridable by requests or configuration.
func FixedRooms() []string {
	return []string{"R1", "R2"}
}

// SubjectDemand is one subject's weekly lecture requirement.
type SubjectDemand struct {
	SubjectName     string
	FacultyName     string
	LecturesPerWeek int
}

// TimetableDomain holds the candidate values drawn from during generation.
type TimetableDomain struct {
	Days  []string
	Slots []string
	Rooms []string
}

// ScheduledLecture is one committed placement.
type ScheduledLecture struct {
	SubjectName string `json:"subject"`
	FacultyName string `json:"faculty"`
	Room        string `json:"room"`
	Day         string `json:"day"`
	Slot        string `json:"slot"`
}

// SubjectOutcome summarises how much of a subject's demand was placed.
type SubjectOutcome struct {
	SubjectName  string
	FacultyName  string
	Requested    int
	Placed       int
	AttemptsUsed int
}

// Unmet returns the number of lectures that could not be placed.
func (o SubjectOutcome) Unmet() int {
	if o.Requested <= o.Placed {
		return 0
	}
	return o.Requested - o.Placed
}

// GenerationReport is the server-side view of one run. It is never returned
// to callers of the generate endpoint.
type GenerationReport struct {
	Lectures []ScheduledLecture
	Subjects []SubjectOutcome
}

// Totals returns the requested, placed and unmet lecture counts of the run.
func (r GenerationReport) Totals() (requested, placed, unmet int) {
	for _, subject := range r.Subjects {
		requested += subject.Requested
		placed += subject.Placed
		unmet += subject.Unmet()
	}
	return requested, placed, unmet
}

// Violation dimensions reported by the timetable checker.
const (
	DimensionFaculty  = "FACULTY"
	DimensionRoom     = "ROOM"
	DimensionDailyCap = "DAILY_CAP"
	DimensionDemand   = "DEMAND"
)

// TimetableViolation describes one broken scheduling invariant.
type TimetableViolation struct {
	Dimension string `json:"dimension"`
	Day       string `json:"day,omitempty"`
	Slot      string `json:"slot,omitempty"`
	Faculty   string `json:"faculty,omitempty"`
	Room      string `json:"room,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Count     int    `json:"count"`
	Limit     int    `json:"limit"`
}
