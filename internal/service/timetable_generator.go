package service

import (
	"github.com/noah-isme/timetable-api/internal/models"
)

// randSource is the subset of *rand.Rand the generator draws from.
type randSource interface {
	Intn(n int) int
}

// TimetableGenerator places subject lectures onto (day, slot, room) triples by
// uniform random probing with rejection. It keeps no state between runs and is
// safe for concurrent use as long as each call gets its own randSource.
type TimetableGenerator struct {
	rooms       []string
	maxAttempts int
	maxPerDay   int
}

// NewTimetableGenerator returns a generator over the fixed room pool.
func NewTimetableGenerator() *TimetableGenerator {
	return &TimetableGenerator{
		rooms:       models.FixedRooms(),
		maxAttempts: models.MaxAttempts,
		maxPerDay:   models.MaxLecturesPerDay,
	}
}

// Rooms returns a copy of the room pool.
func (g *TimetableGenerator) Rooms() []string {
	return append([]string(nil), g.rooms...)
}

// Generate schedules subjects in order. Demand that cannot be placed within a
// subject's attempt budget is dropped silently; the report records it.
func (g *TimetableGenerator) Generate(subjects []models.SubjectDemand, days, slots []string, rng randSource) models.GenerationReport {
	domain := models.TimetableDomain{Days: days, Slots: slots, Rooms: g.rooms}
	state := newOccupancy(g.maxPerDay)
	report := models.GenerationReport{
		Lectures: make([]models.ScheduledLecture, 0),
		Subjects: make([]models.SubjectOutcome, 0, len(subjects)),
	}

	for _, subject := range subjects {
		outcome := models.SubjectOutcome{
			SubjectName: subject.SubjectName,
			FacultyName: subject.FacultyName,
			Requested:   subject.LecturesPerWeek,
		}
		if outcome.Requested < 0 {
			outcome.Requested = 0
		}

		budget := attemptBudget{remaining: g.maxAttempts}
		for required := outcome.Requested; required > 0; required-- {
			result := state.probe(&budget, subject, domain, rng)
			if result.Outcome == outcomeExhausted {
				break
			}
			report.Lectures = append(report.Lectures, result.Lecture)
			outcome.Placed++
		}
		outcome.AttemptsUsed = budget.used
		report.Subjects = append(report.Subjects, outcome)
	}
	return report
}

// --- Placement ---

type placementOutcome int

const (
	outcomePlaced placementOutcome = iota + 1
	outcomeExhausted
)

type placementResult struct {
	Outcome placementOutcome
	Lecture models.ScheduledLecture
}

// attemptBudget is shared by every lecture of one subject.
type attemptBudget struct {
	remaining int
	used      int
}

func (b *attemptBudget) take() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	b.used++
	return true
}

func (b *attemptBudget) drain() {
	b.used += b.remaining
	b.remaining = 0
}

// --- Occupancy ---

type facultyKey struct {
	Day, Slot, Faculty string
}

type roomKey struct {
	Day, Slot, Room string
}

type loadKey struct {
	Day, Faculty string
}

type occupancy struct {
	maxPerDay int
	faculty   map[facultyKey]struct{}
	rooms     map[roomKey]struct{}
	daily     map[loadKey]int
}

func newOccupancy(maxPerDay int) *occupancy {
	return &occupancy{
		maxPerDay: maxPerDay,
		faculty:   make(map[facultyKey]struct{}),
		rooms:     make(map[roomKey]struct{}),
		daily:     make(map[loadKey]int),
	}
}

// probe draws until one placement is accepted or the budget runs out.
func (o *occupancy) probe(budget *attemptBudget, subject models.SubjectDemand, domain models.TimetableDomain, rng randSource) placementResult {
	if len(domain.Days) == 0 || len(domain.Slots) == 0 || len(domain.Rooms) == 0 {
		// every draw would be rejected
		budget.drain()
		return placementResult{Outcome: outcomeExhausted}
	}
	for budget.take() {
		day := domain.Days[rng.Intn(len(domain.Days))]
		slot := domain.Slots[rng.Intn(len(domain.Slots))]
		room := domain.Rooms[rng.Intn(len(domain.Rooms))]

		if !o.accepts(subject.FacultyName, day, slot, room) {
			continue
		}
		lecture := models.ScheduledLecture{
			SubjectName: subject.SubjectName,
			FacultyName: subject.FacultyName,
			Room:        room,
			Day:         day,
			Slot:        slot,
		}
		o.commit(lecture)
		return placementResult{Outcome: outcomePlaced, Lecture: lecture}
	}
	return placementResult{Outcome: outcomeExhausted}
}

func (o *occupancy) accepts(faculty, day, slot, room string) bool {
	if _, taken := o.faculty[facultyKey{Day: day, Slot: slot, Faculty: faculty}]; taken {
		return false
	}
	if _, taken := o.rooms[roomKey{Day: day, Slot: slot, Room: room}]; taken {
		return false
	}
	return o.daily[loadKey{Day: day, Faculty: faculty}] < o.maxPerDay
}

func (o *occupancy) commit(lecture models.ScheduledLecture) {
	o.faculty[facultyKey{Day: lecture.Day, Slot: lecture.Slot, Faculty: lecture.FacultyName}] = struct{}{}
	o.rooms[roomKey{Day: lecture.Day, Slot: lecture.Slot, Room: lecture.Room}] = struct{}{}
	o.daily[loadKey{Day: lecture.Day, Faculty: lecture.FacultyName}]++
}
