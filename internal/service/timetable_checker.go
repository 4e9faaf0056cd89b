package service

import (
	"sort"

	"github.com/noah-isme/timetable-api/internal/models"
)

type demandKey struct {
	Subject, Faculty string
}

// CheckTimetable reports every double booking, daily cap breach and demand
// overrun in lectures. A nil result means the timetable is valid for subjects.
// Violations are sorted by dimension, day, slot, faculty and room.
func CheckTimetable(subjects []models.SubjectDemand, lectures []models.ScheduledLecture) []models.TimetableViolation {
	facultyCount := make(map[facultyKey]int)
	roomCount := make(map[roomKey]int)
	daily := make(map[loadKey]int)
	placed := make(map[demandKey]int)
	for _, lecture := range lectures {
		facultyCount[facultyKey{Day: lecture.Day, Slot: lecture.Slot, Faculty: lecture.FacultyName}]++
		roomCount[roomKey{Day: lecture.Day, Slot: lecture.Slot, Room: lecture.Room}]++
		daily[loadKey{Day: lecture.Day, Faculty: lecture.FacultyName}]++
		placed[demandKey{Subject: lecture.SubjectName, Faculty: lecture.FacultyName}]++
	}

	requested := make(map[demandKey]int)
	for _, subject := range subjects {
		if subject.LecturesPerWeek > 0 {
			requested[demandKey{Subject: subject.SubjectName, Faculty: subject.FacultyName}] += subject.LecturesPerWeek
		}
	}

	var violations []models.TimetableViolation
	for key, count := range facultyCount {
		if count > 1 {
			violations = append(violations, models.TimetableViolation{Dimension: models.DimensionFaculty, Day: key.Day, Slot: key.Slot, Faculty: key.Faculty, Count: count, Limit: 1})
		}
	}
	for key, count := range roomCount {
		if count > 1 {
			violations = append(violations, models.TimetableViolation{Dimension: models.DimensionRoom, Day: key.Day, Slot: key.Slot, Room: key.Room, Count: count, Limit: 1})
		}
	}
	for key, count := range daily {
		if count > models.MaxLecturesPerDay {
			violations = append(violations, models.TimetableViolation{Dimension: models.DimensionDailyCap, Day: key.Day, Faculty: key.Faculty, Count: count, Limit: models.MaxLecturesPerDay})
		}
	}
	for key, count := range placed {
		if limit := requested[key]; count > limit {
			violations = append(violations, models.TimetableViolation{Dimension: models.DimensionDemand, Subject: key.Subject, Faculty: key.Faculty, Count: count, Limit: limit})
		}
	}

	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Dimension != b.Dimension {
			return a.Dimension < b.Dimension
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		if a.Faculty != b.Faculty {
			return a.Faculty < b.Faculty
		}
		if a.Room != b.Room {
			return a.Room < b.Room
		}
		return a.Subject < b.Subject
	})
	return violations
}
