package dto

// SubjectDemandRequest is one entry of the generate payload.
type SubjectDemandRequest struct {
	Subject         string `json:"subject"`
	Faculty         string `json:"faculty"`
	LecturesPerWeek *int   `json:"lecturesPerWeek"`
}

// GenerateTimetableRequest is the generate payload. A nil Days or Slots
// (absent or null) selects the server defaults; an explicit empty list is
// kept as is.
type GenerateTimetableRequest struct {
	Subjects []SubjectDemandRequest `json:"subjects"`
	Days     []string               `json:"days"`
	Slots    []string               `json:"slots"`
}

// GenerateTimetableAliasResponse mirrors the legacy proxy response.
type GenerateTimetableAliasResponse struct {
	Message   string      `json:"message"`
	Timetable interface{} `json:"timetable"`
}

// SlotSettingsRequest describes a working day from which slot labels are built.
// Zero or absent fields fall back to the institution defaults; the break
// fields are pointers so an explicit 0 disables the break.
type SlotSettingsRequest struct {
	StartTime      string `json:"startTime" validate:"omitempty,datetime=15:04"`
	SlotDuration   int    `json:"slotDuration" validate:"omitempty,min=1,max=600"`
	SlotsPerDay    int    `json:"slotsPerDay" validate:"omitempty,min=1,max=24"`
	BreakAfterSlot *int   `json:"breakAfterSlot" validate:"omitempty,min=0"`
	BreakDuration  *int   `json:"breakDuration" validate:"omitempty,min=0,max=600"`
}

// ExportTimetableQuery selects the export encoding.
type ExportTimetableQuery struct {
	Format string `form:"format" validate:"required,oneof=csv pdf"`
	Title  string `form:"title" validate:"max=120"`
}
