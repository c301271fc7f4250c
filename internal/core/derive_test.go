package core

import "testing"

func TestDerive(t *testing.T) {
	in := &Table{Records: []CourseRecord{
		{Name: "Belair Park Beginner Course", StartDate: "04/08/2025", ClassCount: 6, ActiveParticipants: 8},
		{Name: "Dulwich Park Advanced", StartDate: "2025-08-11", ClassCount: 1, ActiveParticipants: 12},
		{Name: "Cardio Tennis", StartDate: "not-a-date", ClassCount: 4, ActiveParticipants: 2},
	}}

	out := Derive(in)

	r := out.Records[0]
	if r.Venue != VenueBelairPark {
		t.Errorf("Venue = %q, want %q", r.Venue, VenueBelairPark)
	}
	if r.SkillLevel != LevelBeginner {
		t.Errorf("SkillLevel = %q, want %q", r.SkillLevel, LevelBeginner)
	}
	if !r.LimitedSpots || r.Full {
		t.Errorf("8 participants: LimitedSpots=%v Full=%v, want limited only", r.LimitedSpots, r.Full)
	}
	if r.FormattedStartDate != "04 August 2025" {
		t.Errorf("FormattedStartDate = %q, want %q", r.FormattedStartDate, "04 August 2025")
	}
	if r.DurationText != "6 weeks" {
		t.Errorf("DurationText = %q, want %q", r.DurationText, "6 weeks")
	}

	r = out.Records[1]
	if r.Venue != VenueDulwichPark || r.SkillLevel != LevelAdvanced {
		t.Errorf("record 1: Venue=%q SkillLevel=%q", r.Venue, r.SkillLevel)
	}
	if !r.Full || r.LimitedSpots {
		t.Errorf("12 participants: LimitedSpots=%v Full=%v, want full only", r.LimitedSpots, r.Full)
	}
	if r.FormattedStartDate != "11 August 2025" {
		t.Errorf("ISO date: FormattedStartDate = %q", r.FormattedStartDate)
	}
	if r.DurationText != "1 week" {
		t.Errorf("DurationText = %q, want %q", r.DurationText, "1 week")
	}

	r = out.Records[2]
	if r.Venue != VenueUnknown || r.SkillLevel != LevelUnknown {
		t.Errorf("record 2: Venue=%q SkillLevel=%q, want unknowns", r.Venue, r.SkillLevel)
	}
	if r.FormattedStartDate != "not-a-date" {
		t.Errorf("unparsable date must pass through, got %q", r.FormattedStartDate)
	}
	if r.LimitedSpots || r.Full {
		t.Errorf("2 participants: LimitedSpots=%v Full=%v, want neither", r.LimitedSpots, r.Full)
	}

	// Input table stays untouched.
	if in.Records[0].Venue != "" {
		t.Error("Derive mutated its input")
	}
}

func TestExtractVenue(t *testing.T) {
	tests := []struct {
		name string
		want Venue
	}{
		{"Belair Park Beginner", VenueBelairPark},
		{"DULWICH park improver", VenueDulwichPark},
		{"Belair and Dulwich joint session", VenueBelairPark},
		{"Cardio Tennis", VenueUnknown},
	}

	for _, tt := range tests {
		if got := extractVenue(tt.name); got != tt.want {
			t.Errorf("extractVenue(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestExtractSkillLevel(t *testing.T) {
	tests := []struct {
		name string
		want SkillLevel
	}{
		{"Belair Park Beginner", LevelBeginner},
		{"improver drills", LevelImprover},
		{"Intermediate Monday", LevelIntermediate},
		{"Advanced match play", LevelAdvanced},
		// Beginner wins over Intermediate when both appear.
		{"Beginner to Intermediate bridge", LevelBeginner},
		{"Cardio Tennis", LevelUnknown},
	}

	for _, tt := range tests {
		if got := extractSkillLevel(tt.name); got != tt.want {
			t.Errorf("extractSkillLevel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"18:00", "6pm"},
		{"18:30", "6pm"}, // minutes dropped
		{"12:00", "12pm"},
		{"00:00", "12am"},
		{"09:15", "9am"},
		{"7pm", "7pm"},   // no colon, passthrough
		{"ab:cd", "ab:cd"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := formatTime(tt.input); got != tt.want {
			t.Errorf("formatTime(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDurationText(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "1 week"},
		{6, "6 weeks"},
		{0, "0 weeks"},
	}

	for _, tt := range tests {
		if got := durationText(tt.count); got != tt.want {
			t.Errorf("durationText(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
