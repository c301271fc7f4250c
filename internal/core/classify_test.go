package core

import "testing"

func TestClassify(t *testing.T) {
	table := &Table{Records: []CourseRecord{
		{Name: "Belair Beginner", Type: "Adult", ClassCount: 6, SkillLevel: LevelBeginner},
		{Name: "Belair Improver", Type: "Adult", ClassCount: 6, SkillLevel: LevelImprover},
		{Name: "Red Ball Juniors", Type: "Junior", ClassCount: 10},
		{Name: "Open Day", Type: "Event", ClassCount: 1},
		{Name: "Friday Drop-in", Type: "Drop-in Session", ClassCount: 8},
	}}

	c := Classify(table)

	if len(c.Adults) != 2 {
		t.Errorf("Adults = %d, want 2", len(c.Adults))
	}
	if len(c.Juniors) != 1 {
		t.Errorf("Juniors = %d, want 1", len(c.Juniors))
	}
	if len(c.Events) != 2 {
		t.Errorf("Events = %d, want 2", len(c.Events))
	}
	if len(c.DropIns) != 2 {
		t.Errorf("DropIns = %d, want 2", len(c.DropIns))
	}

	av := c.Availability[CategoryAdults]
	if !av.Available || av.Count != 2 {
		t.Errorf("adults availability = %+v", av)
	}
	if len(av.Levels) != 2 || av.Levels[0] != LevelBeginner || av.Levels[1] != LevelImprover {
		t.Errorf("adult levels = %v, want input-order distinct levels", av.Levels)
	}
}

func TestClassifyCategoriesOverlap(t *testing.T) {
	// A one-class adult course is event-like too; the sets are not a
	// partition.
	table := &Table{Records: []CourseRecord{
		{Name: "Adult Taster", Type: "Adult", ClassCount: 1},
	}}

	c := Classify(table)

	if len(c.Adults) != 1 {
		t.Errorf("Adults = %d, want 1", len(c.Adults))
	}
	if len(c.Events) != 1 {
		t.Errorf("Events = %d, want 1 (one-class course is event-like)", len(c.Events))
	}
	if len(c.DropIns) != 1 {
		t.Errorf("DropIns = %d, want 1", len(c.DropIns))
	}
}

func TestClassifyUnmatchedRowsOmitted(t *testing.T) {
	table := &Table{Records: []CourseRecord{
		{Name: "Court Maintenance", Type: "Facility", ClassCount: 5},
	}}

	c := Classify(table)

	if len(c.Adults)+len(c.Juniors)+len(c.Events)+len(c.DropIns) != 0 {
		t.Error("row matching no predicate must be omitted from every subset")
	}
	if len(c.AvailableCategories()) != 0 {
		t.Errorf("AvailableCategories = %v, want empty", c.AvailableCategories())
	}
}

func TestAvailableCategoriesOrder(t *testing.T) {
	table := &Table{Records: []CourseRecord{
		{Name: "Open Day", Type: "Event", ClassCount: 1},
		{Name: "Red Ball Juniors", Type: "Junior", ClassCount: 10},
		{Name: "Belair Beginner", Type: "Adult", ClassCount: 6},
	}}

	got := Classify(table).AvailableCategories()
	want := []Category{CategoryAdults, CategoryJuniors, CategoryEvents}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsEventLike(t *testing.T) {
	tests := []struct {
		typ        string
		classCount int
		want       bool
	}{
		{"event", 6, true},
		{"taster session", 6, true},
		{"drop-in", 6, true},
		{"adult", 1, true},
		{"adult", 6, false},
		{"junior", 10, false},
	}

	for _, tt := range tests {
		if got := isEventLike(tt.typ, tt.classCount); got != tt.want {
			t.Errorf("isEventLike(%q, %d) = %v, want %v", tt.typ, tt.classCount, got, tt.want)
		}
	}
}
