package criteria

import (
	"reflect"
	"testing"
)

func TestNew_NormalizesSkillSets(t *testing.T) {
	c := New(
		[]string{"  Kotlin ", "kotlin", "SPRING", ""},
		[]string{"React", "vue", "react"},
		nil, nil, nil, "",
	)

	if got, want := c.SkillsAll(), []string{"kotlin", "spring"}; !reflect.DeepEqual(got, want) {
		t.Errorf("skillsAll = %v, want %v", got, want)
	}
	if got, want := c.SkillsAny(), []string{"react", "vue"}; !reflect.DeepEqual(got, want) {
		t.Errorf("skillsAny = %v, want %v", got, want)
	}
}

func TestNew_EqualForReorderedInput(t *testing.T) {
	a := New([]string{"go", "kubernetes"}, nil, []string{"Backend"}, nil, nil, "")
	b := New([]string{"Kubernetes", "GO"}, nil, []string{"backend"}, nil, nil, "")

	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected normalized criteria to compare equal:\n%+v\n%+v", a, b)
	}
}

func TestNew_EmptySetsCollapseToNil(t *testing.T) {
	c := New([]string{" ", ""}, nil, nil, nil, nil, "  ")

	if c.SkillsAll() != nil {
		t.Errorf("expected nil skillsAll, got %v", c.SkillsAll())
	}
	if c.Availability() != "" {
		t.Errorf("expected empty availability, got %q", c.Availability())
	}
	if !c.IsEmpty() {
		t.Error("expected criteria to be empty")
	}
}

func TestIsEmpty(t *testing.T) {
	min := 70
	tests := []struct {
		name string
		c    Criteria
		want bool
	}{
		{"zero value", Criteria{}, true},
		{"skills set", New([]string{"go"}, nil, nil, nil, nil, ""), false},
		{"only quality bound", New(nil, nil, nil, nil, &min, ""), false},
		{"only availability", New(nil, nil, nil, nil, nil, "immediate"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}
