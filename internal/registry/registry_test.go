package registry

import (
	"testing"

	"github.com/vovakirdan/evasion/internal/evasion"
)

type stubHunter struct{ resets int }

func (h *stubHunter) ID() string          { return "test-hunter" }
func (h *stubHunter) Description() string { return "stub hunter" }
func (h *stubHunter) Reset(int64)         { h.resets++ }
func (h *stubHunter) Act(evasion.Snapshot) evasion.HunterAction {
	return evasion.HunterAction{Build: evasion.BuildVertical}
}

type stubPrey struct{}

func (stubPrey) ID() string                           { return "test-prey" }
func (stubPrey) Description() string                  { return "stub prey" }
func (stubPrey) Reset(int64)                          {}
func (stubPrey) Move(evasion.Snapshot) *evasion.Point { return nil }

func init() {
	RegisterHunter("test-hunter", func() Hunter { return &stubHunter{} })
	RegisterPrey("test-prey", func() Prey { return stubPrey{} })
}

func TestCreateHunter(t *testing.T) {
	h, err := CreateHunter("test-hunter")
	if err != nil {
		t.Fatalf("CreateHunter() error = %v", err)
	}
	if h.ID() != "test-hunter" {
		t.Errorf("ID() = %q", h.ID())
	}
	if a := h.Act(evasion.Snapshot{}); a.Build != evasion.BuildVertical {
		t.Errorf("Act().Build = %v, expected vertical", a.Build)
	}

	other, _ := CreateHunter("test-hunter")
	h.Reset(1)
	if other.(*stubHunter).resets != 0 {
		t.Error("each CreateHunter call must return a fresh instance")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := CreateHunter("nobody"); err == nil {
		t.Error("expected an error for an unknown hunter")
	}
	if _, err := CreatePrey("nobody"); err == nil {
		t.Error("expected an error for an unknown prey")
	}
}

func TestExists(t *testing.T) {
	if !HunterExists("test-hunter") || !PreyExists("test-prey") {
		t.Error("registered policies should exist")
	}
	if HunterExists("test-prey") || PreyExists("test-hunter") {
		t.Error("hunter and prey namespaces must be separate")
	}
}

func TestListSortedWithDescriptions(t *testing.T) {
	RegisterPrey("test-prey-a", func() Prey { return stubPrey{} })

	list := Preys()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("Preys() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}

	found := false
	for _, info := range Hunters() {
		if info.ID == "test-hunter" {
			found = true
			if info.Description != "stub hunter" {
				t.Errorf("Description = %q", info.Description)
			}
		}
	}
	if !found {
		t.Error("Hunters() is missing test-hunter")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	RegisterHunter("test-hunter", func() Hunter { return &stubHunter{} })
}
