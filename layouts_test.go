package lessondeck

import (
	"cmp"
	"slices"
	"testing"
)

func TestLayouts(t *testing.T) {
	t.Parallel()

	layouts := Layouts()
	if len(layouts) != 19 {
		t.Fatalf("Layouts() = %d entries, want 19", len(layouts))
	}
	if !slices.IsSortedFunc(layouts, func(a, b LayoutInfo) int { return cmp.Compare(a.ID, b.ID) }) {
		t.Error("Layouts() should be sorted by id")
	}

	for _, l := range layouts {
		if _, ok := layoutFixtures[l.ID]; !ok {
			t.Errorf("layout %s has no test fixture", l.ID)
		}
		if len(l.Required) == 0 {
			t.Errorf("layout %s lists no required fields", l.ID)
		}
		if !IsLayout(l.ID) {
			t.Errorf("IsLayout(%q) = false", l.ID)
		}
	}

	if IsLayout("not-a-real-layout") {
		t.Error(`IsLayout("not-a-real-layout") = true`)
	}
}

func TestLayouts_CenteredTextRequiresText(t *testing.T) {
	t.Parallel()

	for _, l := range Layouts() {
		if l.ID == "centered-text" && !slices.Equal(l.Required, []string{"text"}) {
			t.Errorf("centered-text Required = %v, want [text]", l.Required)
		}
	}
}
