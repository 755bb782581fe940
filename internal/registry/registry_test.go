package registry

import (
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

type fakeGame struct{ id string }

func (g *fakeGame) ID() string                           { return g.id }
func (g *fakeGame) Title() string                        { return "Fake " + g.id }
func (g *fakeGame) Reset(core.RuntimeConfig)             {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen)                  {}
func (g *fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_fake_b", func() Game { return &fakeGame{id: "zz_fake_b"} })
	Register("zz_fake_a", func() Game { return &fakeGame{id: "zz_fake_a"} })

	if !Exists("zz_fake_a") || !Exists("zz_fake_b") {
		t.Fatal("registered games should exist")
	}
	if Exists("zz_missing") {
		t.Error("unregistered game should not exist")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "zz_fake_a" && info.Title != "Fake zz_fake_a" {
			t.Errorf("title = %q", info.Title)
		}
	}
	posA, posB := -1, -1
	for i, id := range ids {
		switch id {
		case "zz_fake_a":
			posA = i
		case "zz_fake_b":
			posB = i
		}
	}
	if posA < 0 || posB < 0 || posA > posB {
		t.Errorf("List() not sorted by id: %v", ids)
	}

	g1, err := Create("zz_fake_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	g2, _ := Create("zz_fake_a")
	if g1 == g2 {
		t.Error("Create should return a fresh instance each call")
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })
}
