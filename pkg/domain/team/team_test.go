package team

import "testing"

func TestCreateAndDelete(t *testing.T) {
	var teams Teams
	if err := teams.Create("backend"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := teams.Create("backend"); err == nil {
		t.Error("expected error creating duplicate team")
	}
	if err := teams.Create("bad name"); err == nil {
		t.Error("expected error for invalid team name")
	}
	if err := teams.Delete("backend"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := teams.Delete("backend"); err == nil {
		t.Error("expected error deleting missing team")
	}
}

func TestMembers_MissingVsEmpty(t *testing.T) {
	var teams Teams
	if _, ok := teams.Members("ghost"); ok {
		t.Error("missing team should report ok=false")
	}

	if err := teams.Create("backend"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	members, ok := teams.Members("backend")
	if !ok {
		t.Fatal("existing team should report ok=true")
	}
	if members == nil {
		t.Error("existing empty team should return non-nil slice")
	}
	if len(members) != 0 {
		t.Errorf("expected no members, got %v", members)
	}
}

func TestAddAndRemoveMember(t *testing.T) {
	var teams Teams
	if err := teams.Create("backend"); err != nil {
		t.Fatal(err)
	}

	if err := teams.AddMember("backend", "Daryl"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	members, _ := teams.Members("backend")
	if len(members) != 1 || members[0] != "daryl" {
		t.Errorf("members = %v, want [daryl]", members)
	}

	if err := teams.AddMember("backend", "DARYL"); err == nil {
		t.Error("expected error adding duplicate member")
	}
	if err := teams.AddMember("ghost", "daryl"); err == nil {
		t.Error("expected error adding to missing team")
	}

	if err := teams.RemoveMember("backend", "daryl"); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if err := teams.RemoveMember("backend", "daryl"); err == nil {
		t.Error("expected error removing missing member")
	}
}

func TestTeamsContaining(t *testing.T) {
	teams := Teams{Teams: map[string][]string{
		"backend":  {"daryl", "amy"},
		"platform": {"daryl"},
		"frontend": {"amy"},
	}}

	got := teams.TeamsContaining("DARYL")
	want := []string{"backend", "platform"}
	if len(got) != len(want) {
		t.Fatalf("TeamsContaining = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TeamsContaining[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := teams.TeamsContaining("nobody"); len(got) != 0 {
		t.Errorf("TeamsContaining(nobody) = %v, want empty", got)
	}
}
