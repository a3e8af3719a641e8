package application

import (
	"strings"
	"testing"
)

func newAliasFixture() (*AliasService, *TeamService, *memoryRepo) {
	repo := newMemoryRepo()
	teams := NewTeamService(repo)
	aliases := NewAliasService(repo, teams)
	return aliases, teams, repo
}

func TestAliasService_CreateAndResolve(t *testing.T) {
	aliases, _, _ := newAliasFixture()

	if err := aliases.Create("daryl", 100); err != nil {
		t.Fatalf("Create: %v", err)
	}

	id, ok, err := aliases.Resolve("daryl")
	if err != nil || !ok || id != 100 {
		t.Errorf("Resolve(daryl) = %d %v %v", id, ok, err)
	}

	// Numeric identifiers bypass the book.
	id, ok, err = aliases.Resolve("555")
	if err != nil || !ok || id != 555 {
		t.Errorf("Resolve(555) = %d %v %v", id, ok, err)
	}

	if _, ok, _ := aliases.Resolve("ghost"); ok {
		t.Error("unknown alias should not resolve")
	}
}

func TestAliasService_RemoveRefusedWhileInTeam(t *testing.T) {
	aliases, teams, _ := newAliasFixture()

	if err := aliases.Create("daryl", 100); err != nil {
		t.Fatal(err)
	}
	if err := teams.Create("backend"); err != nil {
		t.Fatal(err)
	}
	if err := teams.AddMember("backend", "daryl", aliases); err != nil {
		t.Fatal(err)
	}

	err := aliases.Remove("daryl")
	if err == nil {
		t.Fatal("expected removal to be refused while a team uses the alias")
	}
	if !strings.Contains(err.Error(), "backend") {
		t.Errorf("error should name the team: %v", err)
	}

	if err := teams.RemoveMember("backend", "daryl"); err != nil {
		t.Fatal(err)
	}
	if err := aliases.Remove("daryl"); err != nil {
		t.Errorf("Remove after leaving team: %v", err)
	}
}

func TestTeamService_AddMemberRequiresAlias(t *testing.T) {
	aliases, teams, _ := newAliasFixture()

	if err := teams.Create("backend"); err != nil {
		t.Fatal(err)
	}
	if err := teams.AddMember("backend", "ghost", aliases); err == nil {
		t.Error("expected error adding unregistered alias")
	}

	if err := aliases.Create("daryl", 100); err != nil {
		t.Fatal(err)
	}
	if err := teams.AddMember("backend", "daryl", aliases); err != nil {
		t.Errorf("AddMember: %v", err)
	}

	members, ok, err := teams.Members("backend")
	if err != nil || !ok || len(members) != 1 || members[0] != "daryl" {
		t.Errorf("Members = %v %v %v", members, ok, err)
	}
}

func TestTeamService_DeleteLeavesAliases(t *testing.T) {
	aliases, teams, _ := newAliasFixture()

	if err := aliases.Create("daryl", 100); err != nil {
		t.Fatal(err)
	}
	if err := teams.Create("backend"); err != nil {
		t.Fatal(err)
	}
	if err := teams.AddMember("backend", "daryl", aliases); err != nil {
		t.Fatal(err)
	}

	if err := teams.Delete("backend"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok, _ := aliases.Resolve("daryl"); !ok {
		t.Error("deleting a team must not delete its aliases")
	}
	if _, ok, _ := teams.Members("backend"); ok {
		t.Error("team should be gone")
	}
}
