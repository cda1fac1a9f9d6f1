package buildcmd

import "testing"

func TestBuildCommandValidateRequiresProjectDir(t *testing.T) {
	cmd := BuildCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when project directory missing")
	}

	cmd.ProjectDir = "family"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when project directory provided: %v", err)
	}
}

func TestBuildCommandValidateRejectsPathLikeNames(t *testing.T) {
	cmd := BuildCommand{ProjectDir: ".", Name: "../secrets"}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error for a build name with path separators")
	}

	cmd.Name = "mcdonald_line"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error for valid name: %v", err)
	}
}

func TestBuildCommandBuildNameDefaultsToFull(t *testing.T) {
	if got := (BuildCommand{}).BuildName(); got != "full" {
		t.Fatalf("expected full, got %q", got)
	}
	if got := (BuildCommand{Name: " family "}).BuildName(); got != "family" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
}
