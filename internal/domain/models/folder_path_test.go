package models

import "testing"

func strPtr(s string) *string { return &s }

func TestComputePath(t *testing.T) {
	tests := []struct {
		name       string
		folderName string
		parentPath *string
		want       string
	}{
		{name: "root folder", folderName: "Work", parentPath: nil, want: "/Work"},
		{name: "child folder", folderName: "Projects", parentPath: strPtr("/Work"), want: "/Work/Projects"},
		{name: "deep child", folderName: "Q1", parentPath: strPtr("/Work/Projects"), want: "/Work/Projects/Q1"},
		{name: "no double separator", folderName: "B", parentPath: strPtr("/A/"), want: "/A/B"},
		{name: "name with spaces", folderName: "My Notes", parentPath: strPtr("/A"), want: "/A/My Notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePath(tt.folderName, tt.parentPath)
			if got != tt.want {
				t.Errorf("ComputePath() = %q, want %q", got, tt.want)
			}
			if NameFromPath(got) != tt.folderName {
				t.Errorf("NameFromPath(%q) = %q, want %q", got, NameFromPath(got), tt.folderName)
			}
		})
	}
}

func TestRebasePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		oldPrefix string
		newPrefix string
		want      string
		wantErr   bool
	}{
		{name: "self", path: "/R/A", oldPrefix: "/R/A", newPrefix: "/R/A2", want: "/R/A2"},
		{name: "child", path: "/R/A/B", oldPrefix: "/R/A", newPrefix: "/R/A2", want: "/R/A2/B"},
		{name: "grandchild", path: "/R/A/B/C", oldPrefix: "/R/A", newPrefix: "/X", want: "/X/B/C"},
		{name: "move to root", path: "/A/B/C", oldPrefix: "/A/B", newPrefix: "/B", want: "/B/C"},
		{name: "sibling sharing a name prefix", path: "/R/AB", oldPrefix: "/R/A", wantErr: true},
		{name: "unrelated path", path: "/Other", oldPrefix: "/R", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RebasePath(tt.path, tt.oldPrefix, tt.newPrefix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RebasePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RebasePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParentPathAndDepth(t *testing.T) {
	tests := []struct {
		path       string
		wantParent string
		wantDepth  int
	}{
		{path: "/General", wantParent: "", wantDepth: 0},
		{path: "/Job/Projects", wantParent: "/Job", wantDepth: 1},
		{path: "/a/b/c", wantParent: "/a/b", wantDepth: 2},
	}

	for _, tt := range tests {
		if got := ParentPath(tt.path); got != tt.wantParent {
			t.Errorf("ParentPath(%q) = %q, want %q", tt.path, got, tt.wantParent)
		}
		if got := PathDepth(tt.path); got != tt.wantDepth {
			t.Errorf("PathDepth(%q) = %d, want %d", tt.path, got, tt.wantDepth)
		}
	}
}

func TestIsDescendantPath(t *testing.T) {
	if !IsDescendantPath("/A/B", "/A") {
		t.Error("expected /A/B to be under /A")
	}
	if IsDescendantPath("/A", "/A") {
		t.Error("a path is not its own descendant")
	}
	if IsDescendantPath("/AB", "/A") {
		t.Error("/AB must not be treated as under /A")
	}
}

func TestFolderIsChildOf(t *testing.T) {
	one, two := int64(1), int64(2)
	root := Folder{ID: 5}
	child := Folder{ID: 6, ParentID: &one}

	if !root.IsChildOf(nil) {
		t.Error("root folder should be a child of the root level")
	}
	if root.IsChildOf(&one) {
		t.Error("root folder is not a child of folder 1")
	}
	if !child.IsChildOf(&one) {
		t.Error("expected child of folder 1")
	}
	if child.IsChildOf(&two) || child.IsChildOf(nil) {
		t.Error("child of folder 1 matched another parent")
	}
}

func TestDescendantRange(t *testing.T) {
	lo, hi := DescendantRange("/A")
	inside := []string{"/A/B", "/A/B/C", "/A/ ", "/A/zzz"}
	outside := []string{"/A", "/AB", "/A B", "/A0", "/A-x", "/B/A"}

	for _, p := range inside {
		if !(lo < p && p < hi) {
			t.Errorf("expected %q inside (%q, %q)", p, lo, hi)
		}
		if !IsDescendantPath(p, "/A") {
			t.Errorf("IsDescendantPath(%q) disagrees with range", p)
		}
	}
	for _, p := range outside {
		if lo < p && p < hi {
			t.Errorf("expected %q outside (%q, %q)", p, lo, hi)
		}
	}
}
