package yay

import "testing"

func TestWalkVisitsRootWithEmptyPath(t *testing.T) {
	var paths []string
	Walk(NewInt(false, "1"), func(path string, v Value) bool {
		paths = append(paths, path)
		return true
	})
	if len(paths) != 1 || paths[0] != "" {
		t.Errorf("paths = %v, want one empty-path visit", paths)
	}
}

func TestWalkBuildsBareIdentifierPaths(t *testing.T) {
	v := NewMap([]Pair{{Key: "name", Value: NewString("ok")}})
	var paths []string
	Walk(v, func(path string, val Value) bool {
		paths = append(paths, path)
		return true
	})
	want := []string{"", ".name"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkQuotesNonBareIdentifierKeys(t *testing.T) {
	v := NewMap([]Pair{{Key: "a b", Value: NewString("ok")}})
	var paths []string
	Walk(v, func(path string, val Value) bool {
		paths = append(paths, path)
		return true
	})
	if paths[1] != `["a b"]` {
		t.Errorf("paths[1] = %q, want %q", paths[1], `["a b"]`)
	}
}

func TestWalkBuildsArrayIndexPaths(t *testing.T) {
	v := NewArray([]Value{NewString("x"), NewString("y")})
	var paths []string
	Walk(v, func(path string, val Value) bool {
		paths = append(paths, path)
		return true
	})
	want := []string{"", "[0]", "[1]"}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkSkipsChildrenWhenVisitReturnsFalse(t *testing.T) {
	v := NewMap([]Pair{{Key: "nested", Value: NewMap([]Pair{{Key: "deep", Value: NewString("x")}})}})
	var paths []string
	Walk(v, func(path string, val Value) bool {
		paths = append(paths, path)
		return path == ""
	})
	want := []string{"", ".nested"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
}
