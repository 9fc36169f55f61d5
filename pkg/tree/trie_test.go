package tree

import (
	"slices"
	"testing"
)

func TestBuild_SharedPrefixes(t *testing.T) {
	trie := Build([]string{"ab", "ac", "abcd"})

	// Root carries the empty string and one child per first letter.
	if trie.Value() != "" {
		t.Errorf("root value = %q, want empty", trie.Value())
	}
	kids := trie.Children()
	if len(kids) != 1 {
		t.Fatalf("root has %d children, want 1", len(kids))
	}
	a := kids[0]
	if a.Value() != "a" {
		t.Errorf("first child = %q, want %q", a.Value(), "a")
	}
	if got := len(a.Children()); got != 2 {
		t.Errorf("node a has %d children, want 2 (b, c)", got)
	}
}

func TestBuild_ChildOrderIsInsertionOrder(t *testing.T) {
	trie := Build([]string{"cb", "ab", "bb"})

	var order []string
	for _, c := range trie.Children() {
		order = append(order, c.Value())
	}
	want := []string{"c", "a", "b"}
	if !slices.Equal(order, want) {
		t.Errorf("child order = %v, want %v", order, want)
	}
}

func TestInsert_MarksWordEnds(t *testing.T) {
	trie := Build([]string{"ab", "abcd"})

	// "ab"'s b node terminates a word but still has children.
	b := trie.Children()[0].Children()[0]
	if !b.Leaf() {
		t.Error("node ending a word should be a leaf")
	}
	if len(b.Children()) == 0 {
		t.Error("word-end node with longer words should keep its children")
	}
}

func TestContains(t *testing.T) {
	trie := Build([]string{"ab", "abcd"})

	cases := []struct {
		word string
		want bool
	}{
		{"ab", true},
		{"abcd", true},
		{"a", false},
		{"abc", false},
		{"zzz", false},
	}
	for _, tc := range cases {
		if got := trie.Contains(tc.word); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestSize(t *testing.T) {
	// root, a, b, c (under a), c (under b)
	trie := Build([]string{"ab", "ac", "abc"})
	if got := trie.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"banana", "", "Apple", " apple ", "cherry", "  "})
	want := []string{"APPLE", "BANANA", "CHERRY"}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
}
