package css

import "testing"

func TestHyphenate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"color", "color"},
		{"backgroundColor", "background-color"},
		{"borderTopLeftRadius", "border-top-left-radius"},
		{"WebkitTransform", "-webkit-transform"},
		{"msOverflowStyle", "-ms-overflow-style"},
	}
	for _, c := range cases {
		if got := hyphenate(c.in); got != c.want {
			t.Errorf("hyphenate(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestInterpolate(t *testing.T) {
	cases := []struct {
		key, parent, want string
	}{
		{".foo", ".x", ".x .foo"},
		{"&:hover", ".x", ".x:hover"},
		{"& + &", ".x", ".x + .x"},
		{"ul li", ".x", ".x ul li"},
	}
	for _, c := range cases {
		if got := interpolate(c.key, c.parent); got != c.want {
			t.Errorf("interpolate(%q, %q): expected %q, got %q", c.key, c.parent, c.want, got)
		}
	}
}

func TestCompileLayer_SortsProperties(t *testing.T) {
	l := compileTree(Tree{"color": "red", "background": "blue"})
	if l.text != "background:blue;color:red;" {
		t.Errorf("expected sorted declarations, got %q", l.text)
	}
}

func TestCompileLayer_KeyOrderIrrelevant(t *testing.T) {
	a := compileTree(Tree{"background": "blue", "color": "red"})
	b := compileTree(Tree{"color": "red", "background": "blue"})
	if a.text != b.text {
		t.Errorf("expected identical text, got %q vs %q", a.text, b.text)
	}
}

func TestCompileLayer_ArrayFallbackChain(t *testing.T) {
	l := compileTree(Tree{"background": []any{"red", "linear-gradient(to right, red 0%, green 100%)"}})
	want := "background:red;background:linear-gradient(to right, red 0%, green 100%);"
	if l.text != want {
		t.Errorf("expected %q, got %q", want, l.text)
	}
}

func TestCompileLayer_NilValueOmitted(t *testing.T) {
	l := compileTree(Tree{"color": nil, "margin": "0"})
	if l.text != "margin:0;" {
		t.Errorf("expected nil property to vanish, got %q", l.text)
	}
}

func TestCompileLayer_NumbersKeepNoUnit(t *testing.T) {
	l := compileTree(Tree{"lineHeight": 1.5, "zIndex": 10, "flexGrow": 0})
	want := "flex-grow:0;line-height:1.5;z-index:10;"
	if l.text != want {
		t.Errorf("expected %q, got %q", want, l.text)
	}
}

func TestCompileLayer_TrimsKeys(t *testing.T) {
	l := compileTree(Tree{"  color  ": "red"})
	if l.text != "color:red;" {
		t.Errorf("expected trimmed key, got %q", l.text)
	}
}

func TestCompileLayer_SplitsNestedFromProperties(t *testing.T) {
	l := compileTree(Tree{
		"color":        "red",
		".foo":         Tree{"color": "blue"},
		"@media print": map[string]any{"color": "green"},
	})
	if l.text != "color:red;" {
		t.Errorf("expected only scalar properties in text, got %q", l.text)
	}
	if len(l.nested) != 2 {
		t.Fatalf("expected 2 nested layers, got %d", len(l.nested))
	}
	// sorted key order: ".foo" before "@media print"
	if l.nested[0].key != ".foo" || l.nested[1].key != "@media print" {
		t.Errorf("unexpected nested order: %q, %q", l.nested[0].key, l.nested[1].key)
	}
}

func TestCompileLayer_DisplayNameDirective(t *testing.T) {
	l := compileTree(Tree{DisplayName: "Button", "color": "red"})
	if l.displayName != "Button" {
		t.Errorf("expected display name 'Button', got %q", l.displayName)
	}
	if l.text != "color:red;" {
		t.Errorf("expected directives excluded from declarations, got %q", l.text)
	}
}

func TestCompileLayer_OddScalarsStringified(t *testing.T) {
	// malformed values pass through to stringification, never rejected
	l := compileTree(Tree{"content": true})
	if l.text != "content:true;" {
		t.Errorf("expected permissive stringification, got %q", l.text)
	}
}
