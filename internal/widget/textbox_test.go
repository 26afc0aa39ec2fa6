package widget

import "testing"

func typeKeys(tb *TextBox, keys ...Key) {
	for _, k := range keys {
		tb.OnCharTyped(k)
	}
}

func TestTextBoxTyping(t *testing.T) {
	tests := []struct {
		name    string
		blocked []string
		limit   int
		keys    []Key
		want    string
	}{
		{
			name: "plain",
			keys: []Key{Char('n'), Char('a'), {Code: KeySpace}, Char('1')},
			want: "na 1",
		},
		{
			name:  "limit",
			limit: 3,
			keys:  []Key{Char('a'), Char('b'), Char('c'), Char('d')},
			want:  "abc",
		},
		{
			name:    "blocked",
			blocked: []string{"|", "x"},
			keys:    []Key{Char('a'), Char('x'), Char('b')},
			want:    "ab",
		},
		{
			name: "backspace",
			keys: []Key{Char('a'), Char('b'), {Code: KeyBackspace}, {Code: KeyBackspace}, {Code: KeyBackspace}},
			want: "",
		},
		{
			name: "special keys ignored",
			keys: []Key{Char('a'), {Code: KeyEnter}, {Code: KeyTab}, {Code: KeyEscape}},
			want: "a",
		},
		{
			name: "shift table",
			keys: []Key{{Code: KeyShift}, Char('1'), Char('a'), Char('/')},
			want: "!A?",
		},
		{
			name:    "shifted result blocked",
			blocked: []string{"|"},
			keys:    []Key{{Code: KeyShift}, Char('\\'), Char('b')},
			want:    "B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := NewTextBox(0, 0, 100, 25, nil, nil, tt.blocked, tt.limit)
			typeKeys(tb, tt.keys...)
			if tb.Text() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tb.Text())
			}
		})
	}
}

func TestTextBoxShiftRelease(t *testing.T) {
	tb := NewTextBox(0, 0, 100, 25, nil, nil, nil, 0)
	typeKeys(tb, Key{Code: KeyShift}, Char('a'))
	tb.OnKeyUp(Key{Code: KeyShift})
	typeKeys(tb, Char('a'))
	if tb.Text() != "Aa" {
		t.Errorf("expected Aa, got %q", tb.Text())
	}
}

func TestTextBoxFocus(t *testing.T) {
	group := &FocusGroup{}
	name := NewTextBox(0, 0, 100, 25, nil, group, nil, 15)
	work := NewTextBox(0, 40, 100, 25, nil, group, nil, 5)

	if !name.Focused() || work.Focused() {
		t.Fatal("first box should start focused")
	}

	click := func(x, y float64) {
		name.OnClick(x, y)
		work.OnClick(x, y)
	}

	click(10, 50)
	if name.Focused() || !work.Focused() {
		t.Fatal("expected focus to move to the second box")
	}
	typeKeys(name, Char('a'))
	typeKeys(work, Char('3'))
	if name.Text() != "" || work.Text() != "3" {
		t.Errorf("unfocused box accepted input: %q %q", name.Text(), work.Text())
	}

	click(500, 500)
	if group.Focused() != nil {
		t.Error("clicking elsewhere should clear focus")
	}
}

func TestUnshifted(t *testing.T) {
	tests := []struct {
		in, want string
		ok       bool
	}{
		{"A", "a", true},
		{"!", "1", true},
		{"|", "\\", true},
		{"a", "a", false},
		{"5", "5", false},
	}
	for _, tt := range tests {
		got, ok := Unshifted(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Unshifted(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
		if ok && Shifted(got) != tt.in {
			t.Errorf("Shifted(%q) = %q, want %q", got, Shifted(got), tt.in)
		}
	}
}
