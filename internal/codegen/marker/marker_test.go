package marker

import "testing"

func TestScan(t *testing.T) {
	tests := []struct {
		line string
		want []Kind
	}{
		{line: "int x = 0;\n", want: nil},
		{line: "", want: nil},
		{line: "  * @file : @@marker:filename\n", want: []Kind{Filename}},
		{line: "@@marker:include", want: []Kind{Include}},
		{line: "/* @@marker:date by @@marker:author */", want: []Kind{Date, Author}},
		{line: "x@@marker:define", want: []Kind{Define}},
		{line: "@@marker:bogus", want: []Kind{"bogus"}},
		{line: "@@marker:", want: []Kind{""}},
	}

	for _, tt := range tests {
		got := Scan(tt.line)
		if len(got) != len(tt.want) {
			t.Fatalf("Scan(%q) returned %d tokens, want %d", tt.line, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].Kind != tt.want[i] {
				t.Errorf("Scan(%q)[%d] = %q, want %q", tt.line, i, got[i].Kind, tt.want[i])
			}
		}
	}
}

func TestKnown(t *testing.T) {
	for _, k := range Kinds {
		if !k.Known() {
			t.Errorf("expected %q to be known", k)
		}
	}
	if Kind("Filename").Known() {
		t.Errorf("marker kinds are case-sensitive")
	}
	if got := (Token{Kind: Date}).Text(); got != "@@marker:date" {
		t.Errorf("Text() = %q", got)
	}
}
