package main

import "testing"

func TestParseArgsFile(t *testing.T) {
	a, err := ParseArgs([]string{"foo.txt", "bar.txt"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if len(a.Ops) != 2 || a.Ops[0].kind != opOpenFile || a.Ops[0].s != "foo.txt" {
		t.Fatalf("got %+v", a.Ops)
	}
	if a.Ops[1].s != "bar.txt" {
		t.Fatalf("got %+v", a.Ops[1])
	}
}

func TestParseArgsStdin(t *testing.T) {
	a, err := ParseArgs([]string{"-"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if len(a.Ops) != 1 || a.Ops[0].kind != opOpenFile || !a.Ops[0].stdin {
		t.Fatalf("got %+v", a.Ops)
	}
}

func TestParseArgsNoStartup(t *testing.T) {
	a, err := ParseArgs([]string{"-n", "file.txt"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !a.NoStartup {
		t.Fatal("expected NoStartup")
	}
	if len(a.Ops) != 1 || a.Ops[0].s != "file.txt" {
		t.Fatalf("got %+v", a.Ops)
	}
}

func TestParseArgsHelp(t *testing.T) {
	for _, tc := range []struct {
		arg  string
		want helpKind
	}{
		{"-?", helpUsage},
		{"-h", helpLong},
		{"-V", helpVersion},
		{"-C", helpCopyright},
	} {
		a, err := ParseArgs([]string{tc.arg})
		if err != nil {
			t.Fatalf("ParseArgs(%s): %v", tc.arg, err)
		}
		if a.Help != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.arg, a.Help, tc.want)
		}
	}
}

func TestParseArgsModeList(t *testing.T) {
	a, err := ParseArgs([]string{"-Dfoo,!bar,baz"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if len(a.Ops) != 1 || a.Ops[0].kind != opMode || a.Ops[0].global {
		t.Fatalf("got %+v", a.Ops)
	}
	modes := a.Ops[0].modes
	if len(modes) != 3 {
		t.Fatalf("got %d modes, want 3", len(modes))
	}
	want := []modeTok{{"foo", true}, {"bar", false}, {"baz", true}}
	for i, m := range want {
		if modes[i] != m {
			t.Fatalf("mode %d: got %+v, want %+v", i, modes[i], m)
		}
	}
}

func TestParseArgsGlobalMode(t *testing.T) {
	a, err := ParseArgs([]string{"-Gregexp"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !a.Ops[0].global {
		t.Fatal("expected global scope for -G")
	}
}

func TestParseArgsGoto(t *testing.T) {
	a, err := ParseArgs([]string{"-g12:5"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	o := a.Ops[0]
	if o.kind != opGoto || o.line != 12 || !o.hasCol || o.col != 5 {
		t.Fatalf("got %+v", o)
	}
}

func TestParseArgsGotoPlusForm(t *testing.T) {
	a, err := ParseArgs([]string{"+7"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	o := a.Ops[0]
	if o.kind != opGoto || o.line != 7 || o.hasCol {
		t.Fatalf("got %+v", o)
	}
}

func TestParseArgsMissingValue(t *testing.T) {
	for _, arg := range []string{"-d", "-e", "-g", "-D", "-G", "-s", "-X"} {
		if _, err := ParseArgs([]string{arg}); err == nil {
			t.Errorf("%s: expected error for missing value", arg)
		}
	}
}

func TestParseArgsUnknownSwitch(t *testing.T) {
	if _, err := ParseArgs([]string{"-z"}); err == nil {
		t.Fatal("expected error for unknown switch")
	}
}

func TestParseArgsRunScript(t *testing.T) {
	a, err := ParseArgs([]string{"@setup"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if a.Ops[0].kind != opRunScript || a.Ops[0].s != "setup" {
		t.Fatalf("got %+v", a.Ops[0])
	}
}

func TestUnescapeDelim(t *testing.T) {
	cases := map[string]string{
		"nl":   "\n",
		"NL":   "\n",
		"cr":   "\r",
		"crlf": "\r\n",
		"x":    "x",
	}
	for in, want := range cases {
		if got := unescapeDelim(in); got != want {
			t.Errorf("unescapeDelim(%q) = %q, want %q", in, got, want)
		}
	}
}
