package rcstore

import (
	"strings"
	"testing"
)

func TestConfigGetBool(t *testing.T) {
	cfg, err := buildWith(t, Options{},
		def("T1", "true"),
		def("T2", "YES"),
		def("T3", "on"),
		def("T4", "1"),
		def("T5", "Y"),
		def("F1", "0"),
		def("F2", ""),
		def("F3", "off"),
		def("F4", "truthy"),
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, key := range []string{"T1", "T2", "T3", "T4", "T5"} {
		if !cfg.GetBool(key) {
			t.Errorf("GetBool(%s) = false, want true", key)
		}
	}
	for _, key := range []string{"F1", "F2", "F3", "F4", "MISSING"} {
		if cfg.GetBool(key) {
			t.Errorf("GetBool(%s) = true, want false", key)
		}
	}
}

func TestConfigGetInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"42", 42},
		{"-7", -7},
		{"+5", 5},
		{" 12 ", 12},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
		{"-", 0},
	}
	for _, tt := range tests {
		cfg, err := buildWith(t, Options{}, def("N", tt.value))
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if got := cfg.GetInt("N"); got != tt.want {
			t.Errorf("GetInt(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestConfigMapIsACopy(t *testing.T) {
	cfg, err := buildWith(t, Options{}, def("A", "a"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m := cfg.Map()
	m["A"] = "mutated"
	if got := cfg.Get("A"); got != "a" {
		t.Errorf("Get(A) = %q after mutating the snapshot, want %q", got, "a")
	}
}

func TestConfigPrefix(t *testing.T) {
	cfg, err := buildWith(t, Options{PrefixKey: "P", AltPrefixKey: "Q"},
		def("P", "pre_"),
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := cfg.Prefix(); got != "pre_" {
		t.Errorf("Prefix() = %q, want %q", got, "pre_")
	}
}

func TestDumpDefaults(t *testing.T) {
	env := func(key string) (string, bool) {
		if key == "CHANGED" {
			return "local", true
		}
		return "", false
	}
	cfg, err := buildWith(t, Options{LookupEnv: env},
		Entry{Key: "PLAIN", Kind: KindString, Default: "same", Description: "stays untouched"},
		Entry{Key: "CHANGED", Kind: KindBoolean, Default: "orig", Description: "two\nlines"},
		def("REF", "%{LOCALKEY}"),
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var b strings.Builder
	if err := cfg.DumpDefaults(&b, false); err != nil {
		t.Fatalf("DumpDefaults: %v", err)
	}
	out := b.String()

	want := "" +
		"# STRING\n" +
		"# stays untouched\n" +
		"PLAIN='same'\n" +
		"\n" +
		"# BOOLEAN\n" +
		"# two\n" +
		"# lines\n" +
		"CHANGED='local'\n" +
		"# changed locally, default was:\n" +
		"# CHANGED='orig'\n" +
		"\n" +
		"# STRING\n" +
		"# \n" +
		"REF='%{LOCALKEY}'\n" +
		"\n" +
		"# locally added:\n" +
		"LOCALKEY=''\n" +
		"\n"
	if out != want {
		t.Errorf("dump output mismatch:\n got: %q\nwant: %q", out, want)
	}

	// With useDefaults the roles of default and local value swap.
	b.Reset()
	if err := cfg.DumpDefaults(&b, true); err != nil {
		t.Fatalf("DumpDefaults: %v", err)
	}
	if !strings.Contains(b.String(), "CHANGED='orig'\n# was locally changed to:\n# CHANGED='local'") {
		t.Errorf("useDefaults dump did not swap roles:\n%s", b.String())
	}
}
