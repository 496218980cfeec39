package overlay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRCFileRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		seed    map[string]string
		want    map[string]string
		wantErr string
	}{
		{
			name: "assignments and comments",
			content: `
# a comment
A=1
B=two words are a syntax error unless quoted
`,
			wantErr: "unexpected text",
		},
		{
			name:    "bare value stops at whitespace comment",
			content: "A=value # trailing comment\n",
			want:    map[string]string{"A": "value"},
		},
		{
			name:    "single quotes are literal",
			content: "A='$B and spaces'\nB=x\n",
			want:    map[string]string{"A": "$B and spaces", "B": "x"},
		},
		{
			name:    "double quotes substitute",
			content: "A=\"<$B> <${B}>\"\n",
			seed:    map[string]string{"B": "val"},
			want:    map[string]string{"A": "<val> <val>", "B": "val"},
		},
		{
			name:    "bare value substitutes",
			content: "A=$B/suffix\n",
			seed:    map[string]string{"B": "pre"},
			want:    map[string]string{"A": "pre/suffix", "B": "pre"},
		},
		{
			name:    "unknown variable expands empty",
			content: "A=<$MISSING>\n",
			want:    map[string]string{"A": "<>"},
		},
		{
			name:    "later lines see earlier assignments",
			content: "A=one\nB=$A-two\n",
			want:    map[string]string{"A": "one", "B": "one-two"},
		},
		{
			name:    "assignment overrides seeded value",
			content: "A=new\n",
			seed:    map[string]string{"A": "old"},
			want:    map[string]string{"A": "new"},
		},
		{
			name:    "escapes in double quotes",
			content: `A="a \"b\" \$literal"` + "\n",
			want:    map[string]string{"A": `a "b" $literal`},
		},
		{
			name:    "concatenated segments",
			content: "A='one '\"two \"three\n",
			want:    map[string]string{"A": "one two three"},
		},
		{
			name:    "lone dollar is literal",
			content: "A=100$\n",
			want:    map[string]string{"A": "100$"},
		},
		{
			name:    "unterminated quote",
			content: "A='oops\n",
			wantErr: "unterminated single quote",
		},
		{
			name:    "missing equals",
			content: "JUSTAWORD\n",
			wantErr: "expected NAME=value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "test.rc", tt.content)
			merge := map[string]string{}
			for k, v := range tt.seed {
				merge[k] = v
			}
			err := RCFile{}.Read(path, merge)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("Read succeeded, want error")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			for k, v := range tt.want {
				if merge[k] != v {
					t.Errorf("%s = %q, want %q", k, merge[k], v)
				}
			}
		})
	}
}

func TestRCFileMissingIsNoChanges(t *testing.T) {
	merge := map[string]string{"A": "kept"}
	if err := (RCFile{}).Read("/nonexistent/path.rc", merge); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if merge["A"] != "kept" {
		t.Errorf("A = %q, want %q", merge["A"], "kept")
	}
}

func TestRCFileSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.rc", "FROM_BASE=yes\nSHARED=base\n")
	main := writeFile(t, dir, "main.rc", "source base.rc\nSHARED=main\n")

	merge := map[string]string{}
	if err := (RCFile{}).Read(main, merge); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if merge["FROM_BASE"] != "yes" {
		t.Errorf("FROM_BASE = %q, want %q", merge["FROM_BASE"], "yes")
	}
	if merge["SHARED"] != "main" {
		t.Errorf("SHARED = %q, want %q", merge["SHARED"], "main")
	}
}

func TestRCFileDotSourceWithSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "inc.rc", "GOT=1\n")
	main := writeFile(t, dir, "main.rc", "NAME=inc\n. $NAME.rc\n")

	merge := map[string]string{}
	if err := (RCFile{}).Read(main, merge); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if merge["GOT"] != "1" {
		t.Errorf("GOT = %q, want %q", merge["GOT"], "1")
	}
}

func TestRCFileSourceMissingIsIgnored(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.rc", "source not-there.rc\nA=1\n")

	merge := map[string]string{}
	if err := (RCFile{}).Read(main, merge); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if merge["A"] != "1" {
		t.Errorf("A = %q, want %q", merge["A"], "1")
	}
}

func TestRCFileErrorsCarryLineNumbers(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.rc", "A=1\nB='oops\n")

	err := RCFile{}.Read(path, map[string]string{})
	if err == nil {
		t.Fatal("Read succeeded, want error")
	}
	if !strings.Contains(err.Error(), "bad.rc:2:") {
		t.Errorf("error %q does not carry file:line", err)
	}
}
