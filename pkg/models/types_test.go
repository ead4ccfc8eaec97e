package models

import "testing"

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"index.html", LangHTML},
		{"old-page.htm", LangHTML},
		{"INDEX.HTML", LangHTML},
		{"style.css", LangCSS},
		{"app.js", LangJavaScript},
		{"package.json", LangJSON},
		{"README.md", LangMarkdown},
		{"tool.py", LangPython},
		{"notes.txt", LangPlainText},
		{"Makefile", LangPlainText},
		{"", LangPlainText},
	}

	for _, tt := range tests {
		if got := LanguageForPath(tt.path); got != tt.want {
			t.Errorf("LanguageForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileLanguage(t *testing.T) {
	f := File{Path: "script.js", Content: "x()"}
	if f.Language() != LangJavaScript {
		t.Errorf("Language() = %v", f.Language())
	}
}
