package models

import (
	"path"
	"strings"
)

// Language is the editing mode derived from a file's extension.
type Language string

const (
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangJavaScript Language = "javascript"
	LangJSON       Language = "json"
	LangMarkdown   Language = "markdown"
	LangPython     Language = "python"
	LangPlainText  Language = "plaintext"
)

// LanguageForPath maps a file path to its editing language by extension.
// Unknown extensions fall back to plaintext.
func LanguageForPath(p string) Language {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	switch ext {
	case "html", "htm":
		return LangHTML
	case "css":
		return LangCSS
	case "js":
		return LangJavaScript
	case "json":
		return LangJSON
	case "md":
		return LangMarkdown
	case "py":
		return LangPython
	default:
		return LangPlainText
	}
}

// File is one entry in the virtual project.
type File struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// Language returns the file's editing language.
func (f File) Language() Language {
	return LanguageForPath(f.Path)
}

// Tab marks one open editing slot. It references a store path, it does not
// own the content. Modified is a staleness marker for the UI only: edits are
// written through to the store immediately.
type Tab struct {
	Path     string
	Modified bool
}

// Template is a named, immutable starter bundle of files.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Files       []File `yaml:"files"`
}

// TemplateMeta is the metadata-only view used for gallery listings.
type TemplateMeta struct {
	ID          string
	Name        string
	Description string
	Icon        string
	FileCount   int
}

// Project is the on-disk YAML form of a saved file set.
type Project struct {
	Name  string `yaml:"name"`
	Files []File `yaml:"files"`
}
