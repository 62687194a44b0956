// Package langdetect guesses the language of code block contents so that
// blocks without an info string can be given one.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned by Detect when no language can be determined.
const Unknown = "text"

// classifierCandidates limits the enry classifier to languages commonly
// found in Markdown documentation.
//
//nolint:gochecknoglobals // read-only lookup table
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// detector reports a language for code, or "" when it does not recognize it.
type detector func(code []byte) string

// patternDetectors run in order of specificity before the classifier.
//
//nolint:gochecknoglobals // read-only lookup table
var patternDetectors = []detector{
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

// Guess returns a fence tag for code and whether one was found with
// confidence. Blank code is never guessed.
func Guess(code string) (string, bool) {
	content := []byte(code)
	if len(bytes.TrimSpace(content)) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang), true
	}

	for _, detect := range patternDetectors {
		if lang := detect(content); lang != "" {
			return lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang), true
	}

	return "", false
}

// Detect returns the fence tag for content, or Unknown.
func Detect(content []byte) string {
	if lang, ok := Guess(string(content)); ok {
		return lang
	}
	return Unknown
}

func detectGo(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if bytes.HasPrefix(trimmed, []byte("package ")) || bytes.Contains(code, []byte(":= ")) &&
		bytes.Contains(code, []byte("func ")) {
		return "go"
	}
	return ""
}

func detectPython(code []byte) string {
	s := string(code)
	switch {
	case strings.Contains(s, "def ") && strings.Contains(s, "):"):
		return "python"
	case strings.Contains(s, "__name__"), strings.Contains(s, "__main__"):
		return "python"
	case strings.HasPrefix(strings.TrimSpace(s), "import ") && !strings.Contains(s, "import ("),
		strings.Contains(s, "from ") && strings.Contains(s, " import "):
		return "python"
	}
	return ""
}

func detectHTML(code []byte) string {
	lower := bytes.ToLower(bytes.TrimSpace(code))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return "html"
		}
	}
	return ""
}

func detectJSON(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return "json"
	}
	return ""
}

func detectDockerfile(code []byte) string {
	if bytes.HasPrefix(bytes.TrimSpace(code), []byte("FROM ")) ||
		(bytes.Contains(code, []byte("\nFROM ")) && bytes.Contains(code, []byte("\nRUN "))) ||
		(bytes.Contains(code, []byte("WORKDIR ")) && bytes.Contains(code, []byte("COPY "))) {
		return "dockerfile"
	}
	return ""
}

func detectSQL(code []byte) string {
	upper := strings.ToUpper(strings.TrimSpace(string(code)))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return "sql"
		}
	}
	return ""
}

func detectRust(code []byte) string {
	s := string(code)
	if strings.Contains(s, "fn main()") || strings.Contains(s, "println!") || strings.Contains(s, "let mut ") {
		return "rust"
	}
	return ""
}

func detectJavaScript(code []byte) string {
	s := string(code)
	if strings.Contains(s, "=>") || strings.Contains(s, "const ") ||
		strings.Contains(s, "let ") || strings.Contains(s, "console.log") {
		return "javascript"
	}
	return ""
}

// detectYAML needs at least two key: value pairs or root-level list items.
func detectYAML(code []byte) string {
	keys := 0
	for line := range bytes.SplitSeq(code, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	if keys >= 2 {
		return "yaml"
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
