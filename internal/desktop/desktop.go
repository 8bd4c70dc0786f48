// Package desktop reads and rewrites freedesktop menu entry files.
//
// Entries are kept as their original ordered lines. Parse extracts the few keys
// the installer cares about, and Rewrite transforms the lines in place, so keys,
// comments and formatting the bundle author wrote survive untouched.
package desktop

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// MainGroup is the only group whose keys are honoured.
const MainGroup = "Desktop Entry"

// DefaultName is used when the entry has no Name key.
const DefaultName = "AppImageApp"

// ErrFormat is returned for entries that cannot be used.
var ErrFormat = errors.New("invalid desktop entry")

// Entry is a parsed menu entry file.
type Entry struct {
	Name  string
	Icon  string // empty when the entry declares no icon
	Exec  string
	Lines []string
}

// ParseFile reads and parses the entry file at path.
func ParseFile(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	e, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// Parse reads the recognized keys from the [Desktop Entry] group of text.
// Keys are matched case-insensitively and the first occurrence wins.
func Parse(text string) (*Entry, error) {
	e := &Entry{Lines: SplitLines(text)}

	var inMain, sawMain, sawName bool
	var sawIcon, sawExec bool
	for _, line := range e.Lines {
		if name, ok := groupHeader(line); ok {
			inMain = name == MainGroup
			sawMain = sawMain || inMain
			continue
		}
		if !inMain {
			continue
		}
		key, value, ok := keyValue(line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "name":
			if !sawName {
				e.Name, sawName = value, true
			}
		case "icon":
			if !sawIcon {
				e.Icon, sawIcon = value, true
			}
		case "exec":
			if !sawExec {
				e.Exec, sawExec = value, true
			}
		}
	}

	if !sawMain {
		return nil, fmt.Errorf("%w: no [%s] group", ErrFormat, MainGroup)
	}
	if e.Name == "" {
		e.Name = DefaultName
	}
	return e, nil
}

// SplitLines splits text into lines without their terminators.
func SplitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines; the result ends with a newline.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Command returns the program token of an Exec value: the first
// whitespace-delimited token, or the contents of a leading double-quoted one.
func Command(exec string) string {
	cmd, _ := splitCommand(exec)
	return cmd
}

func groupHeader(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

func keyValue(line string) (key, value string, ok bool) {
	s := strings.TrimSpace(line)
	if s == "" || s[0] == '#' {
		return "", "", false
	}
	key, value, ok = strings.Cut(s, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

func splitCommand(exec string) (cmd, rest string) {
	s := strings.TrimLeftFunc(exec, unicode.IsSpace)
	if strings.HasPrefix(s, `"`) {
		var sb strings.Builder
		for i := 1; i < len(s); i++ {
			switch c := s[i]; {
			case c == '\\' && i+1 < len(s):
				i++
				sb.WriteByte(s[i])
			case c == '"':
				return sb.String(), strings.TrimLeftFunc(s[i+1:], unicode.IsSpace)
			default:
				sb.WriteByte(c)
			}
		}
		// unterminated quote: treat the remainder as the command
		return sb.String(), ""
	}
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// quoteCommand quotes path for an Exec value when it contains characters
// that would split or be expanded.
func quoteCommand(path string) string {
	if !strings.ContainsAny(path, " \t\"'\\$`") {
		return path
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range path {
		switch r {
		case '"', '`', '$', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
