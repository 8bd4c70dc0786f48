package desktop

import "strings"

// Substitution holds the values Rewrite writes into an entry.
type Substitution struct {
	Exec string // absolute path of the installed binary
	Icon string // absolute path of the installed icon, or the binary as fallback
}

// stripKeys are dropped from rewritten entries; they point into the
// extraction tree, which no longer exists after install.
var stripKeys = map[string]bool{
	"tryexec": true,
	"path":    true,
}

// Rewrite returns a copy of lines with:
//   - TryExec and Path lines removed,
//   - the command token of every Exec line replaced by sub.Exec, arguments kept,
//   - every Icon value replaced by sub.Icon,
//   - an Icon line added at the end of the [Desktop Entry] group if it had none.
//
// All other lines are copied unchanged and in order. Replaced lines keep a
// trailing carriage return, so CRLF entries stay CRLF.
func Rewrite(lines []string, sub Substitution) []string {
	out := make([]string, 0, len(lines)+1)

	inMain, mainIcon := false, false
	mainLast := -1 // index in out of the last non-blank line of the main group
	cr := ""       // line ending suffix of the main group
	for _, line := range lines {
		if name, ok := groupHeader(line); ok {
			inMain = name == MainGroup
			out = append(out, line)
			if inMain {
				mainLast = len(out) - 1
				cr = carriageReturn(line)
			}
			continue
		}

		if key, value, ok := keyValue(line); ok {
			k := strings.ToLower(key)
			if stripKeys[k] {
				continue
			}
			switch k {
			case "exec":
				line = "Exec=" + replaceCommand(value, sub.Exec) + carriageReturn(line)
			case "icon":
				line = "Icon=" + sub.Icon + carriageReturn(line)
				mainIcon = mainIcon || inMain
			}
		}

		out = append(out, line)
		if inMain && strings.TrimSpace(line) != "" {
			mainLast = len(out) - 1
			cr = carriageReturn(line)
		}
	}

	if mainIcon {
		return out
	}
	icon := "Icon=" + sub.Icon + cr
	if mainLast < 0 {
		return append(out, icon)
	}
	out = append(out, "")
	copy(out[mainLast+2:], out[mainLast+1:])
	out[mainLast+1] = icon
	return out
}

func replaceCommand(exec, path string) string {
	_, args := splitCommand(exec)
	if args == "" {
		return quoteCommand(path)
	}
	return quoteCommand(path) + " " + args
}

func carriageReturn(line string) string {
	if strings.HasSuffix(line, "\r") {
		return "\r"
	}
	return ""
}
