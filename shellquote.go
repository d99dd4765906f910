package subprocrun

import "strings"

// shellEscapeArgv renders argv as a POSIX-shell-safe, space-joined string
// for diagnostics (the Verbose sink and ResultModel.Description). No
// library in the retrieved pack offers shell quoting; this is the one
// deliberately hand-rolled piece of the ambient stack, see DESIGN.md.
func shellEscapeArgv(argv []string) string {
	escaped := make([]string, len(argv))
	for i, a := range argv {
		escaped[i] = shellEscape(a)
	}
	return strings.Join(escaped, " ")
}

func shellEscape(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
