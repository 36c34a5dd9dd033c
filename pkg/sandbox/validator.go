package sandbox

import (
	"regexp"
	"strings"
)

// Static safety screen applied before any code reaches the container. This is
// a token-level scan, not a parser: the container limits are the real
// boundary, the screen just rejects the obvious escapes cheaply.

var bannedPatterns = []string{".env", "config/", "/etc/passwd", "/etc/shadow"}

var bannedModules = map[string]struct{}{
	"os": {}, "subprocess": {}, "sys": {}, "shutil": {}, "socket": {},
	"resource": {}, "pwd": {}, "grp": {}, "ctypes": {},
}

var bannedFunctions = map[string]struct{}{
	"eval": {}, "exec": {}, "open": {}, "compile": {}, "execfile": {},
	"__import__": {}, "exit": {},
}

var bannedMethods = map[string]struct{}{
	"system": {}, "popen": {}, "chdir": {}, "rmdir": {}, "remove": {},
	"unlink": {}, "kill": {}, "connect": {},
}

var (
	importRe   = regexp.MustCompile(`^\s*import\s+([A-Za-z_][A-Za-z0-9_]*)`)
	fromRe     = regexp.MustCompile(`^\s*from\s+([A-Za-z_][A-Za-z0-9_]*)`)
	callRe     = regexp.MustCompile(`(?:^|[^.\w])([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	methodRe   = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	commaSplit = regexp.MustCompile(`\s*,\s*`)
)

// Validate reports whether the submitted source passes the safety screen.
func Validate(code string) bool {
	for _, pattern := range bannedPatterns {
		if strings.Contains(code, pattern) {
			return false
		}
	}

	for _, line := range strings.Split(code, "\n") {
		if m := importRe.FindStringSubmatch(line); m != nil {
			// "import a, b" names every module after the keyword
			rest := strings.TrimPrefix(strings.TrimSpace(line), "import ")
			for _, name := range commaSplit.Split(rest, -1) {
				name = strings.SplitN(strings.TrimSpace(name), " ", 2)[0]
				name = strings.SplitN(name, ".", 2)[0]
				if _, banned := bannedModules[name]; banned {
					return false
				}
			}
		}
		if m := fromRe.FindStringSubmatch(line); m != nil {
			if _, banned := bannedModules[m[1]]; banned {
				return false
			}
		}

		for _, m := range callRe.FindAllStringSubmatch(line, -1) {
			if _, banned := bannedFunctions[m[1]]; banned {
				return false
			}
		}
		for _, m := range methodRe.FindAllStringSubmatch(line, -1) {
			if _, banned := bannedMethods[m[1]]; banned {
				return false
			}
		}
	}

	return true
}
