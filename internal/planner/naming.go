package planner

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Marker names written into a preview entry when derivation fails.
const (
	RegexErrorName      = "[regex error]"
	UnreadableImageName = "[unreadable image]"
	unknownCameraModel  = "UnknownCamera"
)

const dateLayout = "20060102_150405"

var nonModelChars = regexp.MustCompile(`[^\p{L}\p{N}_\-]`)

// splitExt splits a base name into stem and extension. A name whose only dot
// is the leading one (".env") has no extension.
func splitExt(base string) (string, string) {
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return base, ""
	}
	idx += len(base) - len(trimmed)
	return base[:idx], base[idx:]
}

// zeroPad formats n with at least width digits.
func zeroPad(n, width int) string {
	if width <= 0 {
		return strconv.Itoa(n)
	}
	if n < 0 {
		return "-" + zeroPad(-n, width-1)
	}
	return fmt.Sprintf("%0*d", width, n)
}

// sanitizeModel turns a camera model into a filename fragment.
func sanitizeModel(model string) string {
	model = strings.TrimSpace(strings.TrimRight(model, "\x00"))
	if model == "" {
		model = unknownCameraModel
	}
	return nonModelChars.ReplaceAllString(strings.ReplaceAll(model, " ", "_"), "")
}

// replacementEscapes are the character escapes a replacement template may use.
var replacementEscapes = map[byte]byte{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v', '\\': '\\',
}

// expandReplacement converts a replacement template that uses backslash
// group references (\1, \g<1>, \g<name>) into the ${...} form understood by
// regexp.Expand. Literal dollar signs are escaped.
//
// Every reference must name a group of re. An unknown escape of an ASCII
// letter, a dangling backslash or an unterminated \g< is an error; other
// unknown escapes such as \. are kept as written.
func expandReplacement(repl string, re *regexp.Regexp) (string, error) {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c == '$' {
			b.WriteString("$$")
			continue
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(repl) {
			return "", fmt.Errorf("bad escape at end of replacement")
		}

		next := repl[i+1]
		switch {
		case next >= '0' && next <= '9':
			j := i + 2
			if j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}
			ref := repl[i+1 : j]
			if err := checkGroup(re, ref); err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "${%s}", ref)
			i = j - 1
		case next == 'g':
			if i+2 >= len(repl) || repl[i+2] != '<' {
				return "", fmt.Errorf("missing < after \\g")
			}
			end := strings.IndexByte(repl[i+3:], '>')
			if end < 0 {
				return "", fmt.Errorf("missing > in group reference")
			}
			ref := repl[i+3 : i+3+end]
			if err := checkGroup(re, ref); err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "${%s}", ref)
			i += 3 + end
		default:
			if esc, ok := replacementEscapes[next]; ok {
				b.WriteByte(esc)
				i++
				continue
			}
			if (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
				return "", fmt.Errorf("bad escape \\%c", next)
			}
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// checkGroup reports whether ref, a group number or name, exists in re.
func checkGroup(re *regexp.Regexp, ref string) error {
	if ref == "" {
		return fmt.Errorf("missing group name")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 0 || n > re.NumSubexp() {
			return fmt.Errorf("invalid group reference %d", n)
		}
		return nil
	}
	if re.SubexpIndex(ref) < 0 {
		return fmt.Errorf("unknown group name %q", ref)
	}
	return nil
}

// substitute applies pattern to name, replacing every match. Both the
// pattern and the replacement template are validated before any match.
func substitute(pattern, replacement, name string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", err
	}
	template, err := expandReplacement(replacement, re)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllString(name, template), nil
}

// parentName returns the immediate parent directory name of path.
func parentName(path string) string {
	return filepath.Base(filepath.Dir(path))
}

// SplitExt splits a base name into stem and extension the same way the
// planner does. A leading-dot-only name has no extension.
func SplitExt(base string) (string, string) {
	return splitExt(base)
}
