package codegen

import "strings"

// indentUnit is the two-character indentation step multiplied by depth.
const indentUnit = "  "

// Expand substitutes {name} tokens in template using resolve. The text is
// scanned exactly once: substituted values are emitted verbatim and never
// re-scanned, so a value that itself looks like a token stays literal.
// Tokens resolve cannot answer are left as written.
func Expand(template string, resolve func(name string) (string, bool)) string {
	var out strings.Builder
	out.Grow(len(template))

	for i := 0; i < len(template); {
		if template[i] != '{' {
			out.WriteByte(template[i])
			i++
			continue
		}
		j := i + 1
		for j < len(template) && isTokenChar(template[j]) {
			j++
		}
		if j > i+1 && j < len(template) && template[j] == '}' {
			if value, ok := resolve(template[i+1 : j]); ok {
				out.WriteString(value)
				i = j + 1
				continue
			}
		}
		out.WriteByte(template[i])
		i++
	}
	return out.String()
}

// ExpandMap is Expand with a fixed lookup table.
func ExpandMap(template string, vars map[string]string) string {
	return Expand(template, func(name string) (string, bool) {
		value, ok := vars[name]
		return value, ok
	})
}

func isTokenChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// indentLines prefixes every non-blank line of text with level indent units.
// Blank lines stay blank rather than picking up trailing whitespace.
func indentLines(text string, level int) string {
	if text == "" || level <= 0 {
		return text
	}
	prefix := strings.Repeat(indentUnit, level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
