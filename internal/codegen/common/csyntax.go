package common

import (
	"fmt"
	"strings"
)

// Field is one designated initializer of a C struct literal.
type Field struct {
	Name  string
	Value string
}

// Includes renders quoted #include directives.
func Includes(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, fmt.Sprintf("#include \"%s\"", f))
	}
	return out
}

// Define renders a #define, omitting the value when empty.
func Define(name, value string) string {
	if value == "" {
		return "#define " + name
	}
	return fmt.Sprintf("#define %s %s", name, value)
}

// StructInit renders a struct variable with designated initializers:
//
//	const GPIO_ALLOC GPIO_PA5 = {
//	    .gpio = GPIOA,
//	    .pin = GPIO_PIN_5,
//	};
func StructInit(structType, name string, fields []Field, isConst bool) []string {
	lines := make([]string, 0, len(fields)+2)
	lines = append(lines, fmt.Sprintf("%s%s %s = {", constPrefix(isConst), structType, name))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("    .%s = %s,", f.Name, f.Value))
	}
	return append(lines, "};")
}

// ArrayOpen starts an array literal definition.
func ArrayOpen(elemType, name string, isConst bool) string {
	return fmt.Sprintf("%s%s %s[] = {", constPrefix(isConst), elemType, name)
}

func constPrefix(isConst bool) string {
	if isConst {
		return "const "
	}
	return ""
}

// Indent prefixes every non-empty line with the given number of spaces.
func Indent(spaces int, lines []string) []string {
	prefix := strings.Repeat(" ", spaces)
	out := make([]string, len(lines))
	for i, l := range lines {
		if l != "" {
			l = prefix + l
		}
		out[i] = l
	}
	return out
}

// GuardName builds an include-guard macro from a file name and extension,
// e.g. ("drivers_alloc", ".h") -> DRIVERS_ALLOC_H.
func GuardName(name, ext string) string {
	return strings.ToUpper(name) + "_" + strings.ToUpper(strings.TrimPrefix(ext, "."))
}
