package catalog

import "fmt"

// Section identifies one of the fixed regions of a generated sketch. Every
// emitted line belongs to exactly one section.
type Section string

const (
	SectionIncludes  Section = "includes"
	SectionGlobals   Section = "globals"
	SectionSetup     Section = "setup"
	SectionLoop      Section = "loop"
	SectionFunctions Section = "functions"
)

// SectionNone marks a definition or container with no fixed section binding.
const SectionNone Section = ""

// Sections returns every section in final emission order.
func Sections() []Section {
	return []Section{SectionIncludes, SectionGlobals, SectionSetup, SectionLoop, SectionFunctions}
}

// ParseSection converts a document string into a Section.
func ParseSection(value string) (Section, error) {
	switch Section(value) {
	case SectionIncludes, SectionGlobals, SectionSetup, SectionLoop, SectionFunctions:
		return Section(value), nil
	}
	return SectionNone, fmt.Errorf("unknown section %q", value)
}
