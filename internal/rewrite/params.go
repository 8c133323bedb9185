// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package rewrite

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/ldocgen/pkg/types"
)

// maxTypoDistance is the largest edit distance at which a documented
// name is reported as a likely misspelling of a declared parameter.
const maxTypoDistance = 2

// checkParams compares @param annotations with the declared parameters
// by position. Output order is never changed; mismatches only produce
// warnings.
func checkParams(anns []types.Annotation, decl *types.Declaration) []types.Warning {
	var documented []*types.Annotation
	for i := range anns {
		if anns[i].Tag == types.TagParam {
			documented = append(documented, &anns[i])
		}
	}
	if len(documented) == 0 {
		return nil
	}

	declared := decl.Params
	// self is usually left undocumented in M.f = function(self) forms.
	if len(declared) > 0 && declared[0] == "self" && documented[0].Name != "self" {
		declared = declared[1:]
	}
	varargs := len(declared) > 0 && declared[len(declared)-1] == "..."

	var warnings []types.Warning
	for i, a := range documented {
		switch {
		case i < len(declared) && a.Name == declared[i]:
			continue
		case i >= len(declared)-1 && varargs && a.Name == "...":
			continue
		case i >= len(declared):
			warnings = append(warnings, types.Warning{
				Kind:    types.ParamMismatch,
				Line:    a.Line,
				Message: fmt.Sprintf("@param %s has no matching parameter in %s", a.Name, decl.Name),
			})
		default:
			msg := fmt.Sprintf("@param %s does not match parameter %d (%s) of %s", a.Name, i+1, declared[i], decl.Name)
			if hint := closest(a.Name, declared); hint != "" {
				msg += fmt.Sprintf(", did you mean %s?", hint)
			}
			warnings = append(warnings, types.Warning{
				Kind:    types.ParamMismatch,
				Line:    a.Line,
				Message: msg,
			})
		}
	}
	return warnings
}

// closest returns the declared name nearest to name when it is within
// maxTypoDistance edits, or "".
func closest(name string, declared []string) string {
	dmp := diffmatchpatch.New()
	best, bestDistance := "", maxTypoDistance+1
	for _, d := range declared {
		if d == name || d == "..." {
			continue
		}
		distance := dmp.DiffLevenshtein(dmp.DiffMain(name, d, false))
		if distance < bestDistance {
			best, bestDistance = d, distance
		}
	}
	return best
}
