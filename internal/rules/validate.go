package rules

import (
	"fmt"
	"strings"
)

// ValidationError describes a single structural problem in a rule table.
type ValidationError struct {
	Path        string // e.g. "Transaction Map/EFT/Housing/Rent"
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s]: %s", e.Path, e.Description)
}

// Validate enforces structural invariants on a loaded table. An empty
// match substring would match every description, so it is rejected
// rather than silently swallowing the table below it.
func Validate(t *Table) []ValidationError {
	var errs []ValidationError

	if t.Nested != nil {
		if len(t.Nested.Types) == 0 {
			errs = append(errs, ValidationError{Path: nestedKey, Description: "no transaction types defined"})
		}
		for _, tr := range t.Nested.Types {
			if tr.Name == "" {
				errs = append(errs, ValidationError{Path: nestedKey, Description: "empty transaction type key"})
			}
			for _, cr := range tr.Categories {
				for _, lr := range cr.Labels {
					for _, m := range lr.Matches {
						if strings.TrimSpace(m) == "" {
							errs = append(errs, ValidationError{
								Path:        strings.Join([]string{nestedKey, tr.Name, cr.Name, lr.Name}, "/"),
								Description: "empty match substring",
							})
						}
					}
				}
			}
		}
	}

	if t.Flat != nil {
		if len(t.Flat.Rules) == 0 {
			errs = append(errs, ValidationError{Path: flatKey, Description: "no rules defined"})
		}
		for _, r := range t.Flat.Rules {
			if strings.TrimSpace(r.Match) == "" {
				errs = append(errs, ValidationError{
					Path:        strings.Join([]string{flatKey, r.Type}, "/"),
					Description: "empty match substring",
				})
			}
			if r.Category == "" {
				errs = append(errs, ValidationError{
					Path:        strings.Join([]string{flatKey, r.Type, r.Match}, "/"),
					Description: "empty category",
				})
			}
		}
	}

	return errs
}
