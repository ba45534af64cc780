package importer

import "strings"

// parseInsurance splits an insurance string of the form "Name (code)" into
// the payer name and external payer code.
//
//	"Horizon NJ Health (22356)" → ("Horizon NJ Health", "22356")
//	"Self Pay"                  → ("Self Pay", nil)
func parseInsurance(s string) (string, *string) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "("); i >= 0 && strings.Contains(s, ")") {
		name := strings.TrimSpace(s[:i])
		code := strings.TrimSpace(strings.ReplaceAll(s[i+1:], ")", ""))
		if code == "" {
			return name, nil
		}
		return name, &code
	}
	return s, nil
}
