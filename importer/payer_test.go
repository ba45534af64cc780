package importer

import "testing"

func TestParseInsurance(t *testing.T) {
	name, code := parseInsurance("Horizon NJ Health (22356)")
	if name != "Horizon NJ Health" {
		t.Errorf("name = %q, want Horizon NJ Health", name)
	}
	if code == nil || *code != "22356" {
		t.Errorf("code = %v, want 22356", code)
	}

	name, code = parseInsurance("Self Pay")
	if name != "Self Pay" {
		t.Errorf("name = %q, want Self Pay", name)
	}
	if code != nil {
		t.Errorf("code = %v, want nil", *code)
	}

	name, code = parseInsurance("  Aetna Better Health (NJ-100)  ")
	if name != "Aetna Better Health" {
		t.Errorf("name = %q, want Aetna Better Health", name)
	}
	if code == nil || *code != "NJ-100" {
		t.Errorf("code = %v, want NJ-100", code)
	}

	name, code = parseInsurance("Oscar ()")
	if name != "Oscar" || code != nil {
		t.Errorf("empty parens: name = %q code = %v", name, code)
	}
}
