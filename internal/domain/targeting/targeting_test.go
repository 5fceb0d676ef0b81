package targeting

import (
	"testing"

	"github.com/agripoint/loyalty-api/internal/domain/member"
)

func goldFarmer() Audience {
	return Audience{
		Tier:       member.TierGold,
		MemberType: member.TypeFarm,
		SubType:    "dairy",
	}
}

func TestMatchesOpenRules(t *testing.T) {
	if !(Rules{}).Matches(goldFarmer()) {
		t.Fatal("empty rule set must match every member")
	}
}

func TestMatchesTierCheck(t *testing.T) {
	aud := goldFarmer()

	tests := []struct {
		name  string
		tiers []member.Tier
		want  bool
	}{
		{"empty tier list is wildcard", nil, true},
		{"tier included", []member.Tier{member.TierGold, member.TierPlatinum}, true},
		{"tier excluded", []member.Tier{member.TierBronze, member.TierSilver}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := Rules{Tiers: tt.tiers}
			if got := rules.Matches(aud); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesMemberTypeCheck(t *testing.T) {
	aud := goldFarmer()

	if !(Rules{MemberTypes: []member.Type{member.TypeFarm}}).Matches(aud) {
		t.Fatal("member type in allow-list must match")
	}
	if (Rules{MemberTypes: []member.Type{member.TypeVeterinarian}}).Matches(aud) {
		t.Fatal("member type outside allow-list must not match")
	}
}

func TestMatchesSubTypeCheck(t *testing.T) {
	tests := []struct {
		name     string
		subTypes map[member.Type][]string
		subType  string
		want     bool
	}{
		{"no sub-type rule for member's type", map[member.Type][]string{member.TypeVeterinarian: {"clinic"}}, "dairy", true},
		{"empty sub-type list for member's type", map[member.Type][]string{member.TypeFarm: {}}, "dairy", true},
		{"sub-type included", map[member.Type][]string{member.TypeFarm: {"dairy", "poultry"}}, "dairy", true},
		{"sub-type excluded", map[member.Type][]string{member.TypeFarm: {"poultry"}}, "dairy", false},
		{"unresolved sub-type fails closed", map[member.Type][]string{member.TypeFarm: {"dairy"}}, "", false},
		{"unresolved sub-type, no rule for type", map[member.Type][]string{member.TypeVeterinarian: {"clinic"}}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aud := goldFarmer()
			aud.SubType = tt.subType
			rules := Rules{SubTypes: tt.subTypes}
			if got := rules.Matches(aud); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

// Clearing any one rule set may only widen eligibility, never narrow it.
func TestEmptyingRuleSetNeverNarrows(t *testing.T) {
	audiences := []Audience{
		goldFarmer(),
		{Tier: member.TierBronze, MemberType: member.TypeVeterinarian, SubType: ""},
		{Tier: member.TierSilver, MemberType: member.TypeLivestockShop, SubType: "retail"},
	}

	full := Rules{
		Tiers:       []member.Tier{member.TierGold},
		MemberTypes: []member.Type{member.TypeFarm},
		SubTypes:    map[member.Type][]string{member.TypeFarm: {"dairy"}},
	}

	variants := []Rules{
		{MemberTypes: full.MemberTypes, SubTypes: full.SubTypes}, // tiers cleared
		{Tiers: full.Tiers, SubTypes: full.SubTypes},             // member types cleared
		{Tiers: full.Tiers, MemberTypes: full.MemberTypes},       // sub-types cleared
	}

	for _, aud := range audiences {
		if !full.Matches(aud) {
			continue
		}
		for i, v := range variants {
			if !v.Matches(aud) {
				t.Fatalf("variant %d narrowed eligibility for %+v", i, aud)
			}
		}
	}
}

func TestRulesJSONRoundTrip(t *testing.T) {
	rules := Rules{
		Tiers:       []member.Tier{member.TierSilver, member.TierGold},
		MemberTypes: []member.Type{member.TypeFarm},
		SubTypes:    map[member.Type][]string{member.TypeFarm: {"dairy"}},
	}

	value, err := rules.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var decoded Rules
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if !decoded.Matches(goldFarmer()) {
		t.Fatal("round-tripped rules no longer match")
	}
	if decoded.Matches(Audience{Tier: member.TierBronze, MemberType: member.TypeFarm, SubType: "dairy"}) {
		t.Fatal("round-tripped rules lost the tier restriction")
	}
}

func TestRulesScanNull(t *testing.T) {
	var rules Rules
	if err := rules.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !rules.IsOpen() {
		t.Fatal("NULL rules column must scan as open rules")
	}
}
