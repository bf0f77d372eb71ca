package calculation

import (
	"sort"
	"strings"

	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

type stateRow struct {
	name   domain.StateName
	code   string
	rate   float64
	hasTax bool
}

// Top marginal (simplified) rates; progressive schedules below override them
// for the states that have one.
var stateRows = []stateRow{
	{"Alabama", "AL", 0.05, true},
	{"Alaska", "AK", 0, false},
	{"Arizona", "AZ", 0.045, true},
	{"Arkansas", "AR", 0.055, true},
	{"California", "CA", 0.093, true},
	{"Colorado", "CO", 0.0455, true},
	{"Connecticut", "CT", 0.07, true},
	{"Delaware", "DE", 0.066, true},
	{"Florida", "FL", 0, false},
	{"Georgia", "GA", 0.0575, true},
	{"Hawaii", "HI", 0.08, true},
	{"Idaho", "ID", 0.058, true},
	{"Illinois", "IL", 0.0495, true},
	{"Indiana", "IN", 0.032, true},
	{"Iowa", "IA", 0.06, true},
	{"Kansas", "KS", 0.057, true},
	{"Kentucky", "KY", 0.045, true},
	{"Louisiana", "LA", 0.04, true},
	{"Maine", "ME", 0.075, true},
	{"Maryland", "MD", 0.0575, true},
	{"Massachusetts", "MA", 0.05, true},
	{"Michigan", "MI", 0.0425, true},
	{"Minnesota", "MN", 0.0985, true},
	{"Mississippi", "MS", 0.05, true},
	{"Missouri", "MO", 0.054, true},
	{"Montana", "MT", 0.0675, true},
	{"Nebraska", "NE", 0.0684, true},
	{"Nevada", "NV", 0, false},
	{"New Hampshire", "NH", 0, false},
	{"New Jersey", "NJ", 0.1075, true},
	{"New Mexico", "NM", 0.049, true},
	{"New York", "NY", 0.109, true},
	{"North Carolina", "NC", 0.0475, true},
	{"North Dakota", "ND", 0.029, true},
	{"Ohio", "OH", 0.0385, true},
	{"Oklahoma", "OK", 0.05, true},
	{"Oregon", "OR", 0.099, true},
	{"Pennsylvania", "PA", 0.0307, true},
	{"Rhode Island", "RI", 0.0599, true},
	{"South Carolina", "SC", 0.065, true},
	{"South Dakota", "SD", 0, false},
	{"Tennessee", "TN", 0, false},
	{"Texas", "TX", 0, false},
	{"Utah", "UT", 0.0485, true},
	{"Vermont", "VT", 0.086, true},
	{"Virginia", "VA", 0.0575, true},
	{"Washington", "WA", 0, false},
	{"West Virginia", "WV", 0.065, true},
	{"Wisconsin", "WI", 0.0765, true},
	{"Wyoming", "WY", 0, false},
}

// stateBrackets2024 holds progressive schedules for the high-population states
// modeled exactly. California includes the 1% mental health surcharge over $1M.
var stateBrackets2024 = map[domain.StateName]map[domain.FilingStatus][]domain.TaxBracket{
	"California": {
		domain.FilingSingle: {
			bracket(0, 10756, 0.01),
			bracket(10756, 25499, 0.02),
			bracket(25499, 40245, 0.04),
			bracket(40245, 55866, 0.06),
			bracket(55866, 70606, 0.08),
			bracket(70606, 360659, 0.093),
			bracket(360659, 432787, 0.103),
			bracket(432787, 721314, 0.113),
			bracket(721314, 1000000, 0.123),
			topBracket(1000000, 0.133),
		},
		domain.FilingMarriedJointly: {
			bracket(0, 21512, 0.01),
			bracket(21512, 50998, 0.02),
			bracket(50998, 80490, 0.04),
			bracket(80490, 111732, 0.06),
			bracket(111732, 141212, 0.08),
			bracket(141212, 721318, 0.093),
			bracket(721318, 865574, 0.103),
			bracket(865574, 1000000, 0.113),
			bracket(1000000, 1442628, 0.123),
			topBracket(1442628, 0.133),
		},
	},
	"New York": {
		domain.FilingSingle: {
			bracket(0, 8500, 0.04),
			bracket(8500, 11700, 0.045),
			bracket(11700, 13900, 0.0525),
			bracket(13900, 80650, 0.055),
			bracket(80650, 215400, 0.06),
			bracket(215400, 1077550, 0.0685),
			bracket(1077550, 5000000, 0.0965),
			bracket(5000000, 25000000, 0.103),
			topBracket(25000000, 0.109),
		},
		domain.FilingMarriedJointly: {
			bracket(0, 17150, 0.04),
			bracket(17150, 23600, 0.045),
			bracket(23600, 27900, 0.0525),
			bracket(27900, 161550, 0.055),
			bracket(161550, 323200, 0.06),
			bracket(323200, 2155350, 0.0685),
			bracket(2155350, 5000000, 0.0965),
			bracket(5000000, 25000000, 0.103),
			topBracket(25000000, 0.109),
		},
	},
	"New Jersey": {
		domain.FilingSingle: {
			bracket(0, 20000, 0.014),
			bracket(20000, 35000, 0.0175),
			bracket(35000, 40000, 0.035),
			bracket(40000, 75000, 0.05525),
			bracket(75000, 500000, 0.0637),
			bracket(500000, 1000000, 0.0897),
			topBracket(1000000, 0.1075),
		},
		domain.FilingMarriedJointly: {
			bracket(0, 20000, 0.014),
			bracket(20000, 50000, 0.0175),
			bracket(50000, 70000, 0.0245),
			bracket(70000, 80000, 0.035),
			bracket(80000, 150000, 0.05525),
			bracket(150000, 500000, 0.0637),
			bracket(500000, 1000000, 0.0897),
			topBracket(1000000, 0.1075),
		},
	},
	"Oregon": {
		domain.FilingSingle: {
			bracket(0, 4300, 0.0475),
			bracket(4300, 10750, 0.0675),
			bracket(10750, 125000, 0.0875),
			topBracket(125000, 0.099),
		},
		domain.FilingMarriedJointly: {
			bracket(0, 8600, 0.0475),
			bracket(8600, 21500, 0.0675),
			bracket(21500, 250000, 0.0875),
			topBracket(250000, 0.099),
		},
	},
	"Minnesota": {
		domain.FilingSingle: {
			bracket(0, 31690, 0.0535),
			bracket(31690, 104090, 0.068),
			bracket(104090, 193240, 0.0785),
			topBracket(193240, 0.0985),
		},
		domain.FilingMarriedJointly: {
			bracket(0, 46330, 0.0535),
			bracket(46330, 184040, 0.068),
			bracket(184040, 321450, 0.0785),
			topBracket(321450, 0.0985),
		},
	},
}

var (
	stateProfiles = buildStateProfiles()
	stateByKey    = indexStates(stateProfiles)
)

func buildStateProfiles() map[domain.StateName]domain.StateTaxProfile {
	profiles := make(map[domain.StateName]domain.StateTaxProfile, len(stateRows))
	for _, row := range stateRows {
		profiles[row.name] = domain.StateTaxProfile{
			Name:         row.name,
			Code:         row.code,
			FlatRate:     decimal.NewFromFloat(row.rate),
			HasIncomeTax: row.hasTax,
			Brackets:     stateBrackets2024[row.name],
		}
	}
	return profiles
}

func indexStates(profiles map[domain.StateName]domain.StateTaxProfile) map[string]domain.StateName {
	idx := make(map[string]domain.StateName, 2*len(profiles))
	for name, p := range profiles {
		idx[strings.ToLower(string(name))] = name
		idx[strings.ToLower(p.Code)] = name
	}
	return idx
}

func cloneProfile(p domain.StateTaxProfile) domain.StateTaxProfile {
	if p.Brackets != nil {
		b := make(map[domain.FilingStatus][]domain.TaxBracket, len(p.Brackets))
		for fs, br := range p.Brackets {
			b[fs] = copyBrackets(br)
		}
		p.Brackets = b
	}
	return p
}

// LookupState resolves a state by full name or two-letter code, ignoring case
func LookupState(nameOrCode string) (domain.StateTaxProfile, bool) {
	name, ok := stateByKey[strings.ToLower(strings.TrimSpace(nameOrCode))]
	if !ok {
		return domain.StateTaxProfile{}, false
	}
	return cloneProfile(stateProfiles[name]), true
}

// States returns every state profile sorted by name
func States() []domain.StateTaxProfile {
	out := make([]domain.StateTaxProfile, 0, len(stateProfiles))
	for _, p := range stateProfiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
