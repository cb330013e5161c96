package extract

// DefaultPreludes is the built-in exclusion set for the card extractor: the
// prelude cards of the Prelude expansion. Preludes are dealt, not played from
// hand, so counting them alongside project cards would skew the card
// statistics. Overridable via configuration.
var DefaultPreludes = []string{
	"Acquired Space Agency",
	"Allied Bank",
	"Aquifer Turbines",
	"Biofuels",
	"Biolab",
	"Biosphere Support",
	"Business Empire",
	"Dome Farming",
	"Donation",
	"Early Settlement",
	"Ecology Experts",
	"Eccentric Sponsor",
	"Experimental Forest",
	"Galilean Mining",
	"Great Aquifer",
	"Huge Asteroid",
	"Io Research Outpost",
	"Loan",
	"Martian Industries",
	"Metal-Rich Asteroid",
	"Metals Company",
	"Mining Operations",
	"Mohole",
	"Mohole Excavation",
	"Nitrogen Shipment",
	"Orbital Construction Yard",
	"Polar Industries",
	"Power Generation",
	"Research Network",
	"Self-Sufficient Settlement",
	"Smelting Plant",
	"Society Support",
	"Supplier",
	"Supply Drop",
	"UNMI Contractor",
}

// ExclusionSet builds a lookup set from a card-name list.
func ExclusionSet(cards []string) map[string]struct{} {
	set := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		set[c] = struct{}{}
	}
	return set
}
