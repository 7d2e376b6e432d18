package pricing

// PriceObservations maps an exact product title to every competitor price
// seen for it, in search order. Titles are not trimmed or case-folded, so
// "Phone X" and "phone x" stay separate products.
type PriceObservations map[string][]*float64

// GroupByName collects the competitor prices of listings sharing a title.
func GroupByName(listings []ProductListing) PriceObservations {
	obs := make(PriceObservations, len(listings))
	for _, l := range listings {
		obs[l.Name] = append(obs[l.Name], l.CompetitorPrice)
	}
	return obs
}
