package marketapi

import (
	"time"

	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// MinListingPrice returns the lowest minimum listing price across all
// marketplaces in the response, and false when no market reported one.
func (r *ListingsResponse) MinListingPrice() (float64, bool) {
	var min float64
	found := false
	for _, l := range r.Listings {
		if l.MinPrice == nil {
			continue
		}
		if !found || *l.MinPrice < min {
			min = *l.MinPrice
			found = true
		}
	}
	return min, found
}

// ToDailySales converts a sales history response into per-day sale
// records. A record's price is the average price when present and
// positive, else the minimum price; records with no usable positive
// price are dropped. Days with an unparseable date are dropped whole;
// a malformed record never aborts the item's history.
func (r *SalesHistoryResponse) ToDailySales() model.DailySales {
	daily := make(model.DailySales, len(r.Days))

	for _, day := range r.Days {
		t, err := time.Parse(model.DayLayout, day.Date)
		if err != nil {
			continue
		}
		key := model.DayKey(t)

		for _, s := range day.Sales {
			price, ok := salePrice(s)
			if !ok {
				continue
			}
			volume := s.Volume
			if volume < 0 {
				volume = 0
			}
			daily[key] = append(daily[key], model.SaleRecord{
				Market: s.Market,
				Price:  price,
				Volume: volume,
			})
		}
	}

	return daily
}

// salePrice picks the usable price of a sale record.
func salePrice(s APISale) (float64, bool) {
	if s.AvgPrice != nil && *s.AvgPrice > 0 {
		return *s.AvgPrice, true
	}
	if s.MinPrice != nil && *s.MinPrice > 0 {
		return *s.MinPrice, true
	}
	return 0, false
}

// ToItem converts an aggregator catalog item to the domain type.
func (i APIItem) ToItem() model.Item {
	return model.Item{
		MarketName: i.MarketHashName,
		Type:       i.Type,
		Category:   i.Category,
		Weapon:     i.Weapon,
		Exterior:   i.Exterior,
		Quality:    i.Quality,
		Collection: i.Collection,
		IconURL:    i.IconURL,
	}
}
