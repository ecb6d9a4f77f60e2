package enrich

import "github.com/Akbari06/WellWorld/internal/model"

// AttachLinks zips parsed records with the opportunities that produced them:
// record i gets opportunity i's link and name. The model is asked to keep
// input order, so positional pairing is the best available join; records
// beyond the end of the opportunity list keep an empty link and name.
func AttachLinks(records []model.GeoRecord, opps []model.Opportunity) []model.GeoLocation {
	locations := make([]model.GeoLocation, 0, len(records))
	for i, rec := range records {
		loc := model.GeoLocation{
			LatLon:  rec.LatLon,
			Country: rec.Country,
		}
		if i < len(opps) {
			loc.Link = opps[i].Link
			loc.Name = opps[i].Name
		}
		locations = append(locations, loc)
	}
	return locations
}
