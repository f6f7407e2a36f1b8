package lifecycle

import (
	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

// DeriveSkipLocations turns completions, newest first, into skip movements.
// A dropped size puts a skip on site at the customer; a picked size returns
// one to the yard. A pick_drop completion yields both.
func DeriveSkipLocations(rows []*model.TrackerRow) model.TrackerSummary {
	summary := model.TrackerSummary{
		Locations: make([]model.SkipLocation, 0, len(rows)),
		OnSite:    map[string]int{},
		InYard:    map[string]int{},
	}
	for _, row := range rows {
		if row == nil {
			continue
		}
		driver := ""
		if row.DriverName != nil {
			driver = *row.DriverName
		}
		if row.Action.InvolvesDrop() && row.DropSize != nil {
			loc := model.SkipLocation{
				Size:            *row.DropSize,
				Location:        model.SkipLocationSite,
				CustomerName:    row.CustomerName,
				CustomerAddress: row.CustomerAddress,
				DocketNo:        row.DocketNo,
				DriverName:      driver,
				CompletedAt:     row.CompletedTime,
			}
			if row.DropLat != nil && row.DropLng != nil {
				loc.Position = &model.Point{Lat: *row.DropLat, Lng: *row.DropLng}
			}
			summary.Locations = append(summary.Locations, loc)
			summary.OnSite[string(*row.DropSize)]++
		}
		if row.Action.InvolvesPick() && row.PickSize != nil {
			summary.Locations = append(summary.Locations, model.SkipLocation{
				Size:        *row.PickSize,
				Location:    model.SkipLocationYard,
				DocketNo:    row.DocketNo,
				DriverName:  driver,
				CompletedAt: row.CompletedTime,
			})
			summary.InYard[string(*row.PickSize)]++
		}
	}
	return summary
}
