package http

import (
	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/generated/servers"
)

func toRunReport(r batch.Report) servers.RunReport {
	out := servers.RunReport{
		RunId:              r.RunID.Bytes(),
		Mode:               r.Mode.String(),
		Phase:              r.Phase.String(),
		Origin:             r.Origin,
		Items:              make([]servers.RunItem, 0, len(r.Items)),
		QuoteProgress:      r.QuoteProgress.Fraction(),
		GenerationProgress: r.GenerationProgress.Fraction(),
		Generated:          r.Generated,
		Failed:             r.Failed,
		Errors:             r.Errors,
		Cancelled:          r.Cancelled,
		UpdatedAt:          r.UpdatedAt,
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}

	if r.Cost != nil {
		out.Cost = &servers.Cost{
			Total:      r.Cost.Total.Float64(),
			Balance:    r.Cost.Balance.Float64(),
			Sufficient: r.Cost.Sufficient(),
			Shortfall:  r.Cost.Shortfall().Float64(),
		}
	}

	for _, item := range r.Items {
		ri := servers.RunItem{
			OrderId:         item.OrderID.Bytes(),
			OrderNumber:     item.OrderNumber,
			City:            item.City,
			Department:      item.Department,
			Selected:        item.Selected,
			GenerationError: item.GenerationError,
		}
		if q := item.Quote; q != nil {
			ri.Offers = make([]servers.Rate, len(q.Offers))
			for i, rate := range q.Offers {
				ri.Offers[i] = toRate(rate)
			}
			if q.Selected != nil {
				rate := toRate(*q.Selected)
				ri.SelectedRate = &rate
			}
			ri.RecommendedCarrier = q.Recommended
			ri.QuoteError = q.Error
		}
		if item.Label != nil {
			ri.Label = &servers.Label{TrackingNumber: item.Label.TrackingNumber, LabelUrl: item.Label.LabelURL}
		}
		out.Items = append(out.Items, ri)
	}

	return out
}

func toRate(r shipment.RateQuote) servers.Rate {
	return servers.Rate{
		RateToken:    r.Token(),
		Carrier:      r.Carrier(),
		Service:      r.Service(),
		Freight:      r.Freight().Float64(),
		Insurance:    r.Insurance().Float64(),
		Cost:         r.Cost().Float64(),
		DeliveryDays: r.DeliveryDays(),
	}
}
