package pricing

import (
	"math"

	"glimra/models"
)

// Calculator derives a price breakdown from a service selection. Stateless
// and side-effect free; safe to call on every selection change.
type Calculator struct {
	// SUVSurchargeRate is the fraction of the base price added for SUVs (e.g. 0.10).
	SUVSurchargeRate float64
	// ExpressServiceFee is the flat surcharge for express service.
	ExpressServiceFee float64
}

// Add-on promotion: with this many or more add-ons selected, the cheapest
// selected add-on is waived.
const addonWaiveThreshold = 3

// Compute turns a selection and the user's loyalty info into a full price
// breakdown. Missing optionals (no add-ons, no loyalty) contribute zero.
func (c Calculator) Compute(sel models.ServiceSelection, loyalty models.LoyaltyInfo) models.PriceBreakdown {
	var bd models.PriceBreakdown

	if sel.ServiceType != nil {
		bd.BasePrice = sel.ServiceType.BasePrice
	}
	if sel.IsSUV {
		bd.SUVSurcharge = bd.BasePrice * c.SUVSurchargeRate
	}

	for _, a := range sel.AddOns {
		bd.AddonPrice += a.Price
	}
	bd.AddonDiscount = addonDiscount(sel.AddOns)

	if sel.IsExpressService {
		bd.ExpressServiceFee = c.ExpressServiceFee
	}

	bd.OriginalPrice = bd.BasePrice + bd.SUVSurcharge + bd.AddonPrice - bd.AddonDiscount + bd.ExpressServiceFee
	bd.LoyaltyDiscount = loyaltyDiscount(sel, loyalty, bd.OriginalPrice)
	bd.FinalPrice = math.Max(0, bd.OriginalPrice-bd.LoyaltyDiscount)
	bd.TotalDurationMinutes = TotalDuration(sel)

	return bd
}

// addonDiscount waives the cheapest selected add-on when the selection holds
// three or more. Ties between equally cheap add-ons are broken arbitrarily;
// the waived amount is identical either way.
func addonDiscount(addons []models.AddOn) float64 {
	if len(addons) < addonWaiveThreshold {
		return 0
	}
	cheapest := addons[0].Price
	for _, a := range addons[1:] {
		if a.Price < cheapest {
			cheapest = a.Price
		}
	}
	return cheapest
}

// loyaltyDiscount applies the percentage tier discount, unless the tier
// grants the selected service type for free, in which case the service-type
// line is zeroed instead of the percentage rule.
func loyaltyDiscount(sel models.ServiceSelection, loyalty models.LoyaltyInfo, originalPrice float64) float64 {
	if sel.ServiceType != nil && loyalty.FreeServiceName != "" && loyalty.FreeServiceName == sel.ServiceType.Name {
		return sel.ServiceType.BasePrice
	}
	if loyalty.DiscountPercent > 0 {
		return originalPrice * (loyalty.DiscountPercent / 100)
	}
	return 0
}

// TotalDuration returns the service duration plus add-on extra durations,
// in minutes. This is the slot length the availability resolver searches for.
func TotalDuration(sel models.ServiceSelection) int {
	total := 0
	if sel.ServiceType != nil {
		total = sel.ServiceType.BaseDurationMinutes
	}
	for _, a := range sel.AddOns {
		total += a.ExtraDurationMinutes
	}
	return total
}
