package pricing

import (
	"testing"

	"glimra/models"

	"github.com/stretchr/testify/assert"
)

var calc = Calculator{SUVSurchargeRate: 0.10, ExpressServiceFee: 30}

func selectionWith(base float64, suv, express bool, addonPrices ...float64) models.ServiceSelection {
	sel := models.ServiceSelection{
		ServiceType:      &models.ServiceType{ID: "st-1", Name: "Full Valet", BasePrice: base, BaseDurationMinutes: 60},
		IsSUV:            suv,
		IsExpressService: express,
	}
	for i, p := range addonPrices {
		sel.AddOns = append(sel.AddOns, models.AddOn{ID: string(rune('a' + i)), Price: p, ExtraDurationMinutes: 15})
	}
	return sel
}

func TestComputeExampleScenario(t *testing.T) {
	// Base 40, SUV +10%, two add-ons (10, 15), express +30, no loyalty.
	sel := selectionWith(40, true, true, 10, 15)
	bd := calc.Compute(sel, models.LoyaltyInfo{})

	assert.Equal(t, 40.0, bd.BasePrice)
	assert.Equal(t, 4.0, bd.SUVSurcharge)
	assert.Equal(t, 25.0, bd.AddonPrice)
	assert.Equal(t, 0.0, bd.AddonDiscount)
	assert.Equal(t, 30.0, bd.ExpressServiceFee)
	assert.Equal(t, 99.0, bd.OriginalPrice)
	assert.Equal(t, 99.0, bd.FinalPrice)
}

func TestAddonDiscountWaivesCheapestAtThreeOrMore(t *testing.T) {
	sel := selectionWith(40, true, true, 10, 15, 5)
	bd := calc.Compute(sel, models.LoyaltyInfo{})

	assert.Equal(t, 30.0, bd.AddonPrice)
	assert.Equal(t, 5.0, bd.AddonDiscount)
	assert.Equal(t, bd.BasePrice+bd.SUVSurcharge+bd.AddonPrice-bd.AddonDiscount+bd.ExpressServiceFee, bd.OriginalPrice)
}

func TestAddonDiscountZeroBelowThreshold(t *testing.T) {
	for _, prices := range [][]float64{{}, {12}, {12, 8}} {
		sel := selectionWith(50, false, false, prices...)
		bd := calc.Compute(sel, models.LoyaltyInfo{})
		assert.Equal(t, 0.0, bd.AddonDiscount)
	}
}

func TestAddonDiscountTiedMinimum(t *testing.T) {
	sel := selectionWith(50, false, false, 8, 8, 20)
	bd := calc.Compute(sel, models.LoyaltyInfo{})
	assert.Equal(t, 8.0, bd.AddonDiscount)
}

func TestPriceDecompositionInvariant(t *testing.T) {
	cases := []struct {
		name    string
		sel     models.ServiceSelection
		loyalty models.LoyaltyInfo
	}{
		{"plain", selectionWith(40, false, false), models.LoyaltyInfo{}},
		{"suv express addons", selectionWith(80, true, true, 5, 10, 15, 20), models.LoyaltyInfo{}},
		{"percent discount", selectionWith(60, true, false, 10, 10), models.LoyaltyInfo{Tier: "gold", DiscountPercent: 15}},
		{"free service", selectionWith(45, false, true, 9), models.LoyaltyInfo{Tier: "platinum", FreeServiceName: "Full Valet"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bd := calc.Compute(tc.sel, tc.loyalty)
			assert.InDelta(t, bd.BasePrice+bd.SUVSurcharge+bd.AddonPrice-bd.AddonDiscount+bd.ExpressServiceFee, bd.OriginalPrice, 1e-9)
			assert.InDelta(t, max(0, bd.OriginalPrice-bd.LoyaltyDiscount), bd.FinalPrice, 1e-9)
			assert.GreaterOrEqual(t, bd.FinalPrice, 0.0)
		})
	}
}

func TestLoyaltyPercentDiscount(t *testing.T) {
	sel := selectionWith(100, false, false)
	bd := calc.Compute(sel, models.LoyaltyInfo{Tier: "gold", DiscountPercent: 20})
	assert.Equal(t, 20.0, bd.LoyaltyDiscount)
	assert.Equal(t, 80.0, bd.FinalPrice)
}

func TestLoyaltyFreeServiceOverridesPercent(t *testing.T) {
	sel := selectionWith(40, false, false, 10, 15)
	loyalty := models.LoyaltyInfo{Tier: "platinum", DiscountPercent: 10, FreeServiceName: "Full Valet"}
	bd := calc.Compute(sel, loyalty)

	// The service-type line is zeroed; add-ons are still paid.
	assert.Equal(t, 40.0, bd.LoyaltyDiscount)
	assert.Equal(t, 25.0, bd.FinalPrice)
}

func TestLoyaltyFreeServiceNameMismatchFallsBackToPercent(t *testing.T) {
	sel := selectionWith(40, false, false)
	loyalty := models.LoyaltyInfo{Tier: "platinum", DiscountPercent: 10, FreeServiceName: "Interior Detail"}
	bd := calc.Compute(sel, loyalty)
	assert.Equal(t, 4.0, bd.LoyaltyDiscount)
}

func TestFinalPriceClampedAtZero(t *testing.T) {
	sel := selectionWith(10, false, false)
	bd := calc.Compute(sel, models.LoyaltyInfo{DiscountPercent: 200})
	assert.Equal(t, 0.0, bd.FinalPrice)
}

func TestTotalDuration(t *testing.T) {
	sel := selectionWith(40, false, false, 10, 15)
	assert.Equal(t, 90, TotalDuration(sel))

	assert.Equal(t, 0, TotalDuration(models.ServiceSelection{}))
}
