package models

// ServiceSelection is the user's in-progress booking choice, mutated
// field-by-field as the wizard advances. Fields are always replaced whole,
// never partially updated.
type ServiceSelection struct {
	Vehicle          *Vehicle     `json:"vehicle,omitempty"`
	ServiceType      *ServiceType `json:"serviceType,omitempty"`
	ValetType        *ValetType   `json:"valetType,omitempty"`
	AddressID        string       `json:"addressId,omitempty"`
	BranchID         string       `json:"branchId,omitempty"`
	Date             string       `json:"date,omitempty"` // "2006-01-02"
	SlotStart        int          `json:"slotStart"`      // minutes from midnight
	SlotSelected     bool         `json:"slotSelected"`   // set only by explicit slot interaction
	Instructions     string       `json:"instructions,omitempty"`
	IsSUV            bool         `json:"isSuv"`
	IsExpressService bool         `json:"isExpressService"`
	AddOns           []AddOn      `json:"addOns,omitempty"`
}

// HasSelectedTimeSlot reports whether the user explicitly picked a slot.
// A defaulted Date alone is not enough to pass the details gate.
func (s ServiceSelection) HasSelectedTimeSlot() bool {
	return s.SlotSelected && s.Date != ""
}

// LoyaltyInfo is the user's loyalty classification, injected read-only into
// the pricing calculator.
type LoyaltyInfo struct {
	Tier            string  `bson:"tier" json:"tier"`
	DiscountPercent float64 `bson:"discountPercent" json:"discountPercent"`
	FreeServiceName string  `bson:"freeServiceName,omitempty" json:"freeServiceName,omitempty"`
}

// PriceBreakdown is derived from a selection, never persisted.
// originalPrice = basePrice + suvSurcharge + addonPrice - addonDiscount + expressServiceFee,
// finalPrice = max(0, originalPrice - loyaltyDiscount).
type PriceBreakdown struct {
	BasePrice            float64 `json:"basePrice"`
	SUVSurcharge         float64 `json:"suvSurcharge"`
	AddonPrice           float64 `json:"addonPrice"`
	AddonDiscount        float64 `json:"addonDiscount"`
	ExpressServiceFee    float64 `json:"expressServiceFee"`
	LoyaltyDiscount      float64 `json:"loyaltyDiscount"`
	OriginalPrice        float64 `json:"originalPrice"`
	FinalPrice           float64 `json:"finalPrice"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
}
