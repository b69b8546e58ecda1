package models

// ServiceType is a bookable detailing service as listed in the catalog.
type ServiceType struct {
	ID                  string  `bson:"id" json:"id"`
	Name                string  `bson:"name" json:"name"`
	BasePrice           float64 `bson:"basePrice" json:"basePrice"`
	BaseDurationMinutes int     `bson:"baseDurationMinutes" json:"baseDurationMinutes"`
	Description         string  `bson:"description,omitempty" json:"description,omitempty"`
}

// ValetType describes how the vehicle is handed over (e.g. pickup, on-site).
type ValetType struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// AddOn is an optional extra service line item.
// Price and ExtraDurationMinutes are both non-negative.
type AddOn struct {
	ID                   string  `bson:"id" json:"id"`
	Name                 string  `bson:"name" json:"name"`
	Price                float64 `bson:"price" json:"price"`
	ExtraDurationMinutes int     `bson:"extraDurationMinutes" json:"extraDurationMinutes"`
	Description          string  `bson:"description,omitempty" json:"description,omitempty"`
}
