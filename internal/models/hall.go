// internal/models/hall.go
package models

// Hall is one accommodation record in the knowledge store. All descriptive
// fields are optional; consumers substitute placeholders for missing values
// rather than failing.
type Hall struct {
	Name               string     `json:"name"`
	ShortDescription   string     `json:"shortDescription,omitempty"`
	Address            string     `json:"address,omitempty"`
	CateringType       string     `json:"cateringType,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	LifestyleTags      []string   `json:"lifestyleTags,omitempty"`
	Facilities         []string   `json:"facilities,omitempty"`
	RoomFeaturesCommon []string   `json:"roomFeaturesCommon,omitempty"`
	Services           []string   `json:"services,omitempty"`
	RoomTypes          []RoomType `json:"roomTypes,omitempty"`
	OfficialURL        string     `json:"officialUrl,omitempty"`
	ContactEmail       string     `json:"contactEmail,omitempty"`
	ContactPhone       string     `json:"contactPhone,omitempty"`
}

// RoomType is a priced sub-record of a hall.
type RoomType struct {
	Name         string      `json:"name"`
	Ensuite      bool        `json:"ensuite"`
	TenancyWeeks int         `json:"tenancyWeeks,omitempty"`
	Prices       []RoomPrice `json:"prices,omitempty"`
}

// RoomPrice is one academic-year price entry. Entries are assumed
// chronological, so the last element is the current price. Amounts are
// pointers because either may be absent from the source record.
type RoomPrice struct {
	Year          string   `json:"year"`
	PerWeekAmount *float64 `json:"perWeekAmount,omitempty"`
	TotalAmount   *float64 `json:"totalAmount,omitempty"`
}

// CurrentPrice returns the chronologically last price entry, or false when
// the room type has no price history.
func (r RoomType) CurrentPrice() (RoomPrice, bool) {
	if len(r.Prices) == 0 {
		return RoomPrice{}, false
	}
	return r.Prices[len(r.Prices)-1], true
}
