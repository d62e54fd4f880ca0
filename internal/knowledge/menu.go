package knowledge

import "strconv"

// Section identifies which half of the menu an item came from.
type Section string

const (
	SectionFood   Section = "food"
	SectionDrinks Section = "drinks"
)

// Menu is the raw menu table as supplied by the content loader. Categories
// keep their source order.
type Menu struct {
	Food   []RawCategory
	Drinks []RawCategory
}

// RawCategory is one category entry of a menu section. Title is optional;
// without it the display name is derived from Key.
type RawCategory struct {
	Key   string
	Title string
	Items []RawItem
}

// RawItem is a menu item before indexing.
type RawItem struct {
	Name        string
	Price       Price
	Description string
	Tags        []string
	AddOns      string
}

// Price is a source price: a number, free text (e.g. a range) or absent.
type Price struct {
	Amount  float64
	Text    string
	Numeric bool
}

// NumericPrice returns a Price holding a number.
func NumericPrice(amount float64) Price {
	return Price{Amount: amount, Numeric: true}
}

// TextPrice returns a Price passed through verbatim.
func TextPrice(text string) Price {
	return Price{Text: text}
}

// Format renders the price for display: "£" followed by the shortest
// representation of a number, the text as-is, or "" when absent.
func (p Price) Format() string {
	if p.Numeric {
		return "£" + strconv.FormatFloat(p.Amount, 'f', -1, 64)
	}
	return p.Text
}

// FAQEntry is a question and its canned answer.
type FAQEntry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// OpeningTime is one line of the opening-hours table.
type OpeningTime struct {
	Days  string `json:"days" yaml:"days"`
	Hours string `json:"hours" yaml:"hours"`
}

// Contact holds the venue details quoted in replies.
type Contact struct {
	Phone      string   `json:"phone" yaml:"phone"`
	Email      string   `json:"email" yaml:"email"`
	Address    string   `json:"address" yaml:"address"`
	BookingURL string   `json:"bookingUrl" yaml:"bookingUrl"`
	ParkingURL string   `json:"parkingUrl" yaml:"parkingUrl"`
	Station    string   `json:"station" yaml:"station"`
	Buses      []string `json:"buses" yaml:"buses"`
}

// SiteContent is the optional site-wide content table.
type SiteContent struct {
	OpeningTimes []OpeningTime
	Contact      Contact
}

// Hours returns the configured opening times or the built-in schedule.
func (s *SiteContent) Hours() []OpeningTime {
	if s == nil || len(s.OpeningTimes) == 0 {
		return DefaultOpeningTimes()
	}
	return s.OpeningTimes
}

// Venue returns the contact details with any missing field filled from the
// built-in defaults.
func (s *SiteContent) Venue() Contact {
	def := DefaultContact()
	if s == nil {
		return def
	}

	c := s.Contact
	if c.Phone == "" {
		c.Phone = def.Phone
	}
	if c.Email == "" {
		c.Email = def.Email
	}
	if c.Address == "" {
		c.Address = def.Address
	}
	if c.BookingURL == "" {
		c.BookingURL = def.BookingURL
	}
	if c.ParkingURL == "" {
		c.ParkingURL = def.ParkingURL
	}
	if c.Station == "" {
		c.Station = def.Station
	}
	if len(c.Buses) == 0 {
		c.Buses = def.Buses
	}
	return c
}
