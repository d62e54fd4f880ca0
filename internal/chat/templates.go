package chat

import (
	"fmt"
	"strings"

	"github.com/monika-restaurant/receptionist/internal/knowledge"
)

const (
	menuPage        = "/menu.html"
	venuePage       = "/venue.html"
	privateHirePage = "/private-hire.html"
	storyPage       = "/story.html"
	galleryPage     = "/gallery.html"
)

const helpTopics = "• Our menu & prices\n• Opening hours\n• Reservations\n• Private hire\n• Location & parking"

const (
	welcomeText  = "Hello! 👋 Welcome to Monika Restaurant. How can I help you today?\n\nYou can ask me about:\n" + helpTopics
	thanksText   = "You're welcome! 😊 Is there anything else I can help you with?"
	goodbyeText  = "Goodbye! 👋 We hope to see you at Monika soon. Have a wonderful day!"
	storyText    = "Monika Restaurant is named after the famous Monika fish 🐟 — a whole grilled croaker fish beloved at the award-winning 805 Restaurant Group.\n\nWe bring authentic West African flavours with a modern twist, specialising in charcoal-grilled seafood.\n\nRead more: " + storyPage
	galleryText  = "📸 Check out our gallery for a visual tour of Monika:\n" + galleryPage
	notFoundText = "I couldn't find that specific item. Try asking about a dish by name like \"lobster\", \"jollof\", or \"mac and cheese\"!\n\nOr browse our full menu: " + menuPage
)

// templates renders the replies that quote venue details.
type templates struct {
	venue knowledge.Contact
	hours []knowledge.OpeningTime
}

func (t templates) openingHours() string {
	lines := make([]string, len(t.hours))
	for i, ot := range t.hours {
		lines[i] = fmt.Sprintf("• %s: %s", ot.Days, ot.Hours)
	}
	return "🕐 Our opening hours:\n\n" + strings.Join(lines, "\n") + "\n\nWe recommend booking ahead for weekends!"
}

func (t templates) reservation() string {
	return fmt.Sprintf("🍽️ We'd love to have you! Reserve your table here:\n\n%s\n\nOr call us on %s.",
		t.venue.BookingURL, t.venue.Phone)
}

func (t templates) contact() string {
	return fmt.Sprintf("📞 You can reach us at %s\n📧 Email: %s\n📍 %s",
		t.venue.Phone, t.venue.Email, t.venue.Address)
}

func (t templates) location() string {
	return fmt.Sprintf("📍 %s\n\n🚆 Nearest station: %s\n🚌 Bus routes: %s\n🅿️ Parking nearby: %s\n\nVisit our venue page for more: %s",
		t.venue.Address, t.venue.Station, strings.Join(t.venue.Buses, ", "), t.venue.ParkingURL, venuePage)
}

func (t templates) privateHire() string {
	return "🎉 We offer private hire for all occasions!\n\n" +
		"✓ Birthdays & celebrations\n✓ Weddings & engagements\n✓ Corporate events\n✓ Bespoke menus\n✓ Dedicated events coordinator\n\n" +
		"Enquire here: " + privateHirePage + "\nOr call: " + t.venue.Phone
}

func (t templates) fallback() string {
	return "I'm not sure I understood that, but I'm here to help! Try asking about:\n\n" + helpTopics + "\n\nOr call us: " + t.venue.Phone
}
