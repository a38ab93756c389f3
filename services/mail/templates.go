package mail

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func VerificationMessage(to, username, link string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", username)
	b.WriteString("Thanks for signing up. Activate your account with the link below:\n\n")
	fmt.Fprintf(&b, "%s\n\n", link)
	b.WriteString("The link expires in 24 hours.\n")
	return Message{To: to, Subject: "Activate your account", Body: b.String()}
}

// BookingDetails là dữ liệu đưa vào các mail về booking
type BookingDetails struct {
	BookingID uint
	Username  string
	HotelName string
	RoomType  string
	StartDate time.Time
	EndDate   time.Time
	Amount    float64
}

func (d BookingDetails) lines(b *strings.Builder) {
	fmt.Fprintf(b, "Booking: #%d\n", d.BookingID)
	fmt.Fprintf(b, "Hotel: %s\n", d.HotelName)
	fmt.Fprintf(b, "Room: %s\n", d.RoomType)
	fmt.Fprintf(b, "Check-in: %s\n", d.StartDate.Format(dateLayout))
	fmt.Fprintf(b, "Check-out: %s\n", d.EndDate.Format(dateLayout))
}

func BookingConfirmedMessage(to string, d BookingDetails) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour booking is confirmed.\n\n", d.Username)
	d.lines(&b)
	fmt.Fprintf(&b, "Amount charged: %.2f\n", d.Amount)
	return Message{To: to, Subject: fmt.Sprintf("Booking #%d confirmed", d.BookingID), Body: b.String()}
}

func BookingCancelledMessage(to string, d BookingDetails) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour booking has been cancelled.\n\n", d.Username)
	d.lines(&b)
	fmt.Fprintf(&b, "Amount refunded: %.2f\n", d.Amount)
	return Message{To: to, Subject: fmt.Sprintf("Booking #%d cancelled", d.BookingID), Body: b.String()}
}

func BookingUpdatedMessage(to string, d BookingDetails) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour booking has been updated.\n\n", d.Username)
	d.lines(&b)
	fmt.Fprintf(&b, "Total amount: %.2f\n", d.Amount)
	return Message{To: to, Subject: fmt.Sprintf("Booking #%d updated", d.BookingID), Body: b.String()}
}
