package notifications

import (
	"fmt"
)

// Constructors for the notifications emitted by booking, payment and fleet workflows.
// They only build the Input; pass the result to Dispatcher.CreateAndPush.

// BookingCreated notifies managers about a new booking request.
func BookingCreated(role, bookingID, customer string) Input {
	return Input{
		Role:      role,
		BookingID: bookingID,
		Type:      TypeBookingCreated,
		Title:     "New booking request",
		Message:   fmt.Sprintf("%s submitted booking %s.", customer, bookingID),
		ActionURL: bookingURL(bookingID),
	}
}

// BookingApproved notifies the customer that their booking was approved.
func BookingApproved(userID, bookingID string) Input {
	return Input{
		SubjectID: userID,
		BookingID: bookingID,
		Type:      TypeBookingApproved,
		Title:     "Booking approved",
		Message:   fmt.Sprintf("Your booking %s has been approved.", bookingID),
		ActionURL: bookingURL(bookingID),
	}
}

// BookingRejected notifies the customer that their booking was rejected.
func BookingRejected(userID, bookingID, reason string) Input {
	msg := fmt.Sprintf("Your booking %s has been rejected.", bookingID)
	if reason != "" {
		msg = fmt.Sprintf("Your booking %s has been rejected: %s", bookingID, reason)
	}
	return Input{
		SubjectID: userID,
		BookingID: bookingID,
		Type:      TypeBookingRejected,
		Title:     "Booking rejected",
		Message:   msg,
		ActionURL: bookingURL(bookingID),
	}
}

// BookingCancelled notifies the customer that their booking was cancelled.
func BookingCancelled(userID, bookingID string) Input {
	return Input{
		SubjectID: userID,
		BookingID: bookingID,
		Type:      TypeBookingCancelled,
		Title:     "Booking cancelled",
		Message:   fmt.Sprintf("Booking %s has been cancelled.", bookingID),
		ActionURL: bookingURL(bookingID),
	}
}

// PaymentReceived notifies the customer that a payment went through.
func PaymentReceived(userID, bookingID, amount string) Input {
	return Input{
		SubjectID: userID,
		BookingID: bookingID,
		Type:      TypePaymentReceived,
		Title:     "Payment received",
		Message:   fmt.Sprintf("We received your payment of %s for booking %s.", amount, bookingID),
		ActionURL: bookingURL(bookingID),
	}
}

// PaymentFailed notifies the customer that a payment failed.
func PaymentFailed(userID, bookingID string) Input {
	return Input{
		SubjectID: userID,
		BookingID: bookingID,
		Type:      TypePaymentFailed,
		Title:     "Payment failed",
		Message:   fmt.Sprintf("The payment for booking %s could not be processed.", bookingID),
		ActionURL: bookingURL(bookingID),
	}
}

// VehicleChanged notifies the customer that the vehicle on their booking changed.
func VehicleChanged(userID, bookingID, vehicle string) Input {
	return Input{
		SubjectID: userID,
		BookingID: bookingID,
		Type:      TypeVehicleChanged,
		Title:     "Vehicle changed",
		Message:   fmt.Sprintf("Booking %s now uses %s.", bookingID, vehicle),
		ActionURL: bookingURL(bookingID),
	}
}

// AdminMessage is a free-form message. Empty userID and role address everyone.
func AdminMessage(userID, role, title, message string) Input {
	return Input{
		SubjectID: userID,
		Role:      role,
		Type:      TypeAdminMessage,
		Title:     title,
		Message:   message,
	}
}

func bookingURL(bookingID string) string {
	if bookingID == "" {
		return ""
	}
	return "/bookings/" + bookingID
}
