package constants

// Account roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Booking status
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// Payment kinds
const (
	PaymentKindCharge  = "CHARGE"
	PaymentKindRefund  = "REFUND"
	PaymentKindFunding = "FUNDING"
)

// Room types
const (
	RoomTypeSingle = "SINGLE"
	RoomTypeDouble = "DOUBLE"
	RoomTypeSuite  = "SUITE"
	RoomTypeDeluxe = "DELUXE"
)

const (
	MinUsernameLength         = 6
	MinPasswordLength         = 6
	MaxCommentLength          = 1000
	CommentWindowDays         = 30
	VerificationTokenTTLHours = 24
)

// MaxAmount là giá trị lớn nhất cột decimal(14,2) lưu được
const MaxAmount = 999999999999.99

// Context keys set by the auth middleware
const (
	CtxUserID    = "userID"
	CtxUserRole  = "userRole"
	CtxRequestID = "requestID"
)
