package models

// All liệt kê model theo thứ tự AutoMigrate
func All() []interface{} {
	return []interface{}{
		&User{},
		&VerificationToken{},
		&Hotel{},
		&Room{},
		&Picture{},
		&RoomPicture{},
		&Booking{},
		&Payment{},
		&Comment{},
	}
}
