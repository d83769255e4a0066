package models

// Bookings reference a user by email and a guide by whatever the client sends.
const BookingEmailField = "email"
