package domain

import (
	"regexp"
	"time"
)

// Accepted phone formats: international ("+999999999", up to 15 digits)
// or US dashed ("999-999-9999").
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+?1?\d{9,15}$`),
	regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`),
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer is a CRM customer record. Email is globally unique; phone is
// optional but must match one of the accepted formats when present.
type Customer struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	Name      string    `gorm:"size:100;index" json:"name"`
	Email     string    `gorm:"size:254;uniqueIndex" json:"email"`
	Phone     string    `gorm:"size:17" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// ValidPhone reports whether phone matches an accepted format. An empty
// phone is valid because the field is optional.
func ValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	for _, p := range phonePatterns {
		if p.MatchString(phone) {
			return true
		}
	}
	return false
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
