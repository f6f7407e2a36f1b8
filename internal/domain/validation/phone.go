package validation

import "strings"

// DefaultCountryCode is prepended to national-format numbers.
const DefaultCountryCode = "+353"

const whatsappPrefix = "whatsapp:"

var phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")

// FormatPhoneNumber normalizes a phone number to international form.
// A leading "+" is kept as is, a leading trunk "0" is replaced by countryCode,
// and anything else gets countryCode prepended.
func FormatPhoneNumber(phone, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	cleaned := phoneStripper.Replace(strings.TrimSpace(phone))
	switch {
	case cleaned == "":
		return ""
	case strings.HasPrefix(cleaned, "+"):
		return cleaned
	case strings.HasPrefix(cleaned, "00"):
		return "+" + cleaned[2:]
	case strings.HasPrefix(cleaned, "0"):
		return countryCode + cleaned[1:]
	default:
		return countryCode + cleaned
	}
}

// FormatWhatsAppAddress formats a number as a WhatsApp address. Values already
// carrying the prefix are returned unchanged.
func FormatWhatsAppAddress(phone, countryCode string) string {
	if strings.HasPrefix(phone, whatsappPrefix) {
		return phone
	}
	formatted := FormatPhoneNumber(phone, countryCode)
	if formatted == "" {
		return ""
	}
	return whatsappPrefix + formatted
}

// IsPhone reports whether the formatted number looks dialable: "+" followed by 8-15 digits.
func IsPhone(formatted string) bool {
	formatted = strings.TrimPrefix(formatted, whatsappPrefix)
	if !strings.HasPrefix(formatted, "+") {
		return false
	}
	digits := formatted[1:]
	if len(digits) < 8 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
