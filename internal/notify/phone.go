package notify

import "strings"

var phoneCleaner = strings.NewReplacer("+", "", " ", "", "-", "")

// NormalizePhone strips formatting and the Indian country code from a
// submitted phone number: "+", spaces and hyphens are removed, a leading
// "91" is dropped when the result is 12 digits, and a leading "0" is
// dropped. "+91 98765 43210", "919876543210" and "09876543210" all
// normalize to "9876543210".
func NormalizePhone(phone string) string {
	p := phoneCleaner.Replace(phone)
	if strings.HasPrefix(p, "91") && len(p) == 12 {
		p = p[2:]
	}
	if strings.HasPrefix(p, "0") {
		p = p[1:]
	}
	return p
}

// DialNumber formats a normalized number for international dialing. A
// 10-digit number is assumed Indian and prefixed +91; anything else is
// dialed as-is with a "+".
func DialNumber(phone string) string {
	if len(phone) == 10 {
		return "+91" + phone
	}
	return "+" + phone
}
