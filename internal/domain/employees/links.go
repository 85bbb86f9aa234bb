package employees

import (
	"net/url"
	"strings"
)

type LinkBuilder struct {
	BaseURL   string
	QRCodeURL string
}

// Registration builds the self-registration URL handed to a new employee
// and the external QR image encoding it.
func (b LinkBuilder) Registration(email string) Links {
	registration := strings.TrimRight(b.BaseURL, "/") + "/employee/register?email=" + encodeComponent(email)
	qr := b.QRCodeURL + "?size=250x250&data=" + encodeComponent(registration) + "&bgcolor=1E293B&color=64B5F6&qzone=1"
	return Links{RegistrationURL: registration, QRCodeURL: qr}
}

func (b LinkBuilder) EmployeeLogin() string {
	return strings.TrimRight(b.BaseURL, "/") + "/employee/login"
}

func encodeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
