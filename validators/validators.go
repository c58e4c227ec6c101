package validators

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"playbox/errs"
	"playbox/models"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsRegex = regexp.MustCompile(`^\d+$`)
	cardNumRe   = regexp.MustCompile(`^\d{4,19}$`)
	expiryRe    = regexp.MustCompile(`^(0[1-9]|1[0-2])/?\d{2}$`)
	cvvRe       = regexp.MustCompile(`^\d{3,4}$`)
)

func ValidateString(field, val string, minLen, maxLen int) error {
	length := utf8.RuneCountInString(val)
	if length < minLen || length > maxLen {
		return errs.Validation("validators", "%s must be between %d and %d characters", field, minLen, maxLen)
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errs.New("validators", errs.KindValidation, "invalid email format")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if !digitsRegex.MatchString(phone) {
		return errs.New("validators", errs.KindValidation, "Phone number must contain only digits")
	}
	return nil
}

func ValidateSignUp(req *models.SignUpRequest) error {
	if req.UserName == "" || req.Email == "" || req.Password == "" || req.PhoneNumber == "" {
		return errs.New("validators", errs.KindValidation, "Please fill in all fields")
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	return ValidatePhone(req.PhoneNumber)
}

func ValidateCredentials(creds *models.Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return errs.New("validators", errs.KindValidation, "Please fill in all fields")
	}
	return nil
}

// ValidateCard checks that every card field is present and plausibly shaped.
func ValidateCard(card *models.CardDetails) error {
	if card == nil || card.CardNumber == "" || card.ExpiryDate == "" || card.CVV == "" || card.Name == "" {
		return errs.New("validators", errs.KindValidation, "Invalid payment details")
	}
	if !cardNumRe.MatchString(strings.ReplaceAll(card.CardNumber, " ", "")) {
		return errs.New("validators", errs.KindValidation, "card number must contain 4 to 19 digits")
	}
	if !expiryRe.MatchString(card.ExpiryDate) {
		return errs.New("validators", errs.KindValidation, "expiry date must be MM/YY")
	}
	if !cvvRe.MatchString(card.CVV) {
		return errs.New("validators", errs.KindValidation, "cvv must be 3 or 4 digits")
	}
	return nil
}

func ValidatePayPal(pp *models.PayPalDetails) error {
	if pp == nil || pp.Email == "" {
		return errs.New("validators", errs.KindValidation, "Please enter your PayPal email")
	}
	if !strings.Contains(pp.Email, "@") || !strings.Contains(pp.Email, ".") {
		return errs.New("validators", errs.KindValidation, "Please enter a valid email address")
	}
	return nil
}

// ValidateProduct enforces the fields the createProduct route requires.
func ValidateProduct(p *models.Product) error {
	if p == nil || p.Name == "" || len(p.Color) == 0 || p.Category == "" {
		return errs.New("validators", errs.KindValidation,
			"Missing required fields. Product must have Name, color array, and category")
	}
	for _, c := range p.Color {
		if c.ColorName == "" || c.Color == "" || len(c.Images) == 0 {
			return errs.New("validators", errs.KindValidation,
				"Invalid color item structure. Each color must have colorName, color, and at least one image")
		}
	}
	return nil
}
