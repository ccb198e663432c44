package forms

// Strength rates a password for the strength meter.
type Strength struct {
	// Score counts the criteria met, from 0 to 5.
	Score int
	// Label is "Faible", "Moyen" or "Fort".
	Label string
	// Level is "weak", "medium" or "strong", for styling.
	Level string
	// Percentage fills the meter.
	Percentage int
}

// PasswordStrength scores one point each for a length of at least eight, an
// upper case letter, a lower case letter, a digit and any other character.
func PasswordStrength(password string) Strength {
	var upper, lower, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	var score int
	for _, met := range []bool{
		len([]rune(password)) >= MinPasswordLength,
		upper,
		lower,
		digit,
		other,
	} {
		if met {
			score++
		}
	}
	switch {
	case score < 3:
		return Strength{Score: score, Label: "Faible", Level: "weak", Percentage: 25}
	case score < 5:
		return Strength{Score: score, Label: "Moyen", Level: "medium", Percentage: 60}
	}
	return Strength{Score: score, Label: "Fort", Level: "strong", Percentage: 100}
}
