// Package eligibility computes a minor's exact age at a session's start date
// and checks it against a stay's admissible range. It is the sole gate before
// a booking can be confirmed and must be re-evaluated whenever the birth date
// or the selected session changes.
package eligibility

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339 (session dates arrive as ISO
// timestamps from the catalog).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// AgeAt returns the exact calendar age at target: year difference, minus one
// when the birthday anchored in target's year has not yet passed.
func AgeAt(birth, target time.Time) int {
	age := target.Year() - birth.Year()
	birthday := time.Date(target.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	if t.Before(birthday) {
		age--
	}
	return age
}

// Result is the outcome of an age check. A nil Message with Valid=false means
// the question is not yet answerable (a date is missing) and callers must not
// render an error.
type Result struct {
	Valid   bool    `json:"valid"`
	Age     *int    `json:"age"`
	Message *string `json:"message"`
}

// Validate checks the minor's age at the session start against [ageMin,
// ageMax] inclusive. Dates are strings on purpose: they arrive straight from
// user input and the catalog, and an unparseable value is a validation
// message, never an error.
func Validate(birthDate, sessionStart string, ageMin, ageMax int) Result {
	if strings.TrimSpace(birthDate) == "" || strings.TrimSpace(sessionStart) == "" {
		return Result{}
	}

	birth, errB := ParseDate(birthDate)
	start, errS := ParseDate(sessionStart)
	if errB != nil || errS != nil {
		msg := "Date de naissance invalide"
		return Result{Message: &msg}
	}

	age := AgeAt(birth, start)
	if age < ageMin || age > ageMax {
		msg := fmt.Sprintf(
			"À la date du départ, l'enfant aura %d ans. Ce séjour est prévu pour les %d–%d ans.",
			age, ageMin, ageMax)
		return Result{Age: &age, Message: &msg}
	}
	return Result{Valid: true, Age: &age}
}
