package odds

import (
	"fmt"
)

// Format renders a result the way it is shown to a player.
func Format(r Result) string {
	return fmt.Sprintf("Chance to hit a desired unit: %.2f%%", r.Percent)
}

// Render turns the outcome of Compute into display text. Any error becomes the
// generic validation message; Compute returns no other kind.
func Render(r Result, err error) string {
	if err != nil {
		return ValidationMessage
	}
	return Format(r)
}
