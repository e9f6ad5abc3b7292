// internal/domain/exercise.go
package domain

// Exercise is one logged activity. Exercises have no identity of their own;
// they belong to exactly one user through UserID.
type Exercise struct {
	UserID      string `bson:"userId" json:"-"`
	Description string `bson:"description" json:"description"`
	// Duration is in minutes. Nil marks input that was not a number and
	// serializes as JSON null.
	Duration *int   `bson:"duration" json:"duration"`
	Date     string `bson:"date" json:"date"` // Always in DateLayout, or InvalidDate

	Seq int64 `bson:"seq" json:"-"`
}

// Day returns the calendar day of the exercise and false when the stored
// date does not parse back.
func (e *Exercise) Day() (Day, bool) {
	return ParseStoredDate(e.Date)
}
