package domain

// User is a person exercises are logged against.
type User struct {
	Username string `bson:"username" json:"username"`
	ID       string `bson:"_id" json:"_id"`

	// Seq orders users by insertion in stores without a natural order.
	Seq int64 `bson:"seq" json:"-"`
}
