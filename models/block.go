package models

// Block is a discrete time slot of a service day.
type Block struct {
	Number   int    `bson:"number" json:"number"`
	HourFrom string `bson:"hourFrom" json:"hourFrom"`
	HourTo   string `bson:"hourTo" json:"hourTo"`
}

// IsSet reports whether b carries a usable block number.
func (b *Block) IsSet() bool {
	return b != nil && b.Number > 0
}
