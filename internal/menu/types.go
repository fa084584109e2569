package menu

import "time"

// MenuItem represents the item stored in the menu table.
type MenuItem struct {
	ID          string    `json:"id" dynamodbav:"id"` // PK
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Category    string    `json:"category" dynamodbav:"category"`
	Image       string    `json:"image" dynamodbav:"image"` // URL or empty
	Available   bool      `json:"available" dynamodbav:"available"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Input holds the editable fields of a menu item.
// A nil Available means "not supplied" and is stored as true.
type Input struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	Available   *bool
}

func (in Input) available() bool {
	if in.Available == nil {
		return true
	}
	return *in.Available
}
