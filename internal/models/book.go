package models

// Book represents one catalog entry with its on-hand stock.
// The JSON field names match the inventory API consumed by the frontend.
type Book struct {
	// ID is the unique identifier for the book, assigned by the store
	// at creation (UUID format).
	ID string `json:"id"`

	// ISBN and BookCode are free-text identifiers. Neither is required
	// to be unique; they exist for lookup and display only.
	ISBN     string `json:"isbn"`
	BookCode string `json:"bookCode"`

	// BookName, Author and Publisher are display strings.
	BookName  string `json:"bookName"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`

	// Price is the unit price in currency units. Never negative.
	Price float64 `json:"price"`

	// Quantity is the on-hand stock. Never negative after any committed
	// mutation; stock decrements clamp at zero.
	Quantity int `json:"quantity"`
}
