package models

// Product represents a catalog item. The remote catalog service owns it;
// the client only ever holds a possibly-stale snapshot.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// NewProductRequest is the payload for creating a product
type NewProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// ProductForm carries the raw form fields for the new-product dialog.
// Price and Quantity stay strings until validation so that a bad number
// is reported as a field error, not a marshalling failure.
type ProductForm struct {
	Name        string `validate:"required"`
	Description string
	Price       string `validate:"required"`
	Quantity    string `validate:"required"`
}
