package gateway

import (
	"encoding/json"
	"time"
)

// Product is a read-only catalog entry owned by the external API.
// It is only displayed and referenced by ID, never mutated here.
type Product struct {
	ID                 string   `json:"_id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	PriceAfterDiscount float64  `json:"priceAfterDiscount,omitempty"`
	RatingsAverage     float64  `json:"ratingsAverage"`
	RatingsQuantity    int      `json:"ratingsQuantity"`
	ImageCover         string   `json:"imageCover"`
	Images             []string `json:"images,omitempty"`
	Category           Category `json:"category"`
	Brand              Brand    `json:"brand"`
}

// UnitPrice prefers the discounted price over the list price when present
func (p *Product) UnitPrice() float64 {
	if p.PriceAfterDiscount > 0 {
		return p.PriceAfterDiscount
	}
	return p.Price
}

// Category as returned by GET /categories
type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// Brand as returned by GET /brands
type Brand struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// CartItem is one product entry in the server-side cart
type CartItem struct {
	Count   int     `json:"count"`
	Price   float64 `json:"price"`
	Product Product `json:"product"`
}

// Cart is the authoritative cart as returned by the API.
// Items keep the server-returned order.
type Cart struct {
	ID         string     `json:"_id"`
	Items      []CartItem `json:"products"`
	TotalPrice float64    `json:"totalCartPrice"`
	// NumItems comes from the envelope's numOfCartItems field
	NumItems int `json:"-"`
}

// Wishlist is the set of favorited products as returned by the API
type Wishlist struct {
	Count int
	Items []Product
}

// ProductPage is one page of the catalog listing
type ProductPage struct {
	Products      []Product
	Results       int
	CurrentPage   int
	NumberOfPages int
	Limit         int
}

// Order as returned by GET /orders
type Order struct {
	ID              string     `json:"_id"`
	TotalOrderPrice float64    `json:"totalOrderPrice"`
	PaymentMethod   string     `json:"paymentMethodType"`
	IsPaid          bool       `json:"isPaid"`
	IsDelivered     bool       `json:"isDelivered"`
	CreatedAt       time.Time  `json:"createdAt"`
	CartItems       []CartItem `json:"cartItems"`
}

// User identity carried on auth responses
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Credentials is the outcome of a successful login or registration
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Registration carries the signup form fields
type Registration struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	Phone      string `json:"phone"`
}

// Response envelopes. The API wraps payloads as
// { data: ..., numOfCartItems?: ..., metadata?: { numberOfPages, ... } };
// each endpoint family gets an explicit schema so shape mismatches are
// caught at the boundary instead of propagating zero values.

type cartEnvelope struct {
	Status         string `json:"status"`
	NumOfCartItems int    `json:"numOfCartItems"`
	Data           *Cart  `json:"data"`
}

// CartReceipt acknowledges a cart mutation. Mutation responses do not
// reliably populate product objects (the API sometimes returns bare product
// IDs in them), so only the totals are decoded; the optimistic projection
// in the state layer remains the rendered truth until the next full fetch.
type CartReceipt struct {
	NumOfCartItems int
	TotalPrice     float64
}

type cartMutationEnvelope struct {
	Status         string `json:"status"`
	NumOfCartItems int    `json:"numOfCartItems"`
	Data           struct {
		TotalCartPrice float64         `json:"totalCartPrice"`
		Products       json.RawMessage `json:"products"`
	} `json:"data"`
}

type wishlistEnvelope struct {
	Status string    `json:"status"`
	Count  int       `json:"count"`
	Data   []Product `json:"data"`
}

type productsEnvelope struct {
	Results  int `json:"results"`
	Metadata struct {
		CurrentPage   int `json:"currentPage"`
		NumberOfPages int `json:"numberOfPages"`
		Limit         int `json:"limit"`
	} `json:"metadata"`
	Data []Product `json:"data"`
}

type categoriesEnvelope struct {
	Results int        `json:"results"`
	Data    []Category `json:"data"`
}

type brandsEnvelope struct {
	Results int     `json:"results"`
	Data    []Brand `json:"data"`
}

type ordersEnvelope struct {
	Data []Order `json:"data"`
}

type authEnvelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

type statusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
