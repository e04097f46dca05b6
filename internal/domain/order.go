package domain

// Order is an append-only purchase record. Orders are never updated or
// deleted by this layer.
type Order struct {
	ID              string  `json:"id,omitempty"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	ShippingAddress string  `json:"shippingAddress"`
	ProductName     string  `json:"productName"`
	TotalAmount     float64 `json:"totalAmount"`
	OrderDate       string  `json:"orderDate,omitempty"`
}

// PrayerTimes holds one day of prayer times for display.
type PrayerTimes struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
	Date    string `json:"date"`
}
