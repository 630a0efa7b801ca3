package models

import "fmt"

// ItemKind discriminates the two inventory families an order line can
// reference.
type ItemKind string

const (
	KindBike ItemKind = "bike"
	KindPart ItemKind = "part"
)

func ParseItemKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case KindBike:
		return KindBike, nil
	case KindPart:
		return KindPart, nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Username     string `gorm:"unique;not null"           json:"username"`
	PasswordHash string `gorm:"not null"                  json:"-"`
	Role         string `gorm:"not null;default:customer" json:"role"`
}

// Staff lives independently of User; UserID is an optional link to a
// login account.
type Staff struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	Position string `json:"position"`
	UserID   *uint  `gorm:"index"                    json:"user_id,omitempty"`
}

type Bike struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Model    string  `gorm:"not null"                 json:"model"`
	Brand    string  `gorm:"not null"                 json:"brand"`
	Price    float64 `gorm:"not null"                 json:"price"`
	Quantity uint    `json:"quantity"`
}

type Part struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"not null"                 json:"name"`
	Category string  `json:"category"`
	Price    float64 `gorm:"not null"                 json:"price"`
	Quantity uint    `json:"quantity"`
}

type Order struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint    `gorm:"index;not null"           json:"user_id"`
	CreatedAt int64   `gorm:"not null"                 json:"created_at"`
	Total     float64 `gorm:"not null"                 json:"total"`
}

type OrderLine struct {
	ID       uint     `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID  uint     `gorm:"index;not null"            json:"order_id"`
	ItemID   uint     `gorm:"not null"                  json:"item_id"`
	ItemKind ItemKind `gorm:"not null"                  json:"item_kind"`
	Quantity uint     `gorm:"not null;check:quantity>0" json:"quantity"`
}

// Transaction is a free-form ledger entry, independent of any Order.
type Transaction struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Date        string  `gorm:"not null"                 json:"date"`
	Amount      float64 `gorm:"not null"                 json:"amount"`
	Description string  `json:"description"`
}
