package model

import "time"

// Optional columns that carry a storage default are pointers or zero
// values; an unset field is left out of the INSERT so the default applies.

type User struct {
	ID            string
	WalletAddress string
	WalletType    WalletType // default evm
	Nickname      *string
	Role          Role // default user
	Avatar        *string
	TotalRoutes   *int      // default 0
	CreatedAt     time.Time // default now
}

type Route struct {
	ID            string
	Name          string
	Description   *string
	CoverImage    *string
	Difficulty    Difficulty // default medium
	EstimatedTime int
	POICount      *int // default 3
	NFTCollection *string
	IsActive      *bool // default true
}

type POI struct {
	ID          string
	RouteID     string
	Name        string
	Description *string
	Latitude    float64
	Longitude   float64
	Radius      *int     // default 50
	TaskType    TaskType // default photo
	TaskContent *string
	Order       int
}

type Checkin struct {
	ID        string
	UserID    string
	RouteID   string
	POIID     string
	Signature string
	Message   string
	TaskData  *string
	Status    CheckinStatus // default pending
	CreatedAt time.Time
}

type Voucher struct {
	ID         string
	UserID     string
	RouteID    string
	Status     VoucherStatus // default pending
	NFTTokenID *string
	MintTxHash *string
	Metadata   *string
	CreatedAt  time.Time
}
