package lostfound

import (
	"strings"
	"time"
)

// ItemStatus is the moderation state of a lost or found item.
type ItemStatus string

// Item moderation states.
const (
	StatusPending  ItemStatus = "PENDING"
	StatusApproved ItemStatus = "APPROVED"
	StatusRejected ItemStatus = "REJECTED"
)

// ParseItemStatus normalizes a status string; ok is false for unknown values.
func ParseItemStatus(s string) (ItemStatus, bool) {
	status := ItemStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return status, true
	default:
		return "", false
	}
}

// ItemType tells the moderation endpoint which collection an item lives in.
type ItemType string

// Item collections.
const (
	ItemTypeLost  ItemType = "LOST"
	ItemTypeFound ItemType = "FOUND"
)

// ParseItemType normalizes a type string; ok is false for unknown values.
func ParseItemType(s string) (ItemType, bool) {
	itemType := ItemType(strings.ToUpper(strings.TrimSpace(s)))
	switch itemType {
	case ItemTypeLost, ItemTypeFound:
		return itemType, true
	default:
		return "", false
	}
}

// Role is the account role.
type Role string

// Account roles.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is an account as returned by the API. It never carries a password.
type User struct {
	ID          int64     `json:"id"                    yaml:"id"`
	Email       string    `json:"email"                 yaml:"email"`
	FirstName   string    `json:"firstName,omitempty"   yaml:"first_name,omitempty"`
	LastName    string    `json:"lastName,omitempty"    yaml:"last_name,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty" yaml:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"     yaml:"address,omitempty"`
	Role        Role      `json:"role,omitempty"        yaml:"role,omitempty"`
	IsBanned    bool      `json:"isBanned"              yaml:"is_banned"`
	CreatedAt   time.Time `json:"createdAt"             yaml:"created_at"`
}

// SignupRequest is the body of the signup endpoint.
type SignupRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=6"`
	FirstName   string `json:"firstName"   validate:"required"`
	LastName    string `json:"lastName"    validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Address     string `json:"address"     validate:"required"`
}

// SigninRequest is the body of the signin endpoint.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SigninResult is the data member of a successful signin response.
type SigninResult struct {
	Token string `json:"token"          yaml:"token"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	User  *User  `json:"user,omitempty" yaml:"user,omitempty"`
}

// LostItem is an item reported lost.
type LostItem struct {
	ID          int64      `json:"id"                 yaml:"id"`
	UserID      int64      `json:"userId"             yaml:"user_id"`
	Title       string     `json:"title"              yaml:"title"`
	Description string     `json:"description"        yaml:"description"`
	Category    string     `json:"category"           yaml:"category"`
	Location    string     `json:"location"           yaml:"location"`
	ImageURL    string     `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
	LostDate    time.Time  `json:"lostDate"           yaml:"lost_date"`
	Status      ItemStatus `json:"status"             yaml:"status"`
	CreatedAt   time.Time  `json:"createdAt"          yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt"          yaml:"updated_at"`
}

// FoundItem is an item reported found.
type FoundItem struct {
	ID              int64      `json:"id"                        yaml:"id"`
	UserID          int64      `json:"userId"                    yaml:"user_id"`
	Title           string     `json:"title"                     yaml:"title"`
	Description     string     `json:"description"               yaml:"description"`
	Category        string     `json:"category"                  yaml:"category"`
	Location        string     `json:"location"                  yaml:"location"`
	ImageURL        string     `json:"imageUrl,omitempty"        yaml:"image_url,omitempty"`
	FoundDate       time.Time  `json:"foundDate"                 yaml:"found_date"`
	StorageLocation string     `json:"storageLocation"           yaml:"storage_location"`
	Status          ItemStatus `json:"status"                    yaml:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty" yaml:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"                 yaml:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt"                 yaml:"updated_at"`
}

// LostItemRequest is the body used to create or update a lost item.
type LostItemRequest struct {
	Title       string    `json:"title,omitempty"       validate:"required"`
	Description string    `json:"description,omitempty" validate:"required"`
	Category    string    `json:"category,omitempty"    validate:"required"`
	Location    string    `json:"location,omitempty"    validate:"required"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	LostDate    time.Time `json:"lostDate"              validate:"required"`
}

// FoundItemRequest is the body used to create or update a found item.
type FoundItemRequest struct {
	Title           string    `json:"title,omitempty"           validate:"required"`
	Description     string    `json:"description,omitempty"     validate:"required"`
	Category        string    `json:"category,omitempty"        validate:"required"`
	Location        string    `json:"location,omitempty"        validate:"required"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	FoundDate       time.Time `json:"foundDate"                 validate:"required"`
	StorageLocation string    `json:"storageLocation,omitempty" validate:"required"`
}

// ItemStatusUpdate is the body of the admin item moderation endpoint.
type ItemStatusUpdate struct {
	Status          ItemStatus `json:"status"`
	Type            ItemType   `json:"type"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

// BanUpdate is the body of the admin user moderation endpoint.
type BanUpdate struct {
	IsBanned bool `json:"isBanned"`
}

// Report is the data member of the admin reports endpoint.
type Report struct {
	UserStats      UserStats  `json:"userStats"      yaml:"user_stats"`
	ItemStats      ItemStats  `json:"itemStats"      yaml:"item_stats"`
	RecentActivity []Activity `json:"recentActivity" yaml:"recent_activity"`
}

// UserStats summarizes accounts.
type UserStats struct {
	Total  int `json:"total"  yaml:"total"`
	Admins int `json:"admins" yaml:"admins"`
	Banned int `json:"banned" yaml:"banned"`
}

// ItemStats summarizes items across both collections.
type ItemStats struct {
	Lost     int `json:"lost"     yaml:"lost"`
	Found    int `json:"found"    yaml:"found"`
	Pending  int `json:"pending"  yaml:"pending"`
	Approved int `json:"approved" yaml:"approved"`
	Rejected int `json:"rejected" yaml:"rejected"`
}

// Activity is a single entry of the recent activity feed.
type Activity struct {
	Action    string    `json:"action"           yaml:"action"`
	ItemType  ItemType  `json:"itemType,omitempty" yaml:"item_type,omitempty"`
	ItemID    int64     `json:"itemId,omitempty" yaml:"item_id,omitempty"`
	UserID    int64     `json:"userId,omitempty" yaml:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"        yaml:"timestamp"`
}
