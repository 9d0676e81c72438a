package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency is the recurrence class of a chore.
type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is one of the four recurrence classes.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Recurring reports whether f rolls forward instead of completing.
func (f Frequency) Recurring() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

type User struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	HouseholdCode *string   `json:"householdCode,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Household is a named group identified by a short invite code.
// Members is a cached projection of users.household_code, refreshed on join;
// the users table is the source of truth for membership.
type Household struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chore is one task, one-time or recurring. Creator and assignee are member
// identities (email or name). An empty AssignedTo means the chore is shared.
type Chore struct {
	ID            uuid.UUID  `json:"id"`
	HouseholdCode string     `json:"householdCode"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CreatedBy     string     `json:"createdBy"`
	AssignedTo    string     `json:"assignedTo"`
	DueDate       time.Time  `json:"dueDate"`
	Frequency     Frequency  `json:"frequency"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CompletedBy   string     `json:"completedBy,omitempty"`
	// Last completion of a recurring chore, overwritten on every rollover.
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
	LastCompletedBy string     `json:"lastCompletedBy,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type Grocery struct {
	ID            uuid.UUID `json:"id"`
	HouseholdCode string    `json:"householdCode"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Quantity      string    `json:"quantity"`
	IsPurchased   bool      `json:"isPurchased"`
	AddedBy       string    `json:"addedBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GroceryHistory records one purchase of a grocery item. Rows are removed
// together with the item they belong to.
type GroceryHistory struct {
	ID            uuid.UUID `json:"id"`
	HouseholdCode string    `json:"householdCode"`
	GroceryID     uuid.UUID `json:"groceryId"`
	Name          string    `json:"name"`
	Quantity      string    `json:"quantity"`
	Category      string    `json:"category"`
	AddedBy       string    `json:"addedBy"`
	PurchasedBy   string    `json:"purchasedBy"`
	PurchasedAt   time.Time `json:"purchasedAt"`
}

type Notice struct {
	ID            uuid.UUID       `json:"id"`
	HouseholdCode string          `json:"householdCode"`
	Title         string          `json:"title"`
	Message       string          `json:"message"`
	CreatedBy     string          `json:"createdBy"`
	Likes         []string        `json:"likes"`
	Comments      []NoticeComment `json:"comments"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type NoticeComment struct {
	ID        uuid.UUID `json:"id"`
	NoticeID  uuid.UUID `json:"noticeId"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expense is one shared cost. PerPerson is derived from Amount and SplitWith
// at creation time and never edited independently. Expenses are immutable
// after creation except by deletion.
type Expense struct {
	ID            uuid.UUID       `json:"id"`
	HouseholdCode string          `json:"householdCode"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	PaidBy        string          `json:"paidBy"`
	SplitWith     []string        `json:"splitWith"`
	PerPerson     decimal.Decimal `json:"perPerson"`
	Type          string          `json:"type"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Settlement is a free-form debt-repayment entry between two members.
// It is not validated against any computed balance.
type Settlement struct {
	ID            uuid.UUID       `json:"id"`
	HouseholdCode string          `json:"householdCode"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
