package model

import "time"

type User struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
}

type LoyaltyProgram struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex" json:"name"`
	Company   string `json:"company"`
	LogoColor string `json:"logoColor"`
	Website   string `json:"website,omitempty"`
	// Legacy column from older clients that stored a per-program valuation.
	// Served as-is; the dashboard always values balances through the
	// valuation table instead.
	PointValuePerThousand *int64    `json:"pointValuePerThousand,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

type FamilyMember struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"index" json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Role         string    `gorm:"default:extended" json:"role"` // primary, extended, view_only
	FrameColor   string    `json:"frameColor"`
	ProfileEmoji string    `json:"profileEmoji"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountField is one credential or note attached to an enrollment
// ("login", "senha", "CPF do titular"...). Stored as a JSON column.
type AccountField struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type MemberProgram struct {
	ID            int64          `gorm:"primaryKey" json:"id"`
	MemberID      int64          `gorm:"uniqueIndex:uk_member_program" json:"memberId"`
	ProgramID     int64          `gorm:"uniqueIndex:uk_member_program" json:"programId"`
	AccountNumber string         `json:"accountNumber"`
	PointsBalance int64          `json:"pointsBalance"`
	AccountData   []AccountField `gorm:"serializer:json" json:"accountData,omitempty"`
	LastUpdated   time.Time      `gorm:"autoUpdateTime" json:"lastUpdated"`

	Member  *FamilyMember   `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	Program *LoyaltyProgram `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"program,omitempty"`
}

// ActivityLog is append-only: rows are inserted on every mutation and
// never updated or deleted by the application.
type ActivityLog struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	UserID      int64          `gorm:"index" json:"userId"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"timestamp"`
}

func (User) TableName() string           { return "users" }
func (LoyaltyProgram) TableName() string { return "loyalty_programs" }
func (FamilyMember) TableName() string   { return "family_members" }
func (MemberProgram) TableName() string  { return "member_programs" }
func (ActivityLog) TableName() string    { return "activity_logs" }
