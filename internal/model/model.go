package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type MemberRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	FrameColor   string `json:"frameColor"`
	ProfileEmoji string `json:"profileEmoji"`
}

type ProgramRequest struct {
	Name                  string `json:"name" binding:"required"`
	Company               string `json:"company" binding:"required"`
	LogoColor             string `json:"logoColor"`
	Website               string `json:"website"`
	PointValuePerThousand *int64 `json:"pointValuePerThousand"`
}

type EnrollRequest struct {
	MemberID      int64          `json:"memberId" binding:"required"`
	ProgramID     int64          `json:"programId" binding:"required"`
	AccountNumber string         `json:"accountNumber"`
	PointsBalance int64          `json:"pointsBalance"`
	AccountData   []AccountField `json:"accountData"`
}

// EnrollmentUpdate carries a partial update; nil fields keep their
// current value. Writes are last-write-wins.
type EnrollmentUpdate struct {
	AccountNumber *string        `json:"accountNumber"`
	PointsBalance *int64         `json:"pointsBalance"`
	AccountData   []AccountField `json:"accountData"`
}

type DashboardStats struct {
	TotalMembers   int64  `json:"totalMembers"`
	ActivePrograms int64  `json:"activePrograms"`
	TotalPoints    int64  `json:"totalPoints"`
	EstimatedValue string `json:"estimatedValue"`
}

// EnrollmentView is a MemberProgram with its read-time estimated value.
// The value is always recomputed from the balance, never stored.
type EnrollmentView struct {
	MemberProgram
	EstimatedValue string `json:"estimatedValue"`
}

type MemberWithPrograms struct {
	FamilyMember
	Programs []EnrollmentView `json:"programs"`
}

type WhatsAppReport struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	Link    string `json:"link"`
}
