package types

import "time"

// =============== profile TYPES ===============
type WorkExperience struct {
	Title             string `json:"title"`
	Industry          string `json:"industry"`
	YearsOfExperience int    `json:"yearsOfExperience"`
	Description       string `json:"description,omitempty"`
}

type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

type UserProfile struct {
	ID                  string           `json:"id"`
	Email               string           `json:"email"`
	FullName            string           `json:"fullName"`
	Age                 int              `json:"age"`
	Nationality         string           `json:"nationality"`
	CurrentLocation     string           `json:"currentLocation"`
	Languages           []string         `json:"languages"`
	Education           string           `json:"education"`
	WorkExperience      []WorkExperience `json:"workExperience"`
	Skills              []string         `json:"skills"`
	PreferredCountries  []string         `json:"preferredCountries"`
	PreferredIndustries []string         `json:"preferredIndustries"`
	SalaryExpectation   SalaryRange      `json:"salaryExpectation"`
	WillingToRelocate   bool             `json:"willingToRelocate"`
	HasPassport         bool             `json:"hasPassport"`
	CreatedAt           time.Time        `json:"createdAt"`
}

// NewUserProfile is the insert form of a profile. Optional flags are pointers
// so an absent field can take its default.
type NewUserProfile struct {
	Email               string           `json:"email"`
	FullName            string           `json:"fullName"`
	Age                 int              `json:"age"`
	Nationality         string           `json:"nationality"`
	CurrentLocation     string           `json:"currentLocation"`
	Languages           []string         `json:"languages"`
	Education           string           `json:"education"`
	WorkExperience      []WorkExperience `json:"workExperience"`
	Skills              []string         `json:"skills"`
	PreferredCountries  []string         `json:"preferredCountries"`
	PreferredIndustries []string         `json:"preferredIndustries"`
	SalaryExpectation   SalaryRange      `json:"salaryExpectation"`
	WillingToRelocate   *bool            `json:"willingToRelocate,omitempty"`
	HasPassport         *bool            `json:"hasPassport,omitempty"`
}

// =============== job TYPES ===============
type JobOpportunity struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Company            string      `json:"company"`
	Country            string      `json:"country"`
	City               string      `json:"city"`
	Industry           string      `json:"industry"`
	Description        string      `json:"description"`
	Requirements       []string    `json:"requirements"`
	Salary             SalaryRange `json:"salary"`
	LanguagesRequired  []string    `json:"languagesRequired"`
	VisaSponsorship    bool        `json:"visaSponsorship"`
	ExperienceRequired int         `json:"experienceRequired"`
	EducationRequired  string      `json:"educationRequired"`
	IsActive           bool        `json:"isActive"`
	CreatedAt          time.Time   `json:"createdAt"`
}

type NewJobOpportunity struct {
	Title              string      `json:"title"`
	Company            string      `json:"company"`
	Country            string      `json:"country"`
	City               string      `json:"city"`
	Industry           string      `json:"industry"`
	Description        string      `json:"description"`
	Requirements       []string    `json:"requirements"`
	Salary             SalaryRange `json:"salary"`
	LanguagesRequired  []string    `json:"languagesRequired"`
	VisaSponsorship    *bool       `json:"visaSponsorship,omitempty"`
	ExperienceRequired *int        `json:"experienceRequired,omitempty"`
	EducationRequired  string      `json:"educationRequired"`
	IsActive           *bool       `json:"isActive,omitempty"`
}

// JobFilter narrows a job listing. Country and Industry match as
// case-insensitive substrings; a nil Active matches both states.
type JobFilter struct {
	Country  string
	Industry string
	Active   *bool
}

// =============== matching TYPES ===============
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type RequiredStep struct {
	Step          int    `json:"step"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimatedTime"`
	Cost          int    `json:"cost"`
}

type JobMatch struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"userId"`
	JobID              string         `json:"jobId"`
	MatchScore         int            `json:"matchScore"`
	MatchAnalysis      string         `json:"matchAnalysis"`
	RequiredSteps      []RequiredStep `json:"requiredSteps"`
	OverallDifficulty  string         `json:"overallDifficulty"`
	SuccessProbability int            `json:"successProbability"`
	CreatedAt          time.Time      `json:"createdAt"`
}

type NewJobMatch struct {
	UserID             string
	JobID              string
	MatchScore         int
	MatchAnalysis      string
	RequiredSteps      []RequiredStep
	OverallDifficulty  string
	SuccessProbability int
}

// MatchWithJob is a stored match returned together with the job it scores.
// Job is nil when the job no longer exists.
type MatchWithJob struct {
	JobMatch
	Job *JobOpportunity `json:"job"`
}

// MatchAssessment is what the model answered for one profile/job pair, with
// absent fields left nil so defaults can be told apart from zeros.
type MatchAssessment struct {
	MatchScore         *float64
	Analysis           string
	Difficulty         string
	SuccessProbability *float64
	RequiredSteps      []RequiredStep
}

// =============== pricing TYPES ===============
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type PricingTier struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Currency    string   `json:"currency"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
}

type ServicePricing struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	ServiceType     string    `json:"serviceType"`
	Price           int       `json:"price"`
	Currency        string    `json:"currency"`
	Features        []string  `json:"features"`
	IsActive        bool      `json:"isActive"`
	StripePaymentID *string   `json:"stripePaymentId"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

type NewServicePricing struct {
	UserID          string
	ServiceType     string
	Price           int
	Currency        string
	Features        []string
	IsActive        *bool
	StripePaymentID string
	Status          string
}

// =============== analytics TYPES ===============
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type IndustryCount struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

type JobStats struct {
	TotalJobs                 int             `json:"totalJobs"`
	VisaSponsorshipJobs       int             `json:"visaSponsorshipJobs"`
	VisaSponsorshipPercentage int             `json:"visaSponsorshipPercentage"`
	TopCountries              []CountryCount  `json:"topCountries"`
	TopIndustries             []IndustryCount `json:"topIndustries"`
}

// =============== documents TYPES ===============
const (
	DocumentCoverLetter      = "cover_letter"
	DocumentResume           = "resume"
	DocumentApplicationEmail = "application_email"
)

type DocumentRequest struct {
	UserID string `json:"userId"`
	JobID  string `json:"jobId,omitempty"`
	Type   string `json:"type"`
}

type GeneratedDocument struct {
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	UserID      string    `json:"userId"`
	JobID       string    `json:"jobId,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func BoolPtr(b bool) *bool { return &b }

func IntPtr(i int) *int { return &i }
