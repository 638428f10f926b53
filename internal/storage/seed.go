package storage

import (
	"time"

	"github.com/p-shah256/bridge/pkg/types"
)

const (
	SampleUserID  = "user-1"
	SampleMatchID = "match-1"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func (s *MemStorage) seed() {
	now := s.now()

	profile := types.UserProfile{
		ID:              SampleUserID,
		Email:           "demo@bridge.com",
		FullName:        "Alex Johnson",
		Age:             28,
		Nationality:     "American",
		CurrentLocation: "New York, USA",
		Languages:       []string{"English", "Spanish"},
		Education:       "bachelor",
		WorkExperience: []types.WorkExperience{{
			Title:             "Software Developer",
			Industry:          "Technology",
			YearsOfExperience: 3,
			Description:       "Full-stack web development using React and Node.js",
		}},
		Skills:              []string{"JavaScript", "React", "Node.js", "Python", "SQL"},
		PreferredCountries:  []string{"Canada", "Germany", "Netherlands", "Australia"},
		PreferredIndustries: []string{"Technology", "Software Development", "Startups"},
		SalaryExpectation:   types.SalaryRange{Min: 70000, Max: 100000, Currency: "USD"},
		WillingToRelocate:   true,
		HasPassport:         true,
		CreatedAt:           now,
	}
	s.userProfiles[profile.ID] = profile

	jobs := []types.JobOpportunity{
		{
			ID:                 "job-1",
			Title:              "Frontend Developer",
			Company:            "Tech Solutions GmbH",
			Country:            "Germany",
			City:               "Berlin",
			Industry:           "Technology",
			Description:        "Join our dynamic team building innovative web applications. We offer visa sponsorship and relocation assistance.",
			Requirements:       []string{"React", "TypeScript", "3+ years experience", "English fluency"},
			Salary:             types.SalaryRange{Min: 65000, Max: 85000, Currency: "EUR"},
			LanguagesRequired:  []string{"English", "German (basic)"},
			VisaSponsorship:    true,
			ExperienceRequired: 3,
			EducationRequired:  "bachelor",
			IsActive:           true,
			CreatedAt:          date("2024-08-15"),
		},
		{
			ID:                 "job-2",
			Title:              "Farm Worker",
			Company:            "Green Valley Farms",
			Country:            "Canada",
			City:               "Kelowna, BC",
			Industry:           "Agriculture",
			Description:        "Year-round position at organic farm with accommodation provided. Perfect for those seeking outdoor work and Canadian experience.",
			Requirements:       []string{"Physical fitness", "No experience required", "Willingness to learn"},
			Salary:             types.SalaryRange{Min: 35000, Max: 45000, Currency: "CAD"},
			LanguagesRequired:  []string{"English"},
			VisaSponsorship:    true,
			ExperienceRequired: 0,
			EducationRequired:  "none",
			IsActive:           true,
			CreatedAt:          date("2024-08-10"),
		},
		{
			ID:                 "job-3",
			Title:              "Hotel Receptionist",
			Company:            "Grand Hotel Amsterdam",
			Country:            "Netherlands",
			City:               "Amsterdam",
			Industry:           "Hospitality",
			Description:        "Evening shift receptionist for luxury hotel. Great opportunity to gain European work experience.",
			Requirements:       []string{"Customer service", "Multiple languages", "Professional appearance"},
			Salary:             types.SalaryRange{Min: 28000, Max: 35000, Currency: "EUR"},
			LanguagesRequired:  []string{"English", "Dutch"},
			VisaSponsorship:    false,
			ExperienceRequired: 1,
			EducationRequired:  "secondary",
			IsActive:           true,
			CreatedAt:          date("2024-08-05"),
		},
		{
			ID:                 "job-4",
			Title:              "Construction Worker",
			Company:            "Sydney Build Co",
			Country:            "Australia",
			City:               "Sydney",
			Industry:           "Construction",
			Description:        "Skilled construction work with competitive pay. Sponsorship available for right candidate.",
			Requirements:       []string{"Construction experience", "Safety certification", "Physical fitness"},
			Salary:             types.SalaryRange{Min: 55000, Max: 70000, Currency: "AUD"},
			LanguagesRequired:  []string{"English"},
			VisaSponsorship:    true,
			ExperienceRequired: 2,
			EducationRequired:  "vocational",
			IsActive:           true,
			CreatedAt:          date("2024-07-30"),
		},
	}
	for _, job := range jobs {
		s.jobOpportunities[job.ID] = job
	}

	s.jobMatches[SampleMatchID] = types.JobMatch{
		ID:            SampleMatchID,
		UserID:        profile.ID,
		JobID:         "job-1",
		MatchScore:    92,
		MatchAnalysis: "Excellent match! Your React and JavaScript skills align perfectly with this role. The salary matches your expectations, and the company offers visa sponsorship.",
		RequiredSteps: []types.RequiredStep{
			{Step: 1, Title: "Improve German Language Skills", Description: "Take basic German lessons to meet language requirements", EstimatedTime: "2-3 months", Cost: 500},
			{Step: 2, Title: "Update Resume for German Market", Description: "Format resume according to German standards (Lebenslauf)", EstimatedTime: "1 week", Cost: 0},
			{Step: 3, Title: "Apply for Work Visa", Description: "Submit visa application with job offer", EstimatedTime: "4-6 weeks", Cost: 200},
		},
		OverallDifficulty:  types.DifficultyMedium,
		SuccessProbability: 85,
		CreatedAt:          now,
	}
}
