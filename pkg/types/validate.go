package types

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
)

var ErrValidation = errors.New("validation failed")

var EducationLevels = []string{"none", "primary", "secondary", "vocational", "bachelor", "master", "phd"}

var DocumentTypes = []string{DocumentCoverLetter, DocumentResume, DocumentApplicationEmail}

// FieldErrors collects per-field problems. It unwraps to ErrValidation.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f[k]))
	}
	return strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error { return ErrValidation }

func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func minLen(s string, n int) bool {
	return len([]rune(strings.TrimSpace(s))) >= n
}

func (p *NewUserProfile) Validate() error {
	return p.profile().Validate()
}

func (p *NewUserProfile) profile() *UserProfile {
	return &UserProfile{
		Email:               p.Email,
		FullName:            p.FullName,
		Age:                 p.Age,
		Nationality:         p.Nationality,
		CurrentLocation:     p.CurrentLocation,
		Languages:           p.Languages,
		Education:           p.Education,
		WorkExperience:      p.WorkExperience,
		Skills:              p.Skills,
		PreferredCountries:  p.PreferredCountries,
		PreferredIndustries: p.PreferredIndustries,
		SalaryExpectation:   p.SalaryExpectation,
	}
}

// Validate applies the same rules as the profile form.
func (p *UserProfile) Validate() error {
	errs := FieldErrors{}

	if _, err := mail.ParseAddress(p.Email); err != nil || !strings.Contains(p.Email, "@") {
		errs["email"] = "Invalid email address"
	}
	if !minLen(p.FullName, 2) {
		errs["fullName"] = "Full name must be at least 2 characters"
	}
	if p.Age < 16 {
		errs["age"] = "Must be at least 16 years old"
	} else if p.Age > 80 {
		errs["age"] = "Must be under 80"
	}
	if !minLen(p.Nationality, 2) {
		errs["nationality"] = "Please select your nationality"
	}
	if !minLen(p.CurrentLocation, 2) {
		errs["currentLocation"] = "Please enter your current location"
	}
	if len(p.Languages) == 0 {
		errs["languages"] = "Please add at least one language"
	}
	if !slices.Contains(EducationLevels, p.Education) {
		errs["education"] = "Please select your education level"
	}
	if len(p.Skills) == 0 {
		errs["skills"] = "Please add at least one skill"
	}
	if len(p.PreferredCountries) == 0 {
		errs["preferredCountries"] = "Please select at least one preferred country"
	}
	if len(p.PreferredIndustries) == 0 {
		errs["preferredIndustries"] = "Please select at least one preferred industry"
	}
	if msg := validateSalary(p.SalaryExpectation); msg != "" {
		errs["salaryExpectation"] = msg
	}
	for i, w := range p.WorkExperience {
		if strings.TrimSpace(w.Title) == "" || w.YearsOfExperience < 0 {
			errs[fmt.Sprintf("workExperience[%d]", i)] = "Title and non-negative years are required"
		}
	}

	return errs.orNil()
}

func validateSalary(s SalaryRange) string {
	switch {
	case s.Min < 0:
		return "Minimum salary must be positive"
	case s.Max < 0:
		return "Maximum salary must be positive"
	case s.Max < s.Min:
		return "Maximum salary must not be below minimum"
	case strings.TrimSpace(s.Currency) == "":
		return "Please select a currency"
	}
	return ""
}

func (j *NewJobOpportunity) Validate() error {
	job := &JobOpportunity{
		Title:             j.Title,
		Company:           j.Company,
		Country:           j.Country,
		City:              j.City,
		Industry:          j.Industry,
		Description:       j.Description,
		Salary:            j.Salary,
		EducationRequired: j.EducationRequired,
	}
	if j.ExperienceRequired != nil {
		job.ExperienceRequired = *j.ExperienceRequired
	}
	return job.Validate()
}

func (j *JobOpportunity) Validate() error {
	errs := FieldErrors{}
	required := map[string]string{
		"title":             j.Title,
		"company":           j.Company,
		"country":           j.Country,
		"city":              j.City,
		"industry":          j.Industry,
		"description":       j.Description,
		"educationRequired": j.EducationRequired,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			errs[field] = "is required"
		}
	}
	if j.EducationRequired != "" && !slices.Contains(EducationLevels, j.EducationRequired) {
		errs["educationRequired"] = "must be one of " + strings.Join(EducationLevels, ", ")
	}
	if j.ExperienceRequired < 0 {
		errs["experienceRequired"] = "must not be negative"
	}
	if msg := validateSalary(j.Salary); msg != "" {
		errs["salary"] = msg
	}
	return errs.orNil()
}

func (d *DocumentRequest) Validate() error {
	errs := FieldErrors{}
	if strings.TrimSpace(d.UserID) == "" {
		errs["userId"] = "User ID is required"
	}
	if !slices.Contains(DocumentTypes, d.Type) {
		errs["type"] = "must be one of " + strings.Join(DocumentTypes, ", ")
	}
	return errs.orNil()
}

// ValidDifficulty reports whether d is one of easy, medium or hard.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentCompleted || s == PaymentFailed
}
