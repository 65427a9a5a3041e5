package salary

import "sort"

// #region job-data
// JobData is one row of the static salary table (researched averages).
type JobData struct {
	MarketRate  int    `json:"market_rate"`
	RangeLow    int    `json:"range_low"`
	RangeHigh   int    `json:"range_high"`
	Description string `json:"description"`
}

var database = map[string]JobData{
	"Software Engineer":    {95000, 75000, 130000, "Based on national averages for mid-level positions"},
	"Marketing Manager":    {75000, 60000, 95000, "Marketing leadership role"},
	"Data Analyst":         {70000, 55000, 90000, "Data analysis and reporting"},
	"Product Manager":      {110000, 90000, 145000, "Product strategy and development"},
	"Sales Representative": {65000, 45000, 85000, "Sales and business development"},
	"UX Designer":          {85000, 65000, 110000, "User experience design"},
	"HR Manager":           {72000, 58000, 92000, "Human resources management"},
	"Accountant":           {68000, 52000, 88000, "Financial accounting"},
	"Project Manager":      {88000, 70000, 115000, "Project planning and execution"},
	"Business Analyst":     {78000, 62000, 98000, "Business process analysis"},
}

// #endregion job-data

// #region bonuses
// AchievementBonuses maps selectable achievements to the fraction they add
// to the market rate.
var AchievementBonuses = map[string]float64{
	"Exceeded performance targets":         0.05,
	"Taken on additional responsibilities": 0.04,
	"Gained new certifications/skills":     0.03,
	"Led successful projects":              0.05,
	"Mentored team members":                0.03,
}

// ExperienceMultipliers scales the market rate by seniority.
var ExperienceMultipliers = map[string]float64{
	"Junior (0-2 years)":         0.7,
	"Mid-Level (3-5 years)":      1.0,
	"Senior (6-10 years)":        1.3,
	"Lead/Principal (10+ years)": 1.6,
}

// #endregion bonuses

// #region lookup
// Lookup returns the table entry for a job title.
func Lookup(job string) (JobData, bool) {
	d, ok := database[job]
	return d, ok
}

// Jobs lists the known job titles in stable order.
func Jobs() []string {
	jobs := make([]string, 0, len(database))
	for j := range database {
		jobs = append(jobs, j)
	}
	sort.Strings(jobs)
	return jobs
}

// #endregion lookup

// #region calculate
// CalculateTarget derives the target goal a player should negotiate toward:
// the market rate scaled by experience, plus achievement bonuses, never
// below the current salary. Unknown experience levels and achievements are
// ignored rather than rejected.
func CalculateTarget(marketRate int, experience string, achievements []string, currentSalary int) int {
	mult := 1.0
	if m, ok := ExperienceMultipliers[experience]; ok {
		mult = m
	}

	bonus := 0.0
	for _, a := range achievements {
		bonus += AchievementBonuses[a]
	}

	target := int(float64(marketRate) * mult * (1 + bonus))
	if target < currentSalary {
		target = currentSalary
	}
	return target
}

// #endregion calculate
