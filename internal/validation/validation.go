package validation

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/julianstephens/myroutine/internal/constants"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/stats"
	"github.com/julianstephens/myroutine/internal/utils"
)

// IssueType represents the kind of problem found in stored or imported data
type IssueType string

const (
	IssueMissingField     IssueType = "missing_field"
	IssueInvalidDate      IssueType = "invalid_date"
	IssueInvalidTime      IssueType = "invalid_time"
	IssueInvalidValue     IssueType = "invalid_value"
	IssueDuplicateName    IssueType = "duplicate_name"
	IssueUnknownCategory  IssueType = "unknown_category"
	IssueDanglingHabitRef IssueType = "dangling_habit_ref"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Issue represents a single detected problem
type Issue struct {
	Type        IssueType
	Severity    Severity
	Description string
	Date        string // YYYY-MM-DD, when the issue belongs to a day record
}

// ValidationResult contains all detected issues
type ValidationResult struct {
	Issues []Issue
}

func (vr *ValidationResult) add(t IssueType, sev Severity, date string, format string, args ...any) {
	vr.Issues = append(vr.Issues, Issue{
		Type:        t,
		Severity:    sev,
		Description: fmt.Sprintf(format, args...),
		Date:        date,
	})
}

// HasIssues returns true if anything was detected
func (vr *ValidationResult) HasIssues() bool {
	return len(vr.Issues) > 0
}

// HasErrors returns true if any issue blocks the operation
func (vr *ValidationResult) HasErrors() bool {
	return slices.ContainsFunc(vr.Issues, func(i Issue) bool { return i.Severity == SeverityError })
}

// Err converts blocking issues into an ErrImportValidation error.
func (vr *ValidationResult) Err() error {
	if !vr.HasErrors() {
		return nil
	}
	var msgs []string
	for _, i := range vr.Issues {
		if i.Severity == SeverityError {
			msgs = append(msgs, i.Description)
		}
	}
	return fmt.Errorf("%w: %s", apperr.ErrImportValidation, strings.Join(msgs, "; "))
}

// FormatReport returns a human-readable report of all issues
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasIssues() {
		return "No issues detected."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d issue(s):\n", len(vr.Issues))
	for _, issue := range vr.Issues {
		label := "warning"
		if issue.Severity == SeverityError {
			label = "error"
		}
		if issue.Date != "" {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", label, issue.Date, issue.Description)
		} else {
			fmt.Fprintf(&b, "- [%s] %s\n", label, issue.Description)
		}
	}
	return b.String()
}

// Validator checks user input and imported data
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateGoal rejects goals the evaluator cannot measure.
func (v *Validator) ValidateGoal(g models.Goal) error {
	if strings.TrimSpace(g.Title) == "" {
		return apperr.Invalidf("goal title is required")
	}
	if !g.Period.Valid() {
		return apperr.Invalidf("goal period must be %q or %q", models.GoalWeekly, models.GoalMonthly)
	}
	if _, err := stats.GoalCategory(g); err != nil {
		return apperr.Invalidf("%v", err)
	}
	if !(g.Target > 0) || math.IsInf(g.Target, 0) {
		return fmt.Errorf("%w (got %v)", apperr.ErrInvalidGoalTarget, g.Target)
	}
	return nil
}

// ValidateProfileName checks length and uniqueness. selfID is skipped when
// renaming an existing profile.
func (v *Validator) ValidateProfileName(name string, existing []models.Profile, selfID models.ID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Invalidf("profile name is required")
	}
	if len([]rune(name)) > constants.MaxProfileNameLen {
		return apperr.Invalidf("profile name must be at most %d characters", constants.MaxProfileNameLen)
	}
	for _, p := range existing {
		if p.ID != selfID && strings.EqualFold(p.Name, name) {
			return apperr.Invalidf("a profile named %q already exists", p.Name)
		}
	}
	return nil
}

func (v *Validator) ValidateProfileSecret(secret string) error {
	if len([]rune(secret)) > constants.MaxProfileSecretLen {
		return apperr.Invalidf("secret must be at most %d characters", constants.MaxProfileSecretLen)
	}
	return nil
}

func (v *Validator) ValidateHabitName(name string, existing []models.Habit) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Invalidf("habit name is required")
	}
	for _, h := range existing {
		if strings.EqualFold(h.Name, name) {
			return apperr.Invalidf("habit %q already exists", h.Name)
		}
	}
	return nil
}

func (v *Validator) ValidateEvent(e models.Event) error {
	if !utils.ValidateTimeFormat(e.Time) {
		return apperr.Invalidf("time %q must be HH:MM", e.Time)
	}
	if strings.TrimSpace(e.Title) == "" {
		return apperr.Invalidf("event title is required")
	}
	if !slices.Contains(models.EventCategories, e.Category) {
		return apperr.Invalidf("unknown event category %q", e.Category)
	}
	return nil
}

func (v *Validator) ValidateActivity(a models.StudyActivity) error {
	if strings.TrimSpace(a.Name) == "" {
		return apperr.Invalidf("activity name is required")
	}
	if a.PlannedMin <= 0 {
		return apperr.Invalidf("planned time must be a positive number of minutes")
	}
	return nil
}

func (v *Validator) ValidateSleepHours(h float64) error {
	if h < 0 || h > 24 || math.IsNaN(h) {
		return apperr.Invalidf("sleep hours must be between 0 and 24")
	}
	return nil
}

func (v *Validator) ValidateDuration(minutes int) error {
	if minutes < 0 {
		return apperr.Invalidf("duration must not be negative")
	}
	return nil
}

func (v *Validator) ValidateDateKey(key string) error {
	if !utils.ValidateDateKey(key) {
		return apperr.Invalidf("date %q must be YYYY-MM-DD", key)
	}
	return nil
}

func (v *Validator) ValidatePreferences(p models.Preferences) error {
	if p.FirstDayOfWeek < 0 || p.FirstDayOfWeek > 6 {
		return apperr.Invalidf("first day of week must be between 0 (Sunday) and 6 (Saturday)")
	}
	if p.DefaultSleepGoal < constants.MinSleepGoal || p.DefaultSleepGoal > constants.MaxSleepGoal {
		return apperr.Invalidf("sleep goal must be between %v and %v hours", constants.MinSleepGoal, constants.MaxSleepGoal)
	}
	return nil
}

// ValidateSnapshot checks an import before anything is written. Missing
// required fields are errors; suspicious records are warnings and are
// imported as-is.
func (v *Validator) ValidateSnapshot(s *models.Snapshot) ValidationResult {
	result := ValidationResult{Issues: []Issue{}}
	if s == nil {
		result.add(IssueMissingField, SeverityError, "", "snapshot is empty")
		return result
	}

	if s.RoutineData == nil {
		result.add(IssueMissingField, SeverityError, "", "missing routineData")
	}
	if strings.TrimSpace(s.Version) == "" {
		result.add(IssueMissingField, SeverityError, "", "missing version")
	}

	habitIDs := make(map[string]bool, len(s.Habits))
	for _, h := range s.Habits {
		habitIDs[string(h.ID)] = true
	}

	dates := make([]string, 0, len(s.RoutineData))
	for key := range s.RoutineData {
		dates = append(dates, key)
	}
	slices.Sort(dates)

	for _, key := range dates {
		if !utils.ValidateDateKey(key) {
			result.add(IssueInvalidDate, SeverityWarning, key, "day key is not a valid date and will be ignored by statistics")
			continue
		}
		day := s.RoutineData[key]
		if day.Sleep != nil && (day.Sleep.Hours < 0 || day.Sleep.Hours > 24) {
			result.add(IssueInvalidValue, SeverityWarning, key, "sleep hours %v out of range", day.Sleep.Hours)
		}
		if day.Workout != nil && day.Workout.DurationMin < 0 {
			result.add(IssueInvalidValue, SeverityWarning, key, "negative workout duration")
		}
		for _, e := range day.Schedule {
			if !utils.ValidateTimeFormat(e.Time) {
				result.add(IssueInvalidTime, SeverityWarning, key, "event %q has invalid time %q", e.Title, e.Time)
			}
		}
		if len(s.Habits) > 0 {
			for id := range day.Habits {
				if !habitIDs[id] {
					result.add(IssueDanglingHabitRef, SeverityWarning, key, "check for unknown habit %s", id)
				}
			}
		}
	}

	for _, g := range s.Goals {
		if _, err := stats.GoalCategory(g); err != nil {
			result.add(IssueUnknownCategory, SeverityWarning, "", "goal %q: %v", g.Title, err)
		}
		if !(g.Target > 0) {
			result.add(IssueInvalidValue, SeverityWarning, "", "goal %q has non-positive target %v", g.Title, g.Target)
		}
	}

	names := make(map[string]int)
	for _, h := range s.Habits {
		names[strings.ToLower(h.Name)]++
	}
	for _, h := range s.Habits {
		if names[strings.ToLower(h.Name)] > 1 {
			result.add(IssueDuplicateName, SeverityWarning, "", "duplicate habit name %q", h.Name)
			names[strings.ToLower(h.Name)] = 0
		}
	}

	return result
}
