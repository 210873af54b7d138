package roster

import (
	"fmt"
	"math"

	"github.com/rotaplan/rotaplan/pkg/core/model"
)

// Canonical rotation ratios used for nearest-match reporting. Degenerate
// windows map to the sentinel labels instead of a numeric ratio.
type Ratio struct {
	Base int
	Home int
}

var canonicalRatios = []Ratio{
	{7, 7}, {8, 6}, {9, 5}, {10, 4}, {11, 3}, {12, 2},
}

const (
	// RatioLabelFull marks a window with no home days at all.
	RatioLabelFull = "full"
	// RatioLabelDaily marks a window with no base days at all.
	RatioLabelDaily = "daily-only"
)

// NearestRatioLabel matches realized base/home day counts against the
// canonical ratio table by minimum absolute difference of the base:home
// ratio. Ties keep the earlier table entry.
func NearestRatioLabel(baseDays, homeDays int) string {
	if homeDays == 0 {
		return RatioLabelFull
	}
	if baseDays == 0 {
		return RatioLabelDaily
	}

	realized := float64(baseDays) / float64(homeDays)
	best := canonicalRatios[0]
	bestDiff := math.Abs(realized - float64(best.Base)/float64(best.Home))
	for _, c := range canonicalRatios[1:] {
		diff := math.Abs(realized - float64(c.Base)/float64(c.Home))
		if diff < bestDiff {
			best, bestDiff = c, diff
		}
	}
	return fmt.Sprintf("%d:%d", best.Base, best.Home)
}

// maxStaffingIssueLines caps the explicit per-day staffing lines in a
// validation report; further misses roll up into a single count line.
const maxStaffingIssueLines = 5

// IssueSeverity classifies validation issues. Warnings require explicit
// acknowledgment before save; informational issues never block.
type IssueSeverity string

const (
	IssueWarning IssueSeverity = "warning"
	IssueInfo    IssueSeverity = "info"
)

// Issue is one line of a pre-save validation report.
type Issue struct {
	Severity IssueSeverity
	Message  string
}

// ValidationReport is the outcome of the pre-save validation pass. Save
// proceeds only after the caller acknowledges all reported issues.
type ValidationReport struct {
	Issues []Issue
}

// HasWarnings reports whether any issue requires acknowledgment.
func (r *ValidationReport) HasWarnings() bool {
	for _, issue := range r.Issues {
		if issue.Severity == IssueWarning {
			return true
		}
	}
	return false
}

func (r *ValidationReport) warn(format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: IssueWarning, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationReport) info(format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: IssueInfo, Message: fmt.Sprintf(format, args...)})
}

// ValidateBeforeSave recomputes the realized roster (manual overrides
// applied over generator output) and reports every issue the caller must
// acknowledge before committing: ratio drift per person, days below the
// staffing floor or task demand, generator warnings verbatim, and the
// applied override count.
func ValidateBeforeSave(result *Result, cfg GenerationConfig) *ValidationReport {
	report := &ValidationReport{}

	merged := ApplyOverrides(result.Roster, cfg.Overrides)

	daysBase, daysHome := cfg.Cadence()
	targetLabel := NearestRatioLabel(daysBase, daysHome)

	baseDays := make(map[string]int)
	homeDays := make(map[string]int)
	presentPerDay := make(map[string]int)

	for _, entry := range merged {
		switch entry.Status.DayStatus() {
		case model.StatusBase:
			baseDays[entry.PersonID]++
			presentPerDay[entry.Date]++
		case model.StatusHome:
			homeDays[entry.PersonID]++
		}
	}

	for _, p := range activePeople(cfg.People) {
		realized := NearestRatioLabel(baseDays[p.ID], homeDays[p.ID])
		if realized != targetLabel {
			report.warn("%s %s: realized rotation ~%s differs from target %s (%d base / %d home days)",
				p.FirstName, p.LastName, realized, targetLabel, baseDays[p.ID], homeDays[p.ID])
		}
	}

	reportStaffingMisses(report, cfg, presentPerDay)

	for _, w := range result.Warnings {
		report.warn("%s", w)
	}

	if n := cfg.Overrides.Len(); n > 0 {
		report.info("%d manual override(s) applied on top of the generated roster", n)
	}

	return report
}

// reportStaffingMisses checks every window day against the staffing floor
// and the peak task demand, capping explicit lines and rolling up the
// remainder.
func reportStaffingMisses(report *ValidationReport, cfg GenerationConfig, presentPerDay map[string]int) {
	start, err := model.ParseDate(cfg.StartDate)
	if err != nil {
		return
	}
	end, err := model.ParseDate(cfg.EndDate)
	if err != nil {
		return
	}

	lines := 0
	suppressed := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := model.FormatDate(d)
		present := presentPerDay[date]

		required := cfg.StaffingFloor()
		kind := "minimum staffing"
		if demand := TaskDemand(cfg.Tasks, date); demand > required {
			required = demand
			kind = "task demand"
		}
		if required <= 0 || present >= required {
			continue
		}

		if lines < maxStaffingIssueLines {
			report.warn("%s: %d present, below %s of %d", date, present, kind, required)
			lines++
		} else {
			suppressed++
		}
	}
	if suppressed > 0 {
		report.warn("%d more day(s) below required staffing not listed", suppressed)
	}
}

// ApplyOverrides merges the in-memory override set over generated
// entries, producing the realized roster used for validation and save.
// Overridden entries keep the original phase but carry the user's status
// and explicit time bounds with a manual source.
func ApplyOverrides(entries []Entry, overrides *OverrideSet) []Entry {
	if overrides.Len() == 0 {
		return entries
	}
	merged := make([]Entry, len(entries))
	for i, entry := range entries {
		if o, ok := overrides.Get(entry.PersonID, entry.Date); ok {
			entry.Status = o.Status
			entry.Source = model.SourceManual
			if o.StartTime != "" {
				entry.StartTime = o.StartTime
			}
			if o.EndTime != "" {
				entry.EndTime = o.EndTime
			}
		}
		merged[i] = entry
	}
	return merged
}
