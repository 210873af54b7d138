package roster

import (
	"fmt"
	"sort"

	"github.com/rotaplan/rotaplan/pkg/core/model"
)

// lockedDay is a hard per-day constraint the generator must honor: an
// approved absence, a persisted manual entry, or an injected override.
type lockedDay struct {
	status      model.Status
	source      model.Source
	startTime   string
	endTime     string
	entryStatus model.EntryStatus
	explicit    bool
}

type generator struct {
	cfg    GenerationConfig
	dates  []string
	people []model.Person
	locks  map[OverrideKey]lockedDay

	warnings    []string
	unfulfilled []UnfulfilledConstraint
	checksMet   int
	checksTotal int
}

// Generate produces a roster for the configured window. Configuration
// errors abort the run with an actionable message; every other problem is
// pushed into the result's Warnings and Unfulfilled so the caller decides
// whether to block the save. The run is side-effect-free and
// deterministic over its inputs.
func Generate(cfg GenerationConfig) (*Result, error) {
	dates, err := validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	g := &generator{
		cfg:    cfg,
		dates:  dates,
		people: activePeople(cfg.People),
		locks:  make(map[OverrideKey]lockedDay),
	}
	g.buildLocks()

	sequences := g.buildSequences()
	g.reportCoPresenceViolations(sequences)

	result := g.buildResult(sequences)
	return result, nil
}

// validateConfig checks the configuration-error class of failures: the
// generator refuses to run rather than produce a partial roster.
func validateConfig(cfg GenerationConfig) ([]string, error) {
	if cfg.Settings.OrganizationID == "" {
		return nil, fmt.Errorf("organization settings are missing: load the organization before generating")
	}

	mode := cfg.Settings.OptimizationMode
	if !mode.IsValid() {
		return nil, fmt.Errorf("unknown optimization mode %q: expected ratio, min_staff or tasks", mode)
	}

	start, err := model.ParseDate(cfg.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid roster start date %q: %w", cfg.StartDate, err)
	}
	end, err := model.ParseDate(cfg.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid roster end date %q: %w", cfg.EndDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("roster end date %s precedes start date %s", cfg.EndDate, cfg.StartDate)
	}

	if len(activePeople(cfg.People)) == 0 {
		return nil, fmt.Errorf("no active people in scope for the roster window")
	}

	daysBase, daysHome := cfg.Cadence()
	if daysBase <= 0 || daysHome <= 0 {
		return nil, fmt.Errorf("rotation cadence %d:%d is not usable: both segments must be positive", daysBase, daysHome)
	}

	switch mode {
	case model.ModeMinStaff:
		if cfg.StaffingFloor() <= 0 {
			return nil, fmt.Errorf("min_staff mode requires a positive staffing floor")
		}
	case model.ModeTasks:
		if !hasTaskSegments(cfg.Tasks) {
			return nil, fmt.Errorf("tasks mode requires at least one task with staffed segments")
		}
	}

	dates := make([]string, 0, model.DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, model.FormatDate(d))
	}
	return dates, nil
}

func hasTaskSegments(tasks []model.TaskTemplate) bool {
	for _, t := range tasks {
		if len(t.Segments) > 0 {
			return true
		}
	}
	return false
}

func activePeople(people []model.Person) []model.Person {
	active := make([]model.Person, 0, len(people))
	for _, p := range people {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// buildLocks collects the hard per-day constraints, weakest first so
// stronger layers overwrite: absences, then persisted manual entries,
// then injected overrides.
func (g *generator) buildLocks() {
	dateSet := make(map[string]bool, len(g.dates))
	for _, d := range g.dates {
		dateSet[d] = true
	}

	for _, p := range g.people {
		for _, a := range g.cfg.Absences {
			if a.PersonID != p.ID || !a.IsApproved() {
				continue
			}
			for _, d := range g.dates {
				if !a.Covers(d) {
					continue
				}
				lock := lockedDay{
					status:    model.StatusHome,
					source:    model.SourceAbsence,
					startTime: model.DayStart,
					endTime:   model.DayEnd,
				}
				if !a.IsFullDay() {
					lock.startTime = a.StartTime
					lock.endTime = a.EndTime
				}
				g.locks[OverrideKey{PersonID: p.ID, Date: d}] = lock
			}
		}

		for date, entry := range p.Availability {
			if !dateSet[date] || !entry.Source.IsManual() {
				continue
			}
			g.locks[OverrideKey{PersonID: p.ID, Date: date}] = lockedDay{
				status:    model.NormalizeStatus(string(entry.Status)),
				source:    entry.Source,
				startTime: entry.StartHour,
				endTime:   entry.EndHour,
			}
		}

		if g.cfg.Overrides != nil {
			for _, date := range g.dates {
				o, ok := g.cfg.Overrides.Get(p.ID, date)
				if !ok {
					continue
				}
				g.locks[OverrideKey{PersonID: p.ID, Date: date}] = lockedDay{
					status:      o.Status.DayStatus(),
					source:      model.SourceManual,
					startTime:   o.StartTime,
					endTime:     o.EndTime,
					entryStatus: o.Status,
					explicit:    true,
				}
			}
		}
	}
}

func (g *generator) lock(personID, date string) (lockedDay, bool) {
	l, ok := g.locks[OverrideKey{PersonID: personID, Date: date}]
	return l, ok
}

// buildSequences assigns a day status per person per day. All modes walk
// the window day-major: ratio mode commits each person's streak machine
// untouched, while the coverage modes adjust the day's tentative statuses
// to meet a staffing floor before committing.
func (g *generator) buildSequences() map[string][]model.Status {
	daysBase, daysHome := g.cfg.Cadence()

	machines := make(map[string]*streakMachine, len(g.people))
	sequences := make(map[string][]model.Status, len(g.people))
	for _, p := range g.people {
		var seed *HistorySeed
		if s, ok := g.cfg.History[p.ID]; ok {
			s := s
			seed = &s
		}
		machines[p.ID] = newStreakMachine(daysBase, daysHome, seed, g.cfg.StartDate)
		sequences[p.ID] = make([]model.Status, len(g.dates))
	}

	baseCounts := make(map[string]int, len(g.people))

	for i, date := range g.dates {
		tentative := make(map[string]model.Status, len(g.people))
		locked := make(map[string]bool, len(g.people))

		for _, p := range g.people {
			if l, ok := g.lock(p.ID, date); ok {
				tentative[p.ID] = l.status
				locked[p.ID] = true
				g.checksTotal++
				g.checksMet++
			} else {
				tentative[p.ID] = machines[p.ID].peek()
			}
		}

		g.adjustForCoverage(date, tentative, locked, baseCounts)

		for _, p := range g.people {
			status := tentative[p.ID]
			machines[p.ID].force(status)
			sequences[p.ID][i] = status
			if status == model.StatusBase {
				baseCounts[p.ID]++
			}
		}
	}

	return sequences
}

// adjustForCoverage raises the day's on-base headcount to the staffing
// floor for min_staff mode, or to the day's task demand for tasks mode.
// People already mid-streak on base stay put; home people with the fewest
// base days so far are promoted first, which also acts as fairness
// backpressure against long base streaks.
func (g *generator) adjustForCoverage(date string, tentative map[string]model.Status, locked map[string]bool, baseCounts map[string]int) {
	var floor int
	var floorKind string
	switch g.cfg.Settings.OptimizationMode {
	case model.ModeMinStaff:
		floor = g.cfg.StaffingFloor()
		floorKind = "staffing floor"
	case model.ModeTasks:
		floor = TaskDemand(g.cfg.Tasks, date)
		floorKind = "task demand"
	default:
		return
	}
	if floor <= 0 {
		return
	}

	g.checksTotal++

	present := 0
	for _, status := range tentative {
		if status == model.StatusBase {
			present++
		}
	}

	if present < floor {
		candidates := make([]string, 0)
		for _, p := range g.people {
			if tentative[p.ID] != model.StatusBase && !locked[p.ID] {
				candidates = append(candidates, p.ID)
			}
		}
		sort.Slice(candidates, func(a, b int) bool {
			if baseCounts[candidates[a]] != baseCounts[candidates[b]] {
				return baseCounts[candidates[a]] < baseCounts[candidates[b]]
			}
			return candidates[a] < candidates[b]
		})
		for _, id := range candidates {
			if present >= floor {
				break
			}
			tentative[id] = model.StatusBase
			present++
		}
	}

	if present < floor {
		reason := fmt.Sprintf("only %d of %d required people available (%s)", present, floor, floorKind)
		g.warnings = append(g.warnings, fmt.Sprintf("%s: %s", date, reason))
		g.unfulfilled = append(g.unfulfilled, UnfulfilledConstraint{Date: date, Reason: reason})
		return
	}
	g.checksMet++
}

// reportCoPresenceViolations surfaces, informationally, days where people
// matching both sides of a forbidden-together constraint are on base at
// the same time. The constraint itself is enforced at shift-assignment
// time; the generator only reports.
func (g *generator) reportCoPresenceViolations(sequences map[string][]model.Status) {
	for _, c := range g.cfg.InterPerson {
		if c.Kind != model.InterPersonConstraintForbidden {
			continue
		}
		shared := 0
		firstDate := ""
		for i, date := range g.dates {
			sideA, sideB := false, false
			for idx := range g.people {
				p := &g.people[idx]
				if sequences[p.ID][i] != model.StatusBase {
					continue
				}
				switch c.Matches(p) {
				case 1:
					sideA = true
				case 2:
					sideB = true
				}
			}
			if sideA && sideB {
				shared++
				if firstDate == "" {
					firstDate = date
				}
			}
		}
		if shared > 0 {
			g.warnings = append(g.warnings, fmt.Sprintf(
				"forbidden-together constraint %s=%s / %s=%s: both sides on base for %d day(s), first on %s",
				c.FieldA, c.ValueA, c.FieldB, c.ValueB, shared, firstDate))
		}
	}
}

// buildResult runs the labeling pass over the raw sequences and packages
// the roster, per-date status map and statistics.
func (g *generator) buildResult(sequences map[string][]model.Status) *Result {
	result := &Result{
		Roster:         make([]Entry, 0, len(g.people)*len(g.dates)),
		PersonStatuses: make(map[string]map[string]model.Status, len(g.dates)),
		Warnings:       g.warnings,
		Unfulfilled:    g.unfulfilled,
	}
	for _, date := range g.dates {
		result.PersonStatuses[date] = make(map[string]model.Status, len(g.people))
	}

	presentPerDay := make(map[string]int, len(g.dates))

	for _, p := range g.people {
		entries := g.labelSequence(p, sequences[p.ID])
		for i, entry := range entries {
			result.Roster = append(result.Roster, entry)
			day := entry.Status.DayStatus()
			result.PersonStatuses[g.dates[i]][p.ID] = day
			if day == model.StatusBase {
				presentPerDay[g.dates[i]]++
			}
		}
	}

	percentage := 100.0
	if g.checksTotal > 0 {
		percentage = 100 * float64(g.checksMet) / float64(g.checksTotal)
	}
	result.Stats = Stats{
		Constraints: ConstraintStats{
			Met:        g.checksMet,
			Total:      g.checksTotal,
			Percentage: percentage,
		},
		Days:          len(g.dates),
		People:        len(g.people),
		PresentPerDay: presentPerDay,
	}
	return result
}

// labelSequence converts a person's raw base/home day statuses into
// roster entries, running the day-phase state machine exactly once.
// Arrival days persist as arrival entries starting at the configured
// arrival hour; a base-to-home transition day persists as plain home (the
// leaving phase is a display label) unless an override explicitly pinned
// a departure.
func (g *generator) labelSequence(p model.Person, seq []model.Status) []Entry {
	prev := g.previousKnownStatus(p.ID)
	entries := make([]Entry, len(seq))

	for i, status := range seq {
		date := g.dates[i]
		entry := Entry{
			PersonID:  p.ID,
			Date:      date,
			StartTime: model.DayStart,
			EndTime:   model.DayEnd,
			Source:    model.SourceGenerator,
		}

		lock, hasLock := g.lock(p.ID, date)
		if hasLock {
			entry.Source = lock.source
			if lock.startTime != "" {
				entry.StartTime = lock.startTime
			}
			if lock.endTime != "" {
				entry.EndTime = lock.endTime
			}
		}

		switch status {
		case model.StatusBase:
			if prev == model.StatusBase {
				entry.Phase = PhasePresent
				entry.Status = model.EntryBase
			} else {
				entry.Phase = PhaseArriving
				entry.Status = model.EntryArrival
				if !hasLock || lock.startTime == "" {
					entry.StartTime = g.cfg.ArrivalHour()
				}
				entry.EndTime = model.DayEnd
			}
		case model.StatusUnavailable:
			entry.Phase = phaseForAway(prev)
			entry.Status = model.EntryUnavailable
		default:
			entry.Phase = phaseForAway(prev)
			entry.Status = model.EntryHome
		}

		// An override that pinned an explicit entry status wins verbatim.
		if hasLock && lock.explicit {
			entry.Status = lock.entryStatus
			if entry.Status == model.EntryDeparture && lock.endTime == "" {
				entry.EndTime = g.cfg.DepartureHour()
			}
		}

		entries[i] = entry
		prev = status
	}
	return entries
}

func phaseForAway(prev model.Status) DayPhase {
	if prev == model.StatusBase {
		return PhaseLeaving
	}
	return PhaseHome
}

// previousKnownStatus returns the person's status on the day before the
// window, when history is close enough to be trusted. Unknown history
// resolves to not_defined, which labels a leading base day as an arrival.
func (g *generator) previousKnownStatus(personID string) model.Status {
	seed, ok := g.cfg.History[personID]
	if !ok {
		return model.StatusNotDefined
	}
	seedDate, err := model.ParseDate(seed.Date)
	if err != nil {
		return model.StatusNotDefined
	}
	start, err := model.ParseDate(g.cfg.StartDate)
	if err != nil {
		return model.StatusNotDefined
	}
	gap := model.DaysBetween(seedDate, start)
	if gap < 0 || gap > MaxHistoryGapDays {
		return model.StatusNotDefined
	}
	return collapseToStreakType(seed.Status)
}
