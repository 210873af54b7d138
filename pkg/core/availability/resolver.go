package availability

import (
	"github.com/rotaplan/rotaplan/pkg/core/model"
)

// Query carries everything needed to resolve one person's effective
// availability for one date.
type Query struct {
	Person    *model.Person
	Date      string
	Rotations []model.TeamRotation
	Absences  []model.Absence
	Blockages []model.HourlyBlockage
	Engine    EngineVersion
}

// Effective is the resolved availability for a (person, date) pair, with
// provenance. Exactly one source produces the answer; hourly blockages are
// layered on afterwards regardless of source.
type Effective struct {
	Status            model.Status
	IsAvailable       bool
	StartHour         string
	EndHour           string
	Source            model.Source
	HomeStatusType    string
	UnavailableBlocks []model.Block
}

// Strategy resolves one precedence layer. A strategy returns (nil, false)
// when it has nothing to say for the query, letting the next layer run.
type Strategy interface {
	Name() string
	Resolve(q Query) (*Effective, bool)
}

// Chain returns the ordered strategy list for an engine revision, highest
// precedence first. The chain always terminates with the default strategy,
// so resolution can never come up empty.
func Chain(engine EngineVersion) []Strategy {
	strategies := []Strategy{
		manualEntryStrategy{},
		persistedEntryStrategy{},
		absenceStrategy{engine: engine},
	}
	if engine != EngineLegacy {
		strategies = append(strategies, personalRotationStrategy{})
	}
	return append(strategies,
		teamRotationStrategy{},
		defaultStrategy{},
	)
}

// Resolve computes the effective availability for the query. It is pure:
// identical inputs always produce identical output. Malformed data never
// causes an error; resolution degrades to the default base status because
// this is called pervasively on render paths.
func Resolve(q Query) *Effective {
	var eff *Effective
	for _, s := range Chain(q.Engine) {
		if resolved, ok := s.Resolve(q); ok {
			eff = resolved
			break
		}
	}
	if eff == nil {
		// Unreachable while the chain ends with defaultStrategy; kept so a
		// misbuilt chain still cannot crash a render.
		eff = defaultEffective()
	}
	layerBlockages(eff, q)
	return eff
}

func defaultEffective() *Effective {
	return &Effective{
		Status:      model.StatusBase,
		IsAvailable: true,
		StartHour:   model.DayStart,
		EndHour:     model.DayEnd,
		Source:      model.SourceDefault,
	}
}

// IsArrivalDay reports whether the resolved day is a partial arrival day:
// on-base but only from partway through the day.
func (e *Effective) IsArrivalDay() bool {
	return e.Status == model.StatusBase && e.StartHour != "" && e.StartHour != model.DayStart
}

// IsDepartureDay reports whether the resolved day is a partial departure
// day: on-base but leaving before the end of the day.
func (e *Effective) IsDepartureDay() bool {
	return e.Status == model.StatusBase && e.EndHour != "" && e.EndHour != model.DayEnd
}
