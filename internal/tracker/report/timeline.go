package report

import (
	"math"
	"sort"
	"time"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// EstimatedWindow is the assumed duration of completed work that has no recorded start.
const EstimatedWindow = 7 * 24 * time.Hour

// estimatedBar is how far before completion an estimated bar is drawn.
const estimatedBar = 6 * 24 * time.Hour

const day = 24 * time.Hour

type Window struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	TotalDays int       `json:"totalDays"`
}

type Entry struct {
	Progress      domain.ProjectProgress `json:"progress"`
	ProjectName   string                 `json:"projectName"`
	SubsystemName string                 `json:"subsystemName"`
	ActivityName  string                 `json:"activityName"`

	// Start is the recorded start date, or the completion date minus
	// EstimatedWindow when Estimated is set.
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Estimated bool      `json:"estimated"`

	// Display bounds are clipped to the window.
	DisplayStart time.Time `json:"displayStart"`
	DisplayEnd   time.Time `json:"displayEnd"`
	OffsetPct    float64   `json:"offsetPct"`
	WidthPct     float64   `json:"widthPct"`
	// DurationDays is set for recorded spans only, both ends inclusive.
	DurationDays *int `json:"durationDays,omitempty"`
}

type Pending struct {
	Progress      domain.ProjectProgress `json:"progress"`
	ProjectName   string                 `json:"projectName"`
	SubsystemName string                 `json:"subsystemName"`
	ActivityName  string                 `json:"activityName"`
}

type TimelineView struct {
	// Window is nil when there are no completed entries.
	Window  *Window   `json:"window"`
	Entries []Entry   `json:"entries"`
	Pending []Pending `json:"pending"`
}

// Timeline lays out COMPLETED records of the selected projects on a shared time
// axis, ordered by start. NOT_STARTED records of the same projects are listed
// as pending in insertion order.
func Timeline(s state.State, f Filter) TimelineView {
	f = f.Resolve(s)
	view := TimelineView{Entries: []Entry{}, Pending: []Pending{}}

	var recorded, estimated []time.Time
	for _, p := range s.Progress {
		if !contains(f.ProjectIDs, p.ProjectID) {
			continue
		}
		switch {
		case p.Status == domain.StatusNotStarted:
			view.Pending = append(view.Pending, Pending{
				Progress:      p,
				ProjectName:   name(projectName(s, p.ProjectID)),
				SubsystemName: name(subsystemName(s, p.SubsystemID)),
				ActivityName:  name(activityName(s, p.ActivityID)),
			})
		case completed(p) && p.CompletionDate != nil:
			end := *p.CompletionDate
			e := Entry{
				Progress:      p,
				ProjectName:   name(projectName(s, p.ProjectID)),
				SubsystemName: name(subsystemName(s, p.SubsystemID)),
				ActivityName:  name(activityName(s, p.ActivityID)),
				End:           end,
			}
			recorded = append(recorded, end)
			if p.StartDate != nil {
				e.Start = *p.StartDate
				recorded = append(recorded, e.Start)
			} else {
				e.Start = end.Add(-EstimatedWindow)
				e.Estimated = true
				estimated = append(estimated, e.Start)
			}
			view.Entries = append(view.Entries, e)
		}
	}

	if len(view.Entries) == 0 {
		return view
	}

	// Recorded instants define the window; estimates only when nothing was recorded.
	bounds := recorded
	if len(bounds) == 0 {
		bounds = estimated
	}
	w := window(bounds)
	view.Window = &w

	sort.SliceStable(view.Entries, func(i, j int) bool {
		return view.Entries[i].Start.Before(view.Entries[j].Start)
	})
	for i := range view.Entries {
		place(&view.Entries[i], w)
	}
	return view
}

func window(instants []time.Time) Window {
	lo, hi := instants[0], instants[0]
	for _, t := range instants[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	total := int(math.Ceil(days(hi.Sub(lo)))) + 1
	if total < 1 {
		total = 1
	}
	return Window{Start: lo, End: hi, TotalDays: total}
}

// place clips e to w and computes its bar geometry as percentages of the window.
func place(e *Entry, w Window) {
	displayStart := e.Start
	if e.Estimated {
		displayStart = e.End.Add(-estimatedBar)
	}
	e.DisplayStart = maxTime(displayStart, w.Start)
	e.DisplayEnd = minTime(e.End, w.End)

	total := float64(w.TotalDays)
	startOffset := math.Max(0, days(e.DisplayStart.Sub(w.Start))/total*100)
	endOffset := math.Min(100, days(e.DisplayEnd.Sub(w.Start))/total*100)
	e.OffsetPct = startOffset

	if e.Estimated {
		e.WidthPct = math.Min(15, days(EstimatedWindow)/total*100)
		return
	}

	span := e.End.Sub(e.Start)
	duration := int(math.Floor(days(span))) + 1
	if duration < 1 {
		duration = 1
	}
	e.DurationDays = &duration

	barDays := math.Max(1, math.Ceil(days(span))+1)
	e.WidthPct = math.Max(3, math.Min(endOffset-startOffset, barDays/total*100))
}

func days(d time.Duration) float64 { return float64(d) / float64(day) }

func name(n string, _ bool) string { return n }

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
