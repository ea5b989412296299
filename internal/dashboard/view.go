// Package dashboard builds the view models of the role dashboards and the
// section pages.
package dashboard

import (
	"fmt"
	"time"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
)

// View is one renderable content area. Sections lists the data the view
// depends on; Build is only called once all of them loaded successfully.
type View interface {
	Name() string
	Title() string
	Subtitle() string
	Template() string
	Sections() []sectiondata.Section
	Build(in Input) (Model, error)
}

// Input carries the settled section states into Build.
type Input struct {
	User   rbac.User
	States map[sectiondata.Section]sectiondata.State
	Now    time.Time
}

// Tone hints how a metric should be emphasised.
type Tone string

const (
	ToneNeutral Tone = ""
	ToneGood    Tone = "good"
	ToneWarn    Tone = "warn"
	ToneBad     Tone = "bad"
)

// Metric is a derived aggregate shown next to the stats cards.
type Metric struct {
	Label string
	Value string
	Tone  Tone
}

// Model is the rendered view model.
type Model struct {
	Title    string
	Subtitle string
	Stats    []backend.Stat
	Metrics  []Metric
	Content  any
}

// view is the table-driven View implementation.
type view struct {
	name     string
	title    string
	subtitle string
	sections []sectiondata.Section
	build    func(Input) (Model, error)
}

func (v *view) Name() string     { return v.name }
func (v *view) Title() string    { return v.title }
func (v *view) Subtitle() string { return v.subtitle }
func (v *view) Template() string { return "views/" + v.name }

func (v *view) Sections() []sectiondata.Section {
	out := make([]sectiondata.Section, len(v.sections))
	copy(out, v.sections)
	return out
}

func (v *view) Build(in Input) (Model, error) {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	m, err := v.build(in)
	if err != nil {
		return Model{}, fmt.Errorf("dashboard: build %s: %w", v.name, err)
	}
	m.Title = v.title
	if m.Subtitle == "" {
		m.Subtitle = v.subtitle
	}
	return m, nil
}

// payload extracts the loaded data of section from in.
func payload[T any](in Input, section sectiondata.Section) (T, error) {
	var zero T
	state, ok := in.States[section]
	if !ok || state.Data == nil {
		return zero, fmt.Errorf("section %s has no data", section)
	}
	data, ok := sectiondata.DataAs[T](state)
	if !ok {
		return zero, fmt.Errorf("section %s holds %T", section, state.Data)
	}
	return data, nil
}

func head[T any](rows []T, n int) []T {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}

func count(label string, n int) Metric {
	return Metric{Label: label, Value: Count(n)}
}

// alarm marks the metric as bad when n is positive.
func alarm(label string, n int) Metric {
	m := count(label, n)
	if n > 0 {
		m.Tone = ToneBad
	}
	return m
}
