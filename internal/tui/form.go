package tui

import (
	"errors"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/screenscape/internal/layout"
)

// editForm edits one display. Values are held as strings for huh and
// converted when the form completes.
type editForm struct {
	label string
	form  *huh.Form

	fEnabled  bool
	fDiagonal string
	fAspect   string
	fCustomW  string
	fCustomH  string
}

func newEditForm(d layout.Display, width int) *editForm {
	f := &editForm{
		label:     d.Label(),
		fEnabled:  d.Enabled,
		fDiagonal: strconv.FormatFloat(d.Diagonal, 'f', -1, 64),
		fAspect:   string(d.Aspect),
		fCustomW:  strconv.FormatFloat(d.Custom.W, 'f', -1, 64),
		fCustomH:  strconv.FormatFloat(d.Custom.H, 'f', -1, 64),
	}

	aspectOpts := make([]huh.Option[string], 0, len(layout.Presets())+1)
	for _, a := range layout.Presets() {
		aspectOpts = append(aspectOpts, huh.NewOption(string(a), string(a)))
	}
	aspectOpts = append(aspectOpts, huh.NewOption("Custom", string(layout.AspectCustom)))

	w := width - 4
	if w < 40 {
		w = 40
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Display "+d.Label()).
				Affirmative("Enabled").
				Negative("Disabled").
				Value(&f.fEnabled),

			huh.NewInput().
				Key("diagonal").
				Title("Diagonal").
				Description("Inches; anything that is not a number counts as 0").
				Value(&f.fDiagonal),

			huh.NewSelect[string]().
				Key("aspect_ratio").
				Title("Aspect Ratio").
				Options(aspectOpts...).
				Value(&f.fAspect),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("custom_w").
				Title("Custom Ratio: Width").
				Validate(positiveNumber).
				Value(&f.fCustomW),
			huh.NewInput().
				Key("custom_h").
				Title("Custom Ratio: Height").
				Validate(positiveNumber).
				Value(&f.fCustomH),
		).WithHideFunc(func() bool {
			return f.fAspect != string(layout.AspectCustom)
		}),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	return f
}

func (f *editForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards msg to the form and reports whether it finished.
func (f *editForm) Update(msg tea.Msg) (done bool, cmd tea.Cmd) {
	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}
	switch f.form.State {
	case huh.StateCompleted, huh.StateAborted:
		return true, nil
	}
	return false, cmd
}

func (f *editForm) Completed() bool {
	return f.form.State == huh.StateCompleted
}

// Apply writes the form values into s.
func (f *editForm) Apply(s layout.State) layout.State {
	s = layout.SetEnabled(s, f.label, f.fEnabled)
	s = layout.SetDiagonalText(s, f.label, f.fDiagonal)
	s = layout.SetAspect(s, f.label, layout.AspectRatio(f.fAspect))
	if f.fAspect == string(layout.AspectCustom) {
		w, errW := parsePositive(f.fCustomW)
		h, errH := parsePositive(f.fCustomH)
		if errW == nil && errH == nil {
			s = layout.SetCustomRatio(s, f.label, layout.Ratio{W: w, H: h})
		}
	}
	return s
}

func (f *editForm) View() string {
	return f.form.View()
}

var errNotPositive = errors.New("must be a positive number")

func positiveNumber(s string) error {
	_, err := parsePositive(s)
	return err
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errNotPositive
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errNotPositive
	}
	return v, nil
}
