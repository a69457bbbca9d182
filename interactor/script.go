// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package interactor

import (
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrTypeScript is the error type of invalid
// interaction scripts.
const ErrTypeScript = "script_invalid"

// step is a single entry of an interaction script.
// Exactly one field must be set.
type step struct {
	Press   []float64 `yaml:"press"`
	Release []float64 `yaml:"release"`
	Move    []float64 `yaml:"move"`
	Key     string    `yaml:"key"`
	Value   *float64  `yaml:"value"`
	Button  string    `yaml:"button"`
}

// LoadScript reads an interaction script.
// A script is a YAML sequence of steps such as:
//
//   - press: [0.2, 0.1]
//   - move: [0.5, 0.1]
//   - release: [0.5, 0.1]
//   - value: 2
//   - key: q
//
// Pointer steps take normalized display coordinates and
// an optional button (left, right or middle).
func LoadScript(r io.Reader) ([]Event, error) {
	var steps []step
	if err := yaml.NewDecoder(r).Decode(&steps); err != nil && err != io.EOF {
		return nil, errors.New("decoding script failed").
			WithType(ErrTypeScript).
			Wrap(err)
	}
	evs := make([]Event, 0, len(steps))
	for i, s := range steps {
		ev, err := s.event()
		if err != nil {
			return nil, errors.New("invalid script step").
				WithType(ErrTypeScript).
				WithTag("step", i).
				Wrap(err)
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

func (s *step) event() (ev Event, err error) {
	n := 0
	point := func(k Kind, xy []float64) {
		n++
		if len(xy) != 2 {
			err = errors.New("pointer step needs two coordinates").
				WithTag("kind", k.String()).
				WithTag("len", len(xy))
			return
		}
		ev = Event{Kind: k, X: xy[0], Y: xy[1]}
	}
	if s.Press != nil {
		point(PointerPress, s.Press)
	}
	if s.Release != nil {
		point(PointerRelease, s.Release)
	}
	if s.Move != nil {
		point(PointerMove, s.Move)
	}
	if s.Key != "" {
		n++
		k := KeyFrom(s.Key)
		if k == KeyUnknown {
			err = errors.New("unknown key").WithTag("key", s.Key)
		}
		ev = Event{Kind: KeyPress, Key: k}
	}
	if s.Value != nil {
		n++
		ev = Event{Kind: Value, Value: *s.Value}
	}
	switch {
	case err != nil:
		return
	case n != 1:
		return Event{}, errors.New("step must have exactly one action").
			WithTag("actions", n)
	}
	switch s.Button {
	case "":
	case "left":
		ev.Button = BtnLeft
	case "right":
		ev.Button = BtnRight
	case "middle":
		ev.Button = BtnMiddle
	default:
		return Event{}, errors.New("unknown button").WithTag("button", s.Button)
	}
	return
}
