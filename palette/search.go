package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"picdither/okcolor"
	"picdither/rgb"
)

// Metric selects the distance used to compare colors.
type Metric int

const (
	// RGB is the squared euclidean distance over the 8-bit channels.
	RGB Metric = iota
	// Oklab is the squared euclidean distance in Oklab, scaled to an integer.
	Oklab
)

// oklabScale turns Oklab distances (below 2) into integers without losing
// meaningful precision.
const oklabScale = 1 << 24

func (m Metric) String() string {
	switch m {
	case RGB:
		return "rgb"
	case Oklab:
		return "oklab"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "", "rgb":
		return RGB, nil
	case "oklab":
		return Oklab, nil
	}
	return RGB, fmt.Errorf("unknown color metric: %q", s)
}

type Option func(*Searcher)

func WithMetric(m Metric) Option {
	return func(s *Searcher) {
		s.metric = m
	}
}

// Searcher finds the palette entries closest to a color. It is immutable
// once built and safe for concurrent use.
type Searcher struct {
	pal    color.Palette
	colors []rgb.RGB
	labs   []okcolor.Lab
	metric Metric
}

// Match is the result of FindNearestTwo. For a palette with a single color
// Second equals Index.
type Match struct {
	Index      int
	Dist       int
	Second     int
	SecondDist int
}

// NewSearcher validates p and prepares it for searching. The palette is
// kept by reference and never reordered.
func NewSearcher(p color.Palette, opts ...Option) (*Searcher, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	s := &Searcher{
		pal:    p,
		colors: make([]rgb.RGB, len(p)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, c := range p {
		s.colors[i] = rgb.From(c)
	}
	if s.metric == Oklab {
		s.labs = make([]okcolor.Lab, len(p))
		for i, c := range s.colors {
			s.labs[i] = okcolor.FromRGB(c)
		}
	}

	return s, nil
}

func (s *Searcher) Palette() color.Palette {
	return s.pal
}

func (s *Searcher) Metric() Metric {
	return s.metric
}

func (s *Searcher) Len() int {
	return len(s.colors)
}

// Color returns the channels of palette entry i.
func (s *Searcher) Color(i int) rgb.RGB {
	return s.colors[i]
}

// Distance returns the squared euclidean distance between two colors.
func Distance(a, b rgb.RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// query holds a color prepared for the searcher's metric.
type query struct {
	c  rgb.RGB
	lc okcolor.Lab
}

func (s *Searcher) prepare(c rgb.RGB) query {
	q := query{c: c}
	if s.metric == Oklab {
		q.lc = okcolor.FromRGB(c)
	}
	return q
}

func (s *Searcher) dist(q query, i int) int {
	if s.metric == Oklab {
		return int(q.lc.DistanceSq(s.labs[i]) * oklabScale)
	}
	return Distance(q.c, s.colors[i])
}

// FindNearest returns the palette color closest to c and its index. Ties
// resolve to the lowest index.
func (s *Searcher) FindNearest(c rgb.RGB) (rgb.RGB, int) {
	q := s.prepare(c)
	ret, best := 0, math.MaxInt
	for i := range s.colors {
		d := s.dist(q, i)
		if d < best {
			if d == 0 {
				return s.colors[i], i
			}
			ret, best = i, d
		}
	}
	return s.colors[ret], ret
}

// FindNearestTwo returns the closest and second closest palette entries.
func (s *Searcher) FindNearestTwo(c rgb.RGB) Match {
	q := s.prepare(c)
	m := Match{Index: -1, Dist: math.MaxInt, Second: -1, SecondDist: math.MaxInt}
	for i := range s.colors {
		d := s.dist(q, i)
		switch {
		case d < m.Dist:
			m.Second, m.SecondDist = m.Index, m.Dist
			m.Index, m.Dist = i, d
		case d < m.SecondDist:
			m.Second, m.SecondDist = i, d
		}
	}
	if m.Second < 0 {
		m.Second, m.SecondDist = m.Index, m.Dist
	}
	return m
}
