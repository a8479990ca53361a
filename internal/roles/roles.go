// internal/roles/roles.go
//
// This package is the read-only role fixture table. Every profile is decoded
// once from the embedded fixtures.yaml and never changes afterwards.

package roles

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// ErrUnknownRole is returned by ParseKey for names outside the role set.
var ErrUnknownRole = errors.New("roles: unknown role")

// Key identifies one of the three fixture profiles. Only the package-level
// values below can be constructed; the zero Key is Backend.
type Key struct {
	slot uint8
}

var (
	Backend  = Key{slot: 0}
	Frontend = Key{slot: 1}
	ML       = Key{slot: 2}
)

var keyNames = [...]string{"backend", "frontend", "ml"}

// String returns the fixture identifier ("backend", "frontend", "ml").
func (k Key) String() string {
	return keyNames[k.slot]
}

// MarshalYAML lets profiles and configs print keys by name.
func (k Key) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Keys returns every role key in display order. The first entry is the default.
func Keys() []Key {
	return []Key{Backend, Frontend, ML}
}

// ParseKey resolves a role name, ignoring case and surrounding whitespace.
func ParseKey(name string) (Key, error) {
	target := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range keyNames {
		if candidate == target {
			return Key{slot: uint8(i)}, nil
		}
	}
	return Key{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownRole, name, strings.Join(keyNames[:], ", "))
}

// Tone labels one of the three skill buckets.
type Tone string

const (
	ToneStrong     Tone = "strong"
	ToneDeveloping Tone = "developing"
	ToneMissing    Tone = "missing"
)

// Tones lists the buckets in dashboard order.
func Tones() []Tone {
	return []Tone{ToneStrong, ToneDeveloping, ToneMissing}
}

// Skills groups a profile's skills into three disjoint buckets.
type Skills struct {
	Strong     []string `yaml:"strong"`
	Developing []string `yaml:"developing"`
	Missing    []string `yaml:"missing"`
}

// Bucket returns the list tagged with tone.
func (s Skills) Bucket(tone Tone) []string {
	switch tone {
	case ToneStrong:
		return s.Strong
	case ToneDeveloping:
		return s.Developing
	case ToneMissing:
		return s.Missing
	default:
		return nil
	}
}

// Week is one entry of a roadmap segment.
type Week struct {
	Title   string   `yaml:"title"`
	Actions []string `yaml:"actions"`
}

// Segment is a time window of the roadmap (for example "Days 0-30").
type Segment struct {
	Window string   `yaml:"window"`
	Theme  string   `yaml:"theme"`
	Focus  []string `yaml:"focus"`
	Weeks  []Week   `yaml:"weeks"`
}

// Project is a suggested portfolio project.
type Project struct {
	Title      string   `yaml:"title"`
	Problem    string   `yaml:"problem"`
	Stack      []string `yaml:"stack"`
	Difficulty string   `yaml:"difficulty"`
	Impact     string   `yaml:"impact"`
}

// Profile is the static content shown for a role.
type Profile struct {
	Key       Key       `yaml:"key"`
	Label     string    `yaml:"label"`
	Headline  string    `yaml:"headline"`
	Stack     []string  `yaml:"stack"`
	Readiness int       `yaml:"readiness"`
	Skills    Skills    `yaml:"skills"`
	Roadmap   []Segment `yaml:"roadmap"`
	Projects  []Project `yaml:"projects"`
}

// fixtureProfile mirrors Profile without the key, which comes from the map.
type fixtureProfile struct {
	Label     string    `yaml:"label"`
	Headline  string    `yaml:"headline"`
	Stack     []string  `yaml:"stack"`
	Readiness int       `yaml:"readiness"`
	Skills    Skills    `yaml:"skills"`
	Roadmap   []Segment `yaml:"roadmap"`
	Projects  []Project `yaml:"projects"`
}

var table = mustLoad(fixturesYAML)

// Lookup returns the profile for key. The result is a copy; mutating it does
// not affect the table.
func Lookup(key Key) Profile {
	return table[key.slot].clone()
}

// All returns every profile in Keys() order.
func All() []Profile {
	out := make([]Profile, 0, len(table))
	for _, key := range Keys() {
		out = append(out, Lookup(key))
	}
	return out
}

func mustLoad(data []byte) [len(keyNames)]Profile {
	profiles, err := load(data)
	if err != nil {
		panic(err)
	}
	return profiles
}

func load(data []byte) ([len(keyNames)]Profile, error) {
	var out [len(keyNames)]Profile
	raw := map[string]fixtureProfile{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return out, fmt.Errorf("roles: decode fixtures: %w", err)
	}
	for name := range raw {
		if _, err := ParseKey(name); err != nil {
			return out, fmt.Errorf("roles: fixture %q: %w", name, err)
		}
	}
	for _, key := range Keys() {
		fp, ok := raw[key.String()]
		if !ok {
			return out, fmt.Errorf("roles: fixture for %s is missing", key)
		}
		profile := Profile{
			Key:       key,
			Label:     strings.TrimSpace(fp.Label),
			Headline:  strings.TrimSpace(fp.Headline),
			Stack:     fp.Stack,
			Readiness: fp.Readiness,
			Skills:    fp.Skills,
			Roadmap:   fp.Roadmap,
			Projects:  fp.Projects,
		}
		if err := profile.validate(); err != nil {
			return out, fmt.Errorf("roles: fixture %s: %w", key, err)
		}
		out[key.slot] = profile
	}
	return out, nil
}

func (p Profile) validate() error {
	if p.Label == "" {
		return fmt.Errorf("label is required")
	}
	if p.Readiness < 0 || p.Readiness > 100 {
		return fmt.Errorf("readiness %d outside 0-100", p.Readiness)
	}
	seen := map[string]Tone{}
	for _, tone := range Tones() {
		for _, skill := range p.Skills.Bucket(tone) {
			name := strings.ToLower(strings.TrimSpace(skill))
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("skill %q listed as both %s and %s", skill, prev, tone)
			}
			seen[name] = tone
		}
	}
	return nil
}

func (p Profile) clone() Profile {
	out := p
	out.Stack = cloneStrings(p.Stack)
	out.Skills = Skills{
		Strong:     cloneStrings(p.Skills.Strong),
		Developing: cloneStrings(p.Skills.Developing),
		Missing:    cloneStrings(p.Skills.Missing),
	}
	if p.Roadmap != nil {
		out.Roadmap = make([]Segment, len(p.Roadmap))
		for i, seg := range p.Roadmap {
			seg.Focus = cloneStrings(seg.Focus)
			weeks := make([]Week, len(seg.Weeks))
			for j, week := range seg.Weeks {
				weeks[j] = Week{Title: week.Title, Actions: cloneStrings(week.Actions)}
			}
			seg.Weeks = weeks
			out.Roadmap[i] = seg
		}
	}
	if p.Projects != nil {
		out.Projects = make([]Project, len(p.Projects))
		for i, project := range p.Projects {
			project.Stack = cloneStrings(project.Stack)
			out.Projects[i] = project
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
