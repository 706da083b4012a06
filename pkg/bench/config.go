package bench

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/otobench/otobench/pkg/errors"
)

// Suite is a TOML experiment-suite definition consumed by the bench
// command:
//
//	[[experiment]]
//	vertices   = 1000
//	edges      = 5000
//	online     = 500
//	batch      = 1
//	algorithms = ["mnr", "pk", "ahrsz"]
//	checking   = true
//	seed       = 42
//	graphs     = 3
type Suite struct {
	Experiments []Experiment `toml:"experiment"`
}

// Experiment describes one experiment row of a suite: every listed
// algorithm runs over the same generated graphs.
type Experiment struct {
	Vertices   int      `toml:"vertices"`
	Edges      int      `toml:"edges"`
	Online     int      `toml:"online"`
	Batch      int      `toml:"batch"`
	Algorithms []string `toml:"algorithms"`
	Checking   bool     `toml:"checking"`
	Seed       uint64   `toml:"seed"`
	Graphs     int      `toml:"graphs"`
}

// LoadSuite reads and validates a suite file.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Suite{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "suite %s", path)
		}
		return Suite{}, errors.Wrap(errors.ErrCodeCorruptInput, err, "reading suite %s", path)
	}
	var s Suite
	if err := toml.Unmarshal(data, &s); err != nil {
		return Suite{}, errors.Wrap(errors.ErrCodeCorruptInput, err, "decoding suite %s", path)
	}
	if err := s.Validate(); err != nil {
		return Suite{}, err
	}
	return s, nil
}

// Validate checks every experiment row and applies per-row
// defaults.
func (s *Suite) Validate() error {
	if len(s.Experiments) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "suite defines no experiments")
	}
	for i := range s.Experiments {
		e := &s.Experiments[i]
		if e.Graphs <= 0 {
			e.Graphs = 1
		}
		if len(e.Algorithms) == 0 {
			return errors.New(errors.ErrCodeInvalidArgument, "experiment %d lists no algorithms", i)
		}
		for _, a := range e.Algorithms {
			if !ValidAlgorithms[a] {
				return errors.New(errors.ErrCodeInvalidAlgorithm, "experiment %d: unknown algorithm %q", i, a)
			}
		}
		opts := Options{
			Vertices:  e.Vertices,
			Edges:     e.Edges,
			Online:    e.Online,
			Batch:     e.Batch,
			Algorithm: e.Algorithms[0],
		}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return err
		}
	}
	return nil
}

// RunOptions expands an experiment row into per-algorithm Options.
func (e Experiment) RunOptions(checkingOverride bool) []Options {
	out := make([]Options, 0, len(e.Algorithms))
	for _, a := range e.Algorithms {
		out = append(out, Options{
			Vertices:  e.Vertices,
			Edges:     e.Edges,
			Online:    e.Online,
			Batch:     e.Batch,
			Algorithm: a,
			Checking:  e.Checking || checkingOverride,
		})
	}
	return out
}
