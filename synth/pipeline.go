package synth

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	threadcad "github.com/threadcad/threadcad"
	"github.com/threadcad/threadcad/analyze"
	"github.com/threadcad/threadcad/thread"
)

// Synthesizer drives one document's kernel through the thread generation
// pipeline. Calls are synchronous on the caller's goroutine; two
// synthesis calls must not run concurrently against the same document.
type Synthesizer struct {
	Log zerolog.Logger

	doc threadcad.Document
	an  *analyze.Analyzer
}

// New returns a synthesizer over the document with a disabled logger.
func New(doc threadcad.Document) *Synthesizer {
	return &Synthesizer{
		Log: zerolog.Nop(),
		doc: doc,
		an:  analyze.New(doc),
	}
}

// threadLength returns the axial thread length the options ask for.
func threadLength(opt Options) float64 {
	l := opt.Cylinder.Length - opt.Offset
	if opt.Length > 0 && opt.Length < l {
		l = opt.Length
	}
	return l
}

// Validate is the pre-commit check run before any mutation. It shares
// the turn arithmetic with Generate: the thread must fit at least one
// whole turn.
func (s *Synthesizer) Validate(opt Options) error {
	if opt.Standard.Pitch <= 0 {
		return errors.New("no thread standard selected")
	}
	if !opt.Cylinder.Valid {
		if opt.Cylinder.Err != "" {
			return fmt.Errorf("invalid cylinder: %s", opt.Cylinder.Err)
		}
		return errors.New("cylinder was not analyzed")
	}
	if len(s.doc.Bodies()) == 0 {
		return errors.New("no editable solid in document")
	}
	l := threadLength(opt)
	if Turns(l, opt.Standard.Pitch) < 1 {
		return fmt.Errorf("thread length %gmm fits no whole turn of pitch %gmm",
			l, opt.Standard.Pitch)
	}
	return nil
}

// state is the mutable context threaded through the pipeline stages.
type state struct {
	opt     Options
	std     thread.Standard
	desc    analyze.Descriptor // private copy; Radius tracks resizing
	pitch   float64
	depth   float64 // radial cut depth, (major-minor)/2
	turns   int
	length  float64 // thread length along the axis
	feature string

	axis  threadcad.Line // oriented Start->End, captured before mutation
	body  threadcad.Body
	plane threadcad.SketchPlane

	uStart, uEnd             float64 // plane-local u of the face extents
	uDir                     float64 // +1 when increasing u runs Start->End
	side                     float64 // material side sign of the sketch v axis
	u0                       float64 // profile placement u
	threadStartU, threadEndU float64 // trim boundaries in plane u

	profile      threadcad.Profile
	sweepReverse bool
	coil         threadcad.Body
	helpers      []threadcad.Body

	resized, flipped      bool
	rootCount, crestCount int
	notes                 []string
}

func (st *state) dims() string {
	return fmt.Sprintf("radius=%.4gmm pitch=%.4gmm length=%.4gmm",
		st.desc.Radius, st.pitch, st.length)
}

func (st *state) note(s *Synthesizer, msg string) {
	st.notes = append(st.notes, msg)
	s.Log.Warn().Msg(msg)
}

type stage struct {
	name string
	run  func(*Synthesizer, *state) error
}

// pipeline is the fixed stage order. Any stage error jumps straight to
// transaction abort; no partial thread is left behind.
var pipeline = []stage{
	{"buildFrame", (*Synthesizer).buildFrame},
	{"drawProfile", (*Synthesizer).drawProfile},
	{"sweep", (*Synthesizer).sweep},
	{"correctDirection", (*Synthesizer).correctDirection},
	{"filletRoots", (*Synthesizer).filletRoots},
	{"trimEnds", (*Synthesizer).trimEnds},
	{"combine", (*Synthesizer).combine},
	{"filletCrests", (*Synthesizer).filletCrests},
	{"finalize", (*Synthesizer).finalize},
}

// Generate runs the whole synthesis pipeline atomically. Validation
// failures are reported before any transaction opens; once the
// transaction is open, any step failure aborts it and the result carries
// a step-localized diagnostic.
func (s *Synthesizer) Generate(opt Options) Result {
	if err := s.Validate(opt); err != nil {
		return Result{Message: "validate: " + err.Error()}
	}

	st := &state{opt: opt, std: opt.Standard, desc: opt.Cylinder}
	st.pitch = st.std.Pitch
	st.depth = (st.std.Major - st.std.Minor) / 2
	st.length = threadLength(opt)
	st.turns = Turns(st.length, st.pitch)
	st.feature = opt.Name
	if st.feature == "" {
		st.feature = "Thread"
	}
	st.feature += " " + st.std.Designation

	tx, err := s.doc.Begin(st.feature)
	if err != nil {
		return Result{Message: "begin transaction: " + err.Error()}
	}
	for _, stg := range pipeline {
		s.Log.Debug().Str("step", stg.name).Msg("synthesis step")
		if err := stg.run(s, st); err != nil {
			tx.Abort()
			serr := &threadcad.StepError{Step: stg.name, Dims: st.dims(), Err: err}
			var kerr *threadcad.KernelError
			if errors.As(err, &kerr) {
				serr.Code = kerr.Code
			}
			s.Log.Error().Err(serr).Msg("synthesis aborted")
			return Result{Message: serr.Error()}
		}
	}
	if err := tx.Commit(); err != nil {
		return Result{Message: "commit: " + err.Error()}
	}

	msg := fmt.Sprintf("threaded %s %s: %d turns, %s profile",
		st.std.Designation, st.desc.Side(), st.turns, st.opt.Shape)
	if st.resized {
		msg += ", resized"
	}
	msg += fmt.Sprintf("; %d root and %d crest edges filleted", st.rootCount, st.crestCount)
	return Result{
		OK:      true,
		Message: msg,
		Feature: st.feature,
		Turns:   st.turns,
		Notes:   st.notes,
	}
}
