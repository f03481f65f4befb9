package scene

type Phase int

const (
	PhaseIntro Phase = iota
	PhaseLabelFade
	PhaseMotion
	PhaseOutro
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseLabelFade:
		return "fade"
	case PhaseMotion:
		return "motion"
	case PhaseOutro:
		return "outro"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// phaseEpsilon absorbs float error when the clock lands on a phase boundary.
const phaseEpsilon = 1e-9

// Timeline is the fixed sequence of phases, each given as a length in seconds.
type Timeline struct {
	IntroWait float64
	LabelFade float64
	Motion    float64
	OutroWait float64
}

func (tl Timeline) lengths() [4]float64 {
	return [4]float64{tl.IntroWait, tl.LabelFade, tl.Motion, tl.OutroWait}
}

func (tl Timeline) Total() float64 {
	return tl.IntroWait + tl.LabelFade + tl.Motion + tl.OutroWait
}

// Phase returns the phase running at time t, when it started and when it ends.
// Zero-length phases are never reported.
func (tl Timeline) Phase(t float64) (p Phase, start, end float64) {
	for i, l := range tl.lengths() {
		end = start + l
		if t < end-phaseEpsilon {
			return Phase(i), start, end
		}
		start = end
	}
	return PhaseDone, start, start
}

// Progress returns how far into its phase t is, in [0, 1].
func (tl Timeline) Progress(t float64) float64 {
	_, start, end := tl.Phase(t)
	if end <= start {
		return 1
	}
	return clamp01((t - start) / (end - start))
}

// smooth is the ease-in-out curve used for fades.
func smooth(x float64) float64 {
	x = clamp01(x)
	return x * x * (3 - 2*x)
}
