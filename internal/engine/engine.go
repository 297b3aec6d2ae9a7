package engine

import (
	"math"
	"math/rand"
	"sync"

	"invention_go/internal/domain"
)

// Voice registers and dynamic-window geometry.
const (
	sopranoBaseMidi  = 72
	bassBaseMidi     = 48
	sopranoHalfRange = 12
	bassHalfRange    = 10

	minSeparation = 12 // soprano never closer than an octave above the bass

	defaultStuckLimit = 8
	rootMotionProb    = 0.35

	payloadVersion = "bundle_v2"
)

var (
	sopranoBounds = RangeBounds{CenterLo: 54, CenterHi: 96, AbsLo: 36, AbsHi: 108}
	bassBounds    = RangeBounds{CenterLo: 36, CenterHi: 60, AbsLo: 24, AbsHi: 72}
)

// Options configures a new Engine. Zero values fall back to the defaults of
// the canonical stream (two synthetic index-like instruments).
type Options struct {
	BuildID string
	Seed    int64

	Regime domain.RegimeProvider

	FastOpen, SlowOpen       float64
	FastStepPct, SlowStepPct float64 // base quantization step percentages
	FastWalkStep, FastDrift  float64
	SlowWalkStep, SlowDrift  float64

	RootMidi         int
	EnableRootMotion bool
	MaxRootOffset    int
}

func (o *Options) withDefaults() {
	if o.FastOpen == 0 {
		o.FastOpen = 430.0
	}
	if o.SlowOpen == 0 {
		o.SlowOpen = 510.0
	}
	if o.FastStepPct == 0 {
		o.FastStepPct = 0.0015
	}
	if o.SlowStepPct == 0 {
		o.SlowStepPct = 0.0010
	}
	if o.FastWalkStep == 0 {
		o.FastWalkStep = 0.6
	}
	if o.FastDrift == 0 {
		o.FastDrift = 0.03
	}
	if o.SlowWalkStep == 0 {
		o.SlowWalkStep = 0.45
	}
	if o.SlowDrift == 0 {
		o.SlowDrift = 0.02
	}
	if o.RootMidi == 0 {
		o.RootMidi = 60
	}
}

// Engine generates one bundle per tick. It is single-writer: exactly one
// goroutine (the scheduler) may call GenerateBundle, and each tick runs to
// completion before the next begins. The mutex exists only so configuration
// setters from other goroutines land between ticks, never inside one.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand

	clock  *HarmonicClock
	regime domain.RegimeProvider

	fast *PriceSeries
	slow *PriceSeries

	baseFastStepPct float64
	baseSlowStepPct float64
	fastStepPct     float64
	slowStepPct     float64

	sensitivity   float64
	priceNoise    float64
	sopranoRhythm int

	rootMidi         int
	rootOffset       int
	rootDegreeIndex  int
	maxRootOffset    int
	enableRootMotion bool

	prevSoprano     *int
	prevBass        *int
	prevSopranoBase *int // price-derived anchor before jitter, high-sensitivity mode
	sopranoRepeat   int
	stuckLimit      int

	lastDegree int
	tickCount  int64
	buildID    string
}

// New builds an engine with its own seeded generator. Two engines built with
// the same seed and options produce byte-identical bundle streams.
func New(opts Options) *Engine {
	opts.withDefaults()

	regime := opts.Regime
	if regime == nil {
		regime = lockedMajor{}
	}

	prevSoprano := sopranoBaseMidi
	prevBass := bassBaseMidi

	return &Engine{
		rng:    rand.New(rand.NewSource(opts.Seed)),
		clock:  &HarmonicClock{},
		regime: regime,
		fast: &PriceSeries{
			Current:  opts.FastOpen,
			Open:     opts.FastOpen,
			WalkStep: opts.FastWalkStep,
			Drift:    opts.FastDrift,
		},
		slow: &PriceSeries{
			Current:  opts.SlowOpen,
			Open:     opts.SlowOpen,
			WalkStep: opts.SlowWalkStep,
			Drift:    opts.SlowDrift,
		},
		baseFastStepPct:  opts.FastStepPct,
		baseSlowStepPct:  opts.SlowStepPct,
		fastStepPct:      opts.FastStepPct,
		slowStepPct:      opts.SlowStepPct,
		sensitivity:      1.0,
		priceNoise:       1.0,
		sopranoRhythm:    16,
		rootMidi:         opts.RootMidi,
		maxRootOffset:    opts.MaxRootOffset,
		enableRootMotion: opts.EnableRootMotion,
		prevSoprano:      &prevSoprano,
		prevBass:         &prevBass,
		stuckLimit:       defaultStuckLimit,
		lastDegree:       1,
		buildID:          opts.BuildID,
	}
}

// lockedMajor is the fallback regime when none is injected.
type lockedMajor struct{}

func (lockedMajor) Regime(int) domain.Regime { return domain.RegimeMajor }

// GenerateBundle runs one tick of 16 sub-steps and packages the result.
// Sub-steps cannot be reordered: each one's trend-aware rounding depends on
// the immediately preceding sub-step's price.
func (e *Engine) GenerateBundle() *domain.Bundle {
	e.mu.Lock()
	defer e.mu.Unlock()

	startTick := e.tickCount + 1
	regime := e.regime.Regime(e.clock.Step())

	if e.clock.Step() == 0 && e.rng.Float64() < rootMotionProb {
		e.advanceRootOffset(regime)
	}

	startFast := e.fast.Current
	startSlow := e.slow.Current
	endFast := e.fast.Advance(e.rng, e.priceNoise)
	endSlow := e.slow.Advance(e.rng, e.priceNoise)

	root := e.rootMidi + e.rootOffset

	// Re-center both windows on the tick-start price so the selectable range
	// follows the price instead of saturating at an edge.
	fastAnchor0 := PriceToAnchor(startFast, e.fast.Open, sopranoBaseMidi, e.fastStepPct, nil)
	slowAnchor0 := PriceToAnchor(startSlow, e.slow.Open, bassBaseMidi, e.slowStepPct, nil)
	sopranoCenter, sopranoMin, sopranoMax := WindowRange(fastAnchor0, sopranoHalfRange, sopranoBounds)
	bassCenter, bassMin, bassMax := WindowRange(slowAnchor0, bassHalfRange, bassBounds)

	sopranoPool := ScalePool(regime, root, sopranoMin, sopranoMax)
	bassPool := ScalePool(regime, root, bassMin, bassMax)

	b := &domain.Bundle{
		PayloadVersion: payloadVersion,
		BuildID:        e.buildID,
		Soprano:        make([]*int, 0, domain.SubSteps),
		Bass:           make([]*int, 0, domain.SubSteps),
		FastPrices:     make([]float64, 0, domain.SubSteps),
		SlowPrices:     make([]float64, 0, domain.SubSteps),
		FastNotePrices: make([]float64, 0, domain.SubSteps),
		SlowNotePrices: make([]*float64, 0, domain.SubSteps),
		RVol:           1.0,
		Regime:         regime,
		StartTick:      startTick,
	}

	var prevFastPrice, prevSlowPrice *float64

	for i := 0; i < domain.SubSteps; i++ {
		e.tickCount++
		step := e.clock.Tick()

		lerp := float64(i) / float64(domain.SubSteps-1)
		fastPrice := startFast + (endFast-startFast)*lerp + uniform(e.rng, -0.02, 0.02)
		slowPrice := startSlow + (endSlow-startSlow)*lerp + uniform(e.rng, -0.02, 0.02)

		b.FastPrices = append(b.FastPrices, domain.RoundPrice(fastPrice, 4))
		b.SlowPrices = append(b.SlowPrices, domain.RoundPrice(slowPrice, 4))

		degree := ChordDegree(regime, step)
		e.lastDegree = degree
		chordClasses := pitchClassSet(ChordTones(regime, degree))

		strongBeat := i%4 == 0

		fastAnchor := PriceToAnchor(fastPrice, e.fast.Open, sopranoBaseMidi, e.fastStepPct, prevFastPrice)
		fp := fastPrice
		prevFastPrice = &fp

		soprano := e.selectSoprano(i, strongBeat, fastAnchor, root, sopranoPool, chordClasses)

		slowAnchor := PriceToAnchor(slowPrice, e.slow.Open, bassBaseMidi, e.slowStepPct, prevSlowPrice)
		sp := slowPrice
		prevSlowPrice = &sp

		bassNote := e.selectBass(strongBeat, slowAnchor, root, bassPool, chordClasses)

		// Keep the voices at least an octave apart; closer registers turn muddy.
		if bassNote != nil {
			if floor := *bassNote + minSeparation; soprano < floor {
				if adjusted, ok := sopranoPool.NearestAbove(floor); ok {
					soprano = adjusted
				}
			}
		}

		s := soprano
		e.prevSoprano = &s

		sopranoCopy := soprano
		b.Soprano = append(b.Soprano, &sopranoCopy)
		b.Bass = append(b.Bass, bassNote)

		b.FastNotePrices = append(b.FastNotePrices,
			domain.RoundPrice(NotePrice(soprano, sopranoCenter, startFast, e.fastStepPct), 4))
		if bassNote != nil {
			np := domain.RoundPrice(NotePrice(*bassNote, bassCenter, startSlow, e.slowStepPct), 4)
			b.SlowNotePrices = append(b.SlowNotePrices, &np)
		} else {
			b.SlowNotePrices = append(b.SlowNotePrices, nil)
		}

		if bassNote != nil && dissonant(soprano, *bassNote) {
			b.Divergence = true
		}
	}

	b.ChordDegree = e.lastDegree
	b.RootOffset = e.rootOffset
	b.TickCount = e.tickCount
	b.FastPrice = domain.RoundPrice(e.fast.Current, 2)
	b.SlowPrice = domain.RoundPrice(e.slow.Current, 2)
	return b
}

// selectSoprano picks the soprano pitch for one sub-step, or holds the
// previous pitch between rhythm boundaries.
func (e *Engine) selectSoprano(i int, strongBeat bool, anchor, root int, pool Pool, chordClasses map[int]bool) int {
	rhythmInterval := StepsPerBar / e.sopranoRhythm
	if i%rhythmInterval != 0 {
		if e.prevSoprano != nil {
			return *e.prevSoprano
		}
		return sopranoBaseMidi
	}

	allowed := pool
	if strongBeat {
		if chordPool := pool.FilterPitchClasses(root, chordClasses); !chordPool.Empty() {
			allowed = chordPool
		}
	}

	if e.sensitivity >= 4.0 {
		return e.sopranoDirect(anchor, allowed, pool)
	}
	return e.sopranoVoiceLed(i, strongBeat, anchor, allowed, pool)
}

// sopranoDirect is the high-sensitivity mode: track the raw target, with
// Brownian jitter growing alongside the repeat count so a flat price still
// yields a moving line.
func (e *Engine) sopranoDirect(anchor int, allowed, pool Pool) int {
	base := allowed.Nearest(anchor)

	if e.prevSopranoBase != nil && base == *e.prevSopranoBase {
		e.sopranoRepeat++
	} else {
		e.sopranoRepeat = 0
	}
	bc := base
	e.prevSopranoBase = &bc

	if e.sopranoRepeat < 1 {
		return base
	}

	jitterRange := 1 + e.sopranoRepeat/2
	if jitterRange > 3 {
		jitterRange = 3
	}
	jitter := e.rng.Intn(2*jitterRange+1) - jitterRange
	if jitter == 0 && e.sopranoRepeat >= 2 {
		jitter = pickSign(e.rng)
	}
	return pool.OffsetDegree(base, jitter)
}

// sopranoVoiceLed is the standard mode: windowed scale-step selection with
// stepwise-motion enforcement and escalating anti-stagnation correction.
func (e *Engine) sopranoVoiceLed(i int, strongBeat bool, anchor int, allowed, pool Pool) int {
	degreeStep := int(math.Round(e.sensitivity))
	if degreeStep < 1 {
		degreeStep = 1
	}
	if degreeStep > 7 {
		degreeStep = 7
	}

	repeatPenalty := 0.2
	if e.sensitivity >= 5.0 {
		repeatPenalty = 0
	}

	maxStep := degreeStep
	if strongBeat && maxStep < 2 {
		maxStep = 2
	}

	soprano := pickScaleStep(e.prevSoprano, anchor, allowed, maxStep, repeatPenalty)
	soprano = pool.Nearest(soprano)

	if i%2 == 1 {
		if stepped, ok := stepTowardTarget(e.prevSoprano, anchor, pool, degreeStep); ok {
			soprano = stepped
		}
	}
	soprano = enforceStepwiseMotion(e.prevSoprano, soprano, pool, degreeStep)

	if e.prevSoprano != nil && soprano == *e.prevSoprano {
		e.sopranoRepeat++
	} else {
		e.sopranoRepeat = 0
	}

	if e.sopranoRepeat >= 2 {
		forceStep := degreeStep
		if forceStep < 2 {
			forceStep = 2
		}
		if forced, ok := stepTowardTarget(e.prevSoprano, anchor, pool, forceStep); ok {
			soprano = forced
			e.sopranoRepeat = 0
		}
	}

	if e.sopranoRepeat >= e.stuckLimit {
		reference := soprano
		if e.prevSoprano != nil {
			reference = *e.prevSoprano
		}
		direction := 1
		if anchor < reference {
			direction = -1
		}
		soprano = escapeStuck(soprano, pool, direction)
		e.sopranoRepeat = 0
	}

	return soprano
}

// selectBass picks a new bass note on quarter beats and holds it otherwise.
// A repeat on a quarter beat gets a random one-or-two-degree kick.
func (e *Engine) selectBass(strongBeat bool, anchor, root int, pool Pool, chordClasses map[int]bool) *int {
	if !strongBeat {
		return e.prevBass
	}

	allowed := pool
	if chordPool := pool.FilterPitchClasses(root, chordClasses); !chordPool.Empty() {
		allowed = chordPool
	}
	base := allowed.Nearest(anchor)

	note := base
	if e.prevBass != nil && base == *e.prevBass {
		kicks := [4]int{-2, -1, 1, 2}
		note = pool.OffsetDegree(base, kicks[e.rng.Intn(len(kicks))])
	}

	n := note
	e.prevBass = &n
	return e.prevBass
}

// advanceRootOffset walks the root offset one scale degree in a random
// direction, clamped to the configured bound. No-op unless enabled.
func (e *Engine) advanceRootOffset(regime domain.Regime) {
	if !e.enableRootMotion {
		return
	}
	intervals := regime.Intervals()
	e.rootDegreeIndex = ((e.rootDegreeIndex+pickSign(e.rng))%len(intervals) + len(intervals)) % len(intervals)
	offset := intervals[e.rootDegreeIndex]
	if offset > e.maxRootOffset {
		offset = e.maxRootOffset
	}
	if offset < -e.maxRootOffset {
		offset = -e.maxRootOffset
	}
	e.rootOffset = offset
}

func pickSign(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
