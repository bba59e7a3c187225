package synth

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/intuitionamiga/granularsynth/internal/grain"
)

// schedulerState is the scheduler's Idle/Running state machine.
type schedulerState int32

const (
	schedulerIdle schedulerState = iota
	schedulerRunning
)

// randomization ranges for the per-fire voice parameters.
const (
	randStartMaxSamples = 10000
	randPitchJitterMax  = 0.02
	pollInterval        = time.Millisecond
)

// Scheduler is the background timed loop that randomizes one voice,
// synthesizes its grain, and enqueues the result. Stopping is
// cooperative: the stop channel is closed and the caller waits on an
// explicit join handle, rather than a fire-and-forget detached task.
type Scheduler struct {
	synth *Synth

	state atomic.Int32
	stop  chan struct{}
	wg    sync.WaitGroup

	rng *rand.Rand
}

// NewScheduler returns a scheduler bound to synth, initially idle.
func NewScheduler(s *Synth) *Scheduler {
	return &Scheduler{
		synth: s,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start transitions Idle→Running and spawns the scheduler goroutine.
// Calling Start while already running is not an error — it is a
// no-op.
func (sc *Scheduler) Start() {
	if !sc.state.CompareAndSwap(int32(schedulerIdle), int32(schedulerRunning)) {
		return
	}
	sc.stop = make(chan struct{})
	sc.wg.Add(1)
	go sc.run(sc.stop)
}

// Stop transitions Running→Idle: it closes the stop channel and blocks
// until the scheduler goroutine has exited (synchronous join). Calling
// Stop while already idle is a no-op.
func (sc *Scheduler) Stop() {
	if !sc.state.CompareAndSwap(int32(schedulerRunning), int32(schedulerIdle)) {
		return
	}
	close(sc.stop)
	sc.wg.Wait()
}

// IsRunning reports the scheduler's current state.
func (sc *Scheduler) IsRunning() bool {
	return schedulerState(sc.state.Load()) == schedulerRunning
}

func (sc *Scheduler) run(stop chan struct{}) {
	defer sc.wg.Done()

	nextFire := time.Now()
	for {
		select {
		case <-stop:
			return
		default:
		}

		now := time.Now()
		if now.Before(nextFire) {
			time.Sleep(pollInterval)
			continue
		}

		params := sc.synth.Snapshot()
		intervalMs := metroTimeMs(params.GrainDurationMs, params.GrainOverlap)

		v := sc.synth.nextVoice()
		sc.randomizeVoice(v)

		source := sc.synth.sourceCopy()
		envelope := sc.synth.envelopeCopy()
		samples := v.ProcessGrain(source, envelope, params)
		sc.synth.enqueueGrain(samples)

		nextFire = nextFire.Add(time.Duration(intervalMs * float32(time.Millisecond)))
		// If synthesis fell far behind, don't try to catch up beyond
		// one interval.
		if now.After(nextFire) {
			nextFire = now
		}
	}
}

// randomizeVoice sets mystart ~ U(0, 10000) samples, mypitch ~
// U(0, 0.02) + 1.0, and mydur = 1.0.
func (sc *Scheduler) randomizeVoice(v *grain.Voice) {
	v.MyStart = sc.rng.Float32() * randStartMaxSamples
	v.MyPitch = 1.0 + sc.rng.Float32()*randPitchJitterMax
	v.MyDur = 1.0
}

// metroTimeMs computes the scheduler firing interval from the nominal
// grain duration and overlap, as interval = duration/overlap
// (textbook granular-synthesis overlap semantics), not
// duration/2/overlap. See DESIGN.md's Open Question decisions.
func metroTimeMs(durationMs uint, overlap float32) float32 {
	if overlap <= 0 {
		overlap = grain.MinOverlap
	}
	return float32(durationMs) / overlap
}
