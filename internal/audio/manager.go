package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const defaultSampleRate = beep.SampleRate(44100)

// Player plays sound effects. Implementations must not block the caller.
type Player interface {
	Play(sound Sound)
}

// Nop is a Player that discards every sound. It is used for muted and
// remote sessions.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Sound) {}

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *rand.Rand
	rate        beep.SampleRate
	volume      float64
	logger      *log.Logger
	initialized bool
}

// NewSoundManager creates a new sound manager. A non-positive sample rate
// selects 44.1kHz.
func NewSoundManager(volume float64, sampleRate int, logger *log.Logger) *SoundManager {
	rate := beep.SampleRate(sampleRate)
	if rate <= 0 {
		rate = defaultSampleRate
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		rate:   rate,
		volume: volume,
		logger: logger,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("audio initialized", "rate", int(sm.rate), "volume", sm.volume)
	return nil
}

// Play queues a sound effect. It is a no-op until Initialize succeeds.
func (sm *SoundManager) Play(sound Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := Build(sound, sm.rng, sm.volume, sm.rate)
	if s == nil {
		sm.logger.Warn("unknown sound", "sound", int(sound))
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and shuts the speaker down.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.mixer.Clear()
	sm.initialized = false
}
