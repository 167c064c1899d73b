// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     app
// Description: Tests for recording stop coordination
// License:     MIT
// ============================================================================

package app

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"voztype/internal/audio"
	"voztype/internal/config"
	"voztype/internal/inject"
	"voztype/internal/pipeline"
	"voztype/internal/stt"
	"voztype/internal/vad"
	"voztype/pkg/logger"
)

type countingTranscriber struct {
	calls atomic.Int32
}

func (c *countingTranscriber) Transcribe(ctx context.Context, samples []float32) (stt.Result, error) {
	c.calls.Add(1)
	return stt.Result{Text: "hola mundo", Language: "es"}, nil
}

func (c *countingTranscriber) TranscribeFile(ctx context.Context, path string) (stt.Result, error) {
	return c.Transcribe(ctx, nil)
}

func (c *countingTranscriber) Close() error { return nil }

type stubTranslator struct{}

func (stubTranslator) Translate(ctx context.Context, text string) (string, error) {
	return "hello world", nil
}

func (stubTranslator) HealthCheck(ctx context.Context) error { return nil }

type stubInjector struct{}

func (stubInjector) Inject(text string) (inject.Method, error) {
	return inject.MethodClipboard, nil
}

// newStoppedApp builds an App frozen at the moment recording ends: the
// capture loop has exited, the buffer holds an utterance and the state
// machine sits in StateRecording.
func newStoppedApp(transcriber stt.Transcriber) *App {
	done := make(chan struct{})
	close(done)

	buffer := audio.NewUtteranceBuffer(16000)
	buffer.Append(make([]float32, 1600))

	a := &App{
		cfg:          config.DefaultConfig(),
		log:          logger.NewNop(),
		state:        NewStateMachine(),
		capture:      &audio.Capture{},
		tracker:      vad.NewSpeechTracker(vad.Config{}),
		buffer:       buffer,
		recordCancel: func() {},
		recordDone:   done,
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.pipe = pipeline.New(transcriber, stubTranslator{}, nil, stubInjector{}, nil,
		pipeline.Options{}, nil)
	a.state.TransitionTo(StateRecording)
	return a
}

// The hotkey and the record loop's auto-stop can fire at the same moment.
// Exactly one of them may hand the utterance to the pipeline; the app must
// settle in idle, never in the error state.
func TestStopRecordingConcurrentTriggers(t *testing.T) {
	transcriber := &countingTranscriber{}
	a := newStoppedApp(transcriber)

	sawError := false
	a.state.OnTransition(func(from, to State) {
		if to == StateError {
			sawError = true
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.stopRecording(true)
		}()
	}
	wg.Wait()

	deadline := time.After(2 * time.Second)
	for !a.state.Is(StateIdle) {
		select {
		case <-deadline:
			t.Fatalf("app never returned to idle, state = %s", a.state.Current())
		case <-time.After(time.Millisecond):
		}
	}

	if got := transcriber.calls.Load(); got != 1 {
		t.Errorf("utterance processed %d times, want 1", got)
	}
	if sawError {
		t.Error("duplicate stop must not put the app in the error state")
	}
}

func TestStopRecordingWithoutProcessing(t *testing.T) {
	transcriber := &countingTranscriber{}
	a := newStoppedApp(transcriber)

	a.stopRecording(false)

	if !a.state.Is(StateIdle) {
		t.Errorf("state = %s, want idle", a.state.Current())
	}
	if transcriber.calls.Load() != 0 {
		t.Error("discarded recording must not reach the pipeline")
	}
}
