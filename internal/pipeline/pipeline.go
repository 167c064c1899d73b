// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     pipeline
// Description: Utterance processing sequence from audio to injected text
// License:     MIT
// ============================================================================

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"voztype/internal/enhance"
	"voztype/internal/history"
	"voztype/internal/inject"
	"voztype/internal/stt"
	"voztype/internal/textproc"
	"voztype/internal/translate"
	"voztype/pkg/logger"
)

// ErrBusy reports that an utterance is already in flight. Utterances are
// processed one at a time; a second request is rejected, not queued.
var ErrBusy = errors.New("pipeline busy")

// ErrNoSpeech reports that transcription produced no usable text.
var ErrNoSpeech = errors.New("no speech recognized")

// Injector delivers finished text to the focused window.
type Injector interface {
	Inject(text string) (inject.Method, error)
}

// Recorder saves processed utterances. *history.Store satisfies it; the
// pipeline runs without one.
type Recorder interface {
	Add(e history.Entry) (string, error)
}

// Options toggle the optional stages.
type Options struct {
	// CleanSpanish runs the transcript through the LLM before translation
	CleanSpanish bool

	// EnhanceTranslation polishes the literal translation with the LLM
	EnhanceTranslation bool
}

// Result describes one processed utterance.
type Result struct {
	Spanish  string
	English  string
	Final    string
	Enhanced bool
	Method   inject.Method
	Elapsed  time.Duration
}

// Pipeline runs transcription, translation, enhancement and injection in
// order. Transcription and translation failures abort; enhancement failures
// degrade to the unenhanced text.
type Pipeline struct {
	mu sync.Mutex

	optsMu sync.RWMutex
	opts   Options

	transcriber stt.Transcriber
	translator  translate.Translator
	enhancer    enhance.Enhancer
	injector    Injector
	recorder    Recorder
	log         *logger.Logger
}

// New creates a pipeline. The enhancer and recorder may be nil.
func New(transcriber stt.Transcriber, translator translate.Translator, enhancer enhance.Enhancer, injector Injector, recorder Recorder, opts Options, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{
		transcriber: transcriber,
		translator:  translator,
		enhancer:    enhancer,
		injector:    injector,
		recorder:    recorder,
		opts:        opts,
		log:         log.Named("pipeline"),
	}
}

// Process runs the full sequence for one utterance. A second call while one
// is in flight returns ErrBusy immediately.
func (p *Pipeline) Process(ctx context.Context, samples []float32) (Result, error) {
	if !p.mu.TryLock() {
		return Result{}, ErrBusy
	}
	defer p.mu.Unlock()

	start := time.Now()
	// The toggles an utterance runs with are fixed when it enters the
	// pipeline; a tray toggle mid-flight applies to the next one.
	opts := p.Options()

	spanish, err := p.transcribe(ctx, samples)
	if err != nil {
		return Result{}, err
	}
	p.log.Debug("transcribed", logger.String("text", spanish))

	spanish = p.cleanSpanish(ctx, spanish, opts)

	english, err := p.translator.Translate(ctx, spanish)
	if err != nil {
		return Result{}, fmt.Errorf("translation failed: %w", err)
	}
	if strings.TrimSpace(english) == "" {
		return Result{}, fmt.Errorf("%w: empty translation", ErrNoSpeech)
	}
	p.log.Debug("translated", logger.String("text", english))

	final, enhanced := p.enhanceTranslation(ctx, spanish, english, opts)

	final = textproc.Postprocess(final)

	method, err := p.injector.Inject(final)
	if err != nil {
		return Result{}, fmt.Errorf("injection failed: %w", err)
	}

	result := Result{
		Spanish:  spanish,
		English:  english,
		Final:    final,
		Enhanced: enhanced,
		Method:   method,
		Elapsed:  time.Since(start),
	}
	p.record(result)

	p.log.Info("utterance processed",
		logger.Bool("enhanced", enhanced),
		logger.String("method", string(method)),
		logger.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (p *Pipeline) transcribe(ctx context.Context, samples []float32) (string, error) {
	res, err := p.transcriber.Transcribe(ctx, samples)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// cleanSpanish tidies the transcript. The LLM path is optional; on any
// failure or rejection the rule-based cleanup runs instead.
func (p *Pipeline) cleanSpanish(ctx context.Context, text string, opts Options) string {
	if opts.CleanSpanish && p.enhancer != nil {
		cleaned, ok, err := p.enhancer.CleanSpanish(ctx, text)
		if err != nil {
			p.log.Warn("spanish cleanup failed, using rules", logger.Error(err))
		} else if ok {
			return cleaned
		}
	}
	return textproc.SimpleCleanup(text)
}

// enhanceTranslation polishes the translation when enabled. Failures and
// rejected model output fall back to the literal translation.
func (p *Pipeline) enhanceTranslation(ctx context.Context, spanish, english string, opts Options) (string, bool) {
	if !opts.EnhanceTranslation || p.enhancer == nil {
		return english, false
	}
	enhanced, ok, err := p.enhancer.EnhanceTranslation(ctx, spanish, english)
	if err != nil {
		p.log.Warn("enhancement failed, using literal translation", logger.Error(err))
		return english, false
	}
	if !ok {
		p.log.Debug("enhancement rejected by validator")
		return english, false
	}
	return enhanced, true
}

func (p *Pipeline) record(r Result) {
	if p.recorder == nil {
		return
	}
	_, err := p.recorder.Add(history.Entry{
		Spanish:    r.Spanish,
		English:    r.English,
		Final:      r.Final,
		Enhanced:   r.Enhanced,
		DurationMs: r.Elapsed.Milliseconds(),
	})
	if err != nil {
		p.log.Warn("failed to record history", logger.Error(err))
	}
}

// SetOptions updates the stage toggles. Safe to call while an utterance is
// in flight; that utterance keeps the toggles it started with.
func (p *Pipeline) SetOptions(opts Options) {
	p.optsMu.Lock()
	defer p.optsMu.Unlock()
	p.opts = opts
}

// Options returns the current stage toggles.
func (p *Pipeline) Options() Options {
	p.optsMu.RLock()
	defer p.optsMu.RUnlock()
	return p.opts
}
