// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     app
// Description: Application controller wiring capture, pipeline and tray
// License:     MIT
// ============================================================================

package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"voztype/internal/audio"
	"voztype/internal/config"
	"voztype/internal/enhance"
	"voztype/internal/history"
	"voztype/internal/inject"
	"voztype/internal/models"
	"voztype/internal/pipeline"
	"voztype/internal/stt"
	"voztype/internal/translate"
	"voztype/internal/ui"
	"voztype/internal/vad"
	"voztype/pkg/logger"
)

// App owns the application lifecycle: hotkeys, tray, recording and the
// processing pipeline.
type App struct {
	cfg        config.Config
	configPath string
	log        *logger.Logger

	state       *StateMachine
	capture     *audio.Capture
	detector    vad.Detector
	tracker     *vad.SpeechTracker
	transcriber stt.Transcriber
	ollama      *enhance.OllamaClient
	registry    *models.Registry
	store       *history.Store
	pipe        *pipeline.Pipeline
	hotkeys     *HotkeyManager
	tray        *ui.Tray

	stopMu       sync.Mutex
	recordCancel context.CancelFunc
	recordDone   chan struct{}
	buffer       *audio.UtteranceBuffer

	ctx    context.Context
	cancel context.CancelFunc
}

// New builds the application from configuration. Components that need
// external services are constructed but not probed; failures surface on
// first use.
func New(cfg config.Config, configPath string, log *logger.Logger) (*App, error) {
	a := &App{
		cfg:        cfg,
		configPath: configPath,
		log:        log.Named("app"),
		state:      NewStateMachine(),
		hotkeys:    NewHotkeyManager(),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	capture, err := audio.NewCapture(audio.CaptureConfig{
		SampleRate: float64(cfg.Audio.SampleRate),
		BufferSize: cfg.Audio.BufferSize,
		DeviceName: cfg.Audio.InputDevice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio: %w", err)
	}
	a.capture = capture

	a.detector = newDetector(cfg, a.log)
	a.tracker = vad.NewSpeechTracker(vad.Config{
		SampleRate:        cfg.Audio.SampleRate,
		SilenceDuration:   secondsToDuration(cfg.Audio.SilenceDurationS),
		MinSpeechDuration: secondsToDuration(cfg.Audio.MinSpeechS),
	})

	a.transcriber = newTranscriber(cfg, a.log)

	translator := translate.NewHTTPTranslator(translate.Config{
		ServerURL:      cfg.Translation.ServerURL,
		Source:         cfg.Translation.Source,
		Target:         cfg.Translation.Target,
		TimeoutSeconds: cfg.Translation.TimeoutSeconds,
	})

	var enhancer enhance.Enhancer
	if cfg.LLM.Enabled {
		a.ollama = enhance.NewOllamaClient(enhance.OllamaConfig{
			BaseURL:        cfg.LLM.ServerURL,
			Model:          cfg.LLM.Model,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
		enhancer = enhance.NewOllamaEnhancer(a.ollama)
	}

	a.registry = models.NewRegistry(cfg.LLM.ModelsDir)
	if err := a.registry.Scan(); err != nil {
		a.log.Warn("model scan failed", logger.Error(err))
	}

	injector, err := inject.New(inject.Config{
		Method:       inject.Method(cfg.Injection.Method),
		MaxTypeLen:   cfg.Injection.MaxTypeLen,
		RestoreDelay: time.Duration(cfg.Injection.RestoreDelayMs) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize injection: %w", err)
	}

	var recorder pipeline.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path, cfg.History.MaxEntries)
		if err != nil {
			a.log.Warn("history unavailable", logger.Error(err))
		} else {
			a.store = store
			recorder = store
		}
	}

	a.pipe = pipeline.New(a.transcriber, translator, enhancer, injector, recorder, pipeline.Options{
		CleanSpanish:       cfg.LLM.Enabled && cfg.LLM.CleanSpanish,
		EnhanceTranslation: cfg.LLM.Enabled && cfg.LLM.EnhanceTranslation,
	}, log)

	return a, nil
}

func newDetector(cfg config.Config, log *logger.Logger) vad.Detector {
	d, err := vad.NewWebRTCVAD(vad.Config{
		SampleRate:      cfg.Audio.SampleRate,
		Mode:            2,
		EnergyThreshold: cfg.Audio.SilenceThreshold,
	})
	if err != nil {
		log.Warn("WebRTC VAD unavailable, using energy detector", logger.Error(err))
		return vad.NewEnergyDetector(cfg.Audio.SilenceThreshold)
	}
	return d
}

// newTranscriber prefers the whisper.cpp binary and falls back to the HTTP
// server when the binary or model is missing.
func newTranscriber(cfg config.Config, log *logger.Logger) stt.Transcriber {
	sttCfg := stt.Config{
		ModelPath:  cfg.Whisper.ModelPath,
		Language:   cfg.Whisper.Language,
		SampleRate: cfg.Audio.SampleRate,
		Binary:     cfg.Whisper.Binary,
	}

	cli, err := stt.NewWhisperCLI(sttCfg)
	if err == nil {
		return cli
	}
	log.Info("whisper binary unavailable, using HTTP transcription",
		logger.Error(err), logger.String("server", cfg.Whisper.ServerURL))
	return stt.NewWhisperHTTP(cfg.Whisper.ServerURL, sttCfg)
}

// Run registers hotkeys and enters the tray loop. It blocks until Quit.
func (a *App) Run() error {
	if err := a.hotkeys.Register(a.cfg.Hotkeys.Record, a.ToggleRecording); err != nil {
		return err
	}
	if err := a.hotkeys.Register(a.cfg.Hotkeys.ToggleEnabled, a.ToggleEnabled); err != nil {
		return err
	}

	var modelIDs []string
	for _, m := range a.registry.List() {
		modelIDs = append(modelIDs, m.ID)
	}

	a.tray = ui.NewTray(ui.Callbacks{
		OnActivate:      a.ToggleRecording,
		OnToggleEnabled: a.ToggleEnabled,
		OnSelectModel:   a.SelectModel,
		OnToggleEnhance: a.SetEnhanceEnabled,
		OnQuit:          a.Shutdown,
	}, modelIDs, a.cfg.LLM.Model, a.cfg.LLM.EnhanceTranslation)

	a.state.OnTransition(func(from, to State) {
		a.log.Debug("state transition",
			logger.String("from", from.String()),
			logger.String("to", to.String()))
		a.tray.SetStatus(stateToStatus(to))
	})

	a.log.Info("voztype started",
		logger.String("record_hotkey", a.cfg.Hotkeys.Record),
		logger.String("toggle_hotkey", a.cfg.Hotkeys.ToggleEnabled))

	a.tray.Run()
	return nil
}

func stateToStatus(s State) ui.Status {
	switch s {
	case StateRecording:
		return ui.StatusRecording
	case StateProcessing:
		return ui.StatusProcessing
	case StateDisabled:
		return ui.StatusDisabled
	case StateError:
		return ui.StatusError
	default:
		return ui.StatusIdle
	}
}

// ToggleRecording starts a recording, or stops the running one and sends it
// through the pipeline. Triggers during processing are rejected.
func (a *App) ToggleRecording() {
	switch a.state.Current() {
	case StateDisabled:
		a.log.Debug("recording trigger ignored while disabled")

	case StateProcessing:
		a.log.Info("recording trigger rejected, utterance in flight")

	case StateRecording:
		a.stopRecording(true)

	default:
		if err := a.startRecording(); err != nil {
			a.log.Error("failed to start recording", logger.Error(err))
			a.state.TransitionTo(StateError)
		}
	}
}

func (a *App) startRecording() error {
	if err := a.state.TransitionTo(StateRecording); err != nil {
		return err
	}

	maxSamples := int(a.cfg.Audio.MaxDurationS * float64(a.cfg.Audio.SampleRate))
	a.buffer = audio.NewUtteranceBuffer(maxSamples)
	a.tracker.Reset()

	ctx, cancel := context.WithCancel(a.ctx)
	a.recordCancel = cancel
	a.recordDone = make(chan struct{})

	if err := a.capture.Start(ctx); err != nil {
		cancel()
		a.state.TransitionTo(StateIdle)
		return err
	}

	go a.recordLoop(ctx)
	a.log.Info("recording started")
	return nil
}

// recordLoop consumes capture chunks until silence, the duration cap or a
// stop trigger ends the utterance.
func (a *App) recordLoop(ctx context.Context) {
	defer close(a.recordDone)

	for {
		select {
		case <-ctx.Done():
			return

		case chunk, ok := <-a.capture.Output():
			if !ok {
				return
			}

			full := a.buffer.Append(chunk)

			isSpeech, err := a.detector.Process(chunk)
			if err != nil {
				isSpeech = audio.RMS(chunk) > a.cfg.Audio.SilenceThreshold
			}
			a.tracker.Update(isSpeech)

			if full {
				a.log.Info("maximum utterance duration reached")
				go a.stopRecording(true)
				return
			}
			if a.tracker.ShouldEndRecording() {
				a.log.Debug("silence threshold reached")
				go a.stopRecording(true)
				return
			}
		}
	}
}

// stopRecording ends capture and, when process is set, hands the utterance
// to the pipeline. The hotkey and the record loop's auto-stop can both land
// here at once; stopMu serializes them and the state re-check makes the
// loser a no-op.
func (a *App) stopRecording(process bool) {
	a.stopMu.Lock()
	defer a.stopMu.Unlock()

	if !a.state.Is(StateRecording) {
		return
	}

	if a.recordCancel != nil {
		a.recordCancel()
	}
	if err := a.capture.Stop(); err != nil {
		a.log.Warn("failed to stop capture", logger.Error(err))
	}
	if a.recordDone != nil {
		<-a.recordDone
	}

	duration := a.buffer.DurationSeconds(float64(a.cfg.Audio.SampleRate))
	a.log.Info("recording stopped", logger.Float64("seconds", duration))

	if !process || a.buffer.Len() == 0 {
		a.state.TransitionTo(StateIdle)
		return
	}
	if !a.tracker.IsValidSpeech() {
		a.log.Info("utterance too short, discarded")
		a.state.TransitionTo(StateIdle)
		return
	}

	if err := a.state.TransitionTo(StateProcessing); err != nil {
		a.log.Error("cannot enter processing", logger.Error(err))
		return
	}

	go a.processUtterance()
}

func (a *App) processUtterance() {
	if a.cfg.Audio.NormalizeUtterance {
		a.buffer.Normalize()
	}
	samples := a.buffer.Get()

	result, err := a.pipe.Process(a.ctx, samples)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoSpeech) {
			a.log.Info("no speech recognized")
			a.state.TransitionTo(StateIdle)
			return
		}
		if errors.Is(err, pipeline.ErrBusy) {
			a.log.Warn("utterance dropped, another is in flight")
			a.state.TransitionTo(StateIdle)
			return
		}
		a.log.Error("utterance failed", logger.Error(err))
		a.state.TransitionTo(StateError)
		return
	}

	a.log.Info("text delivered",
		logger.String("text", result.Final),
		logger.String("method", string(result.Method)))
	a.state.TransitionTo(StateIdle)
}

// ToggleEnabled suspends or resumes the application.
func (a *App) ToggleEnabled() {
	if a.state.Is(StateDisabled) {
		a.state.TransitionTo(StateIdle)
		a.log.Info("enabled")
		return
	}

	if a.state.Is(StateRecording) {
		a.stopRecording(false)
	}
	if err := a.state.TransitionTo(StateDisabled); err != nil {
		a.log.Warn("cannot disable now", logger.Error(err))
		return
	}
	a.log.Info("disabled")
}

// SelectModel switches the enhancement model and persists the choice. The
// previous model is unloaded before the new one is warmed.
func (a *App) SelectModel(id string) {
	if a.ollama == nil {
		return
	}

	ctx, cancel := context.WithTimeout(a.ctx, 2*time.Minute)
	defer cancel()

	if err := a.ollama.SwitchModel(ctx, id); err != nil {
		a.log.Error("model switch failed", logger.String("model", id), logger.Error(err))
		return
	}

	a.cfg.LLM.Model = id
	a.saveConfig()
	a.log.Info("enhancement model switched", logger.String("model", id))
}

// SetEnhanceEnabled toggles translation enhancement and persists it.
func (a *App) SetEnhanceEnabled(enabled bool) {
	a.cfg.LLM.EnhanceTranslation = enabled
	a.pipe.SetOptions(pipeline.Options{
		CleanSpanish:       a.cfg.LLM.Enabled && a.cfg.LLM.CleanSpanish,
		EnhanceTranslation: a.cfg.LLM.Enabled && enabled,
	})
	a.saveConfig()
	a.log.Info("translation enhancement", logger.Bool("enabled", enabled))
}

func (a *App) saveConfig() {
	if err := config.Save(a.cfg, a.configPath); err != nil {
		a.log.Warn("failed to save config", logger.Error(err))
	}
}

// Shutdown stops recording and releases every component.
func (a *App) Shutdown() {
	a.log.Info("shutting down")

	if a.state.Is(StateRecording) {
		a.stopRecording(false)
	}
	a.cancel()

	a.hotkeys.Close()
	if a.detector != nil {
		a.detector.Close()
	}
	if a.transcriber != nil {
		a.transcriber.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.capture != nil {
		a.capture.Close()
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
