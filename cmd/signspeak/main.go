// Command signspeak runs the SignSpeak sign language detection service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ayusman/signspeak/internal/app"
	"github.com/ayusman/signspeak/internal/server"
	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/sign"
	"github.com/ayusman/signspeak/internal/speech"
	"github.com/ayusman/signspeak/internal/store"
	"github.com/ayusman/signspeak/internal/tray"
)

const shutdownTimeout = 2 * time.Second

func main() {
	addr := flag.String("addr", ":8765", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	mirror := flag.Bool("mirror", true, "mirror camera frames horizontally")
	dictPath := flag.String("dict", "", "path to sign dictionary JSON (optional)")
	dbPath := flag.String("db", "", "path to SQLite database (default ~/.signspeak/signspeak.db)")
	useTray := flag.Bool("tray", false, "show a system tray icon")
	enableSpeech := flag.Bool("speech", true, "speak committed signs aloud")
	speechRate := flag.Int("speech-rate", 150, "speech rate in words per minute")
	flag.Parse()

	st, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	dict, err := sign.LoadDictionary(*dictPath)
	if err != nil {
		log.Fatalf("dictionary: %v", err)
	}
	classifier := sign.NewClassifier(dict)

	dispatcher := newDispatcher(*enableSpeech, *speechRate)

	sess := session.New(loadSessionConfig(st))
	sess.SetSpeaker(dispatcher)
	sess.SetHistorySink(&historyArchiver{store: st})
	sess.SetSpeechEnabled(st.Settings().GetBool(store.SettingSpeechEnabled, *enableSpeech))

	pipeline := app.New(app.Config{
		Session:    sess,
		Classifier: classifier,
		CameraID:   *cameraID,
		Mirror:     *mirror,
	})
	if err := pipeline.Start(); err != nil {
		log.Printf("pipeline: %v (detection disabled, /api/detect still available)", err)
	}

	srv := server.New(server.Config{
		StaticDir:  findWebDir(),
		Session:    sess,
		Classifier: classifier,
		Detector:   pipeline.Detector(),
		Camera:     pipeline.Camera(),
		Speech:     dispatcher,
		Store:      st,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", *addr)
		errCh <- srv.ListenAndServe(*addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if *useTray {
		t := tray.New()
		t.OnToggleDetect(pipeline.SetEnabled)
		t.OnToggleSpeech(func(on bool) {
			sess.SetSpeechEnabled(on)
			if !on && dispatcher != nil {
				dispatcher.Stop()
			}
		})
		t.OnQuit(func() { stop <- syscall.SIGTERM })
		pipeline.OnCommit(func(name string) { t.SetLastSign(name) })

		go waitForExit(stop, errCh, pipeline, dispatcher)
		t.Run() // blocks until quit
		return
	}

	waitForExit(stop, errCh, pipeline, dispatcher)
}

func waitForExit(stop chan os.Signal, errCh chan error, pipeline *app.App, dispatcher *speech.Dispatcher) {
	select {
	case sig := <-stop:
		log.Printf("received %v, shutting down", sig)
	case err := <-errCh:
		if err != nil {
			log.Printf("server: %v", err)
		}
	}

	pipeline.Stop()

	if dispatcher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := dispatcher.Shutdown(ctx); err != nil {
			log.Printf("speech shutdown: %v", err)
		}
	}
}

func openStore(path string) (*store.Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(home, ".signspeak")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "signspeak.db")
	}
	return store.New(path)
}

// loadSessionConfig seeds the session config from persisted settings,
// falling back to defaults for anything unset.
func loadSessionConfig(st *store.Store) session.Config {
	cfg := session.DefaultConfig()
	cfg.ConfidenceThreshold = st.Settings().GetFloat(store.SettingConfidenceThreshold, cfg.ConfidenceThreshold)
	if v := st.Settings().GetFloat(store.SettingHoldDurationSec, cfg.HoldDuration.Seconds()); v > 0 {
		cfg.HoldDuration = time.Duration(v * float64(time.Second))
	}
	return cfg
}

func newDispatcher(enabled bool, rate int) *speech.Dispatcher {
	if !enabled {
		return speech.NewDispatcher(nil)
	}
	synth, err := speech.NewCommandSynthesizer(rate)
	if err != nil {
		log.Printf("speech: %v (running silent)", err)
		return speech.NewDispatcher(nil)
	}
	return speech.NewDispatcher(synth)
}

// historyArchiver persists cleared sentences to the database.
type historyArchiver struct {
	store *store.Store
}

func (h *historyArchiver) Archive(text string) {
	if _, err := h.store.History().Add(text); err != nil {
		log.Printf("history: %v", err)
	}
}

// findWebDir locates the static web assets relative to the working
// directory or the executable.
func findWebDir() string {
	candidates := []string{"web"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "web"))
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	// No bundled assets; the server skips the static route.
	return ""
}
