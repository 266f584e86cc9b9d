// Command tactus is the terminal frontend: a keyboard playing surface over
// the voice engine with parameter sliders and loop transport.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tactus-audio/tactus/pkg/audio"
	"github.com/tactus-audio/tactus/pkg/debug"
	"github.com/tactus-audio/tactus/pkg/engine"
	"github.com/tactus-audio/tactus/pkg/looper"
)

func main() {
	sampleRate := flag.Int("rate", 48000, "session sample rate in Hz")
	maxLoop := flag.Float64("max-loop", looper.DefaultMaxLoopSeconds, "maximum loop length in seconds")
	logFile := flag.String("log", "", "write debug log to file")
	useInput := flag.Bool("input", false, "mix the default audio input into the live output")
	flag.Parse()

	logger := debug.Default()
	if *logFile != "" {
		fl, err := debug.NewFileLogger(*logFile, "tactus")
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		fl.SetLevel(debug.LogLevelDebug)
		logger = fl
	} else {
		// The TUI owns the terminal; keep stderr quiet.
		logger.SetLevel(debug.LogLevelOff)
	}

	eng := engine.New(engine.Config{SampleRate: float64(*sampleRate)})
	loop := looper.New(looper.Config{
		SampleRate:     float64(*sampleRate),
		MaxLoopSeconds: *maxLoop,
		Logger:         logger,
	})
	eng.SetLooper(loop)

	out, err := audio.NewOtoOutput(*sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio output: %v\n", err)
		os.Exit(1)
	}
	out.SetSource(eng)
	out.Start()

	var capture *audio.InputCapture
	if *useInput {
		capture, err = audio.NewInputCapture(float64(*sampleRate), eng.PushInput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audio input: %v\n", err)
			os.Exit(1)
		}
		if err := capture.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "audio input: %v\n", err)
			os.Exit(1)
		}
	}

	defer func() {
		if capture != nil {
			capture.Close()
		}
		out.Close()
		loop.Close()
		eng.Close()
	}()

	p := tea.NewProgram(newModel(eng, loop), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ui: %v\n", err)
		os.Exit(1)
	}
}
