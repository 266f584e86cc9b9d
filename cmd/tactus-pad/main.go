// Command tactus-pad is the graphical frontend: a multitouch pad surface
// over the voice engine, pitch left-to-right and brightness bottom-to-top.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tactus-audio/tactus/pkg/audio"
	"github.com/tactus-audio/tactus/pkg/debug"
	"github.com/tactus-audio/tactus/pkg/engine"
	"github.com/tactus-audio/tactus/pkg/looper"
)

func main() {
	sampleRate := flag.Int("rate", 48000, "session sample rate in Hz")
	maxLoop := flag.Float64("max-loop", looper.DefaultMaxLoopSeconds, "maximum loop length in seconds")
	flag.Parse()

	eng := engine.New(engine.Config{SampleRate: float64(*sampleRate)})
	loop := looper.New(looper.Config{
		SampleRate:     float64(*sampleRate),
		MaxLoopSeconds: *maxLoop,
		Logger:         debug.Default(),
	})
	eng.SetLooper(loop)

	out, err := audio.NewOtoOutput(*sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio output: %v\n", err)
		os.Exit(1)
	}
	out.SetSource(eng)
	out.Start()
	defer func() {
		out.Close()
		loop.Close()
		eng.Close()
	}()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("tactus")
	if err := ebiten.RunGame(newGame(eng, loop)); err != nil {
		fmt.Fprintf(os.Stderr, "ui: %v\n", err)
		os.Exit(1)
	}
}
