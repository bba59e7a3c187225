// Command granularsynth loads a WAV source, starts the grain
// scheduler and audio engine, and optionally records the output to a
// new WAV file. It exercises the whole control surface end to end.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/intuitionamiga/granularsynth/internal/synthapi"
)

func main() {
	var (
		sourcePath   = flag.String("source", "", "path to a 16-bit PCM WAV source file")
		masterRate   = flag.Uint("rate", 44100, "engine master sample rate")
		envelopeSize = flag.Int("envelope", 1024, "grain envelope length in samples")
		position     = flag.Float64("position", 0.0, "normalized grain start position [0,1]")
		durationMs   = flag.Uint("duration", 100, "nominal grain duration in ms")
		overlap      = flag.Float64("overlap", 1.5, "grain overlap [1.0, 2.0]")
		pitch        = flag.Float64("pitch", 1.0, "pitch ratio [0.1, 2.0]")
		recordPath   = flag.String("record", "", "optional path to record the output to")
	)
	flag.Parse()

	if *sourcePath == "" {
		fmt.Fprintln(os.Stderr, "usage: granularsynth -source <file.wav> [flags]")
		os.Exit(1)
	}

	handle := synthapi.New(uint32(*masterRate))
	if rc := handle.LoadAudioFromFile(*sourcePath); rc != 0 {
		fmt.Fprintf(os.Stderr, "failed to load %q\n", *sourcePath)
		os.Exit(1)
	}

	handle.GenerateGrainEnvelope(*envelopeSize)
	handle.SetParams(float32(*position), *durationMs, float32(*overlap), float32(*pitch))

	engine, err := handle.CreateAudioEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create audio engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Destroy()

	handle.StartScheduler()
	defer handle.StopScheduler()

	if rc := engine.Start(); rc != 0 {
		fmt.Fprintln(os.Stderr, "failed to start audio engine")
		os.Exit(1)
	}
	defer engine.Stop()

	if *recordPath != "" {
		if rc := engine.Record(*recordPath); rc != 0 {
			fmt.Fprintf(os.Stderr, "failed to start recording to %q\n", *recordPath)
			os.Exit(1)
		}
		defer engine.StopRecording()
	}

	fmt.Printf("granular synth running — source %q, master rate %d Hz\n", *sourcePath, *masterRate)
	fmt.Println("press ctrl-c to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
