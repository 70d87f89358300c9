package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rohitdeveloper22/SongKeyFinder/keydetect"
	"github.com/rohitdeveloper22/SongKeyFinder/logging"
)

func main() {
	var (
		ffmpegPath = flag.String("ffmpeg", "ffmpeg", "Path to the ffmpeg binary")
		maxSeconds = flag.Int("max-seconds", 60, "Seconds of audio to analyze after silence trimming")
		timeout    = flag.Duration("timeout", 30*time.Second, "Decode timeout per file")
		topNotes   = flag.Int("top-notes", 5, "Number of pitch classes to report")
		debug      = flag.Bool("debug", false, "Enable verbose logging")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <audio-file> [audio-file...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Estimates the musical key of each file and prints one JSON result per line.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *maxSeconds <= 0 {
		log.Fatalf("max-seconds must be positive (got %d)", *maxSeconds)
	}
	if *topNotes <= 0 {
		log.Fatalf("top-notes must be positive (got %d)", *topNotes)
	}

	if *debug {
		logging.SetLevel(logging.DebugLevel)
	} else {
		logging.SetGlobalLogger(&logging.NoOpLogger{})
	}

	config := keydetect.DefaultConfig()
	config.MaxDuration = time.Duration(*maxSeconds) * time.Second
	config.TopNotes = *topNotes
	config.Decoder.FFmpegPath = *ffmpegPath
	config.Decoder.Timeout = *timeout

	analyzer := keydetect.NewAnalyzer(config)
	encoder := json.NewEncoder(os.Stdout)

	exitCode := 0
	for _, filename := range flag.Args() {
		result, err := analyzer.AnalyzeFile(context.Background(), filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
			exitCode = 1
			continue
		}

		if err := encoder.Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
	}

	os.Exit(exitCode)
}
