package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	beepwav "github.com/gopxl/beep/wav"
	"github.com/inhouse-labs/soundlab-api/internal/generator"
	"github.com/inhouse-labs/soundlab-api/internal/samples"
	"github.com/inhouse-labs/soundlab-api/internal/synth"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "soundlabctl",
	Short: "Render and preview procedural SoundLab audio from the terminal",
	Long: `soundlabctl turns note and drum-event tokens into playable WAV audio
using the same synthesis pipeline as the SoundLab API.

Pipeline: event tokens → per-event synthesis or sample substitution → WAV`,
	Version: version,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a pattern to a WAV file",
	Long: `Render a comma-separated pattern of note tokens or drum classes
(Kick, Snare, Hi-hat) to a 16-bit mono WAV file.

Examples:
  soundlabctl render --pattern "C4,E4,G4,C5" -o melody.wav
  soundlabctl render -p "Kick,Snare,Hi-hat,Kick" --duration 0.25 -o beat.wav
  soundlabctl render -p "Kick,Snare" --sample Kick=kick.wav -o beat.wav`,
	RunE: runRender,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Render a pattern and play it on the default output device",
	RunE:  runPlay,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a random melody, drum pattern, or hook",
	Long: `Generate creative starting points without rendering audio.

Examples:
  soundlabctl generate --kind melody
  soundlabctl generate --kind drums --length 16
  soundlabctl generate --kind hook`,
	RunE: runGenerate,
}

var (
	flagPattern  string
	flagOutput   string
	flagRate     int
	flagDuration float64
	flagSeed     int64
	flagSamples  []string

	flagKind    string
	flagLength  int
	flagGenSeed int64
)

func init() {
	for _, cmd := range []*cobra.Command{renderCmd, playCmd} {
		cmd.Flags().StringVarP(&flagPattern, "pattern", "p", "", "comma-separated event tokens (required)")
		cmd.Flags().IntVarP(&flagRate, "rate", "r", synth.DefaultSampleRate, "sample rate in Hz")
		cmd.Flags().Float64VarP(&flagDuration, "duration", "d", 0.25, "segment duration in seconds")
		cmd.Flags().Int64Var(&flagSeed, "seed", 0, "noise seed for reproducible hi-hats")
		cmd.Flags().StringArrayVar(&flagSamples, "sample", nil, "token=file.wav sample substitution (repeatable)")
		_ = cmd.MarkFlagRequired("pattern")
	}
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "soundlab.wav", "output WAV path")

	generateCmd.Flags().StringVarP(&flagKind, "kind", "k", "melody", "melody, drums, or hook")
	generateCmd.Flags().IntVarP(&flagLength, "length", "l", generator.DefaultPatternLength, "pattern length")
	generateCmd.Flags().Int64Var(&flagGenSeed, "seed", 0, "seed for reproducible patterns (0 = random)")

	rootCmd.AddCommand(renderCmd, playCmd, generateCmd)
}

// renderPattern assembles and encodes the pattern from the shared flags
func renderPattern() ([]byte, error) {
	pattern := splitPattern(flagPattern)
	if len(pattern) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}

	library := samples.NewLibrary()
	for _, spec := range flagSamples {
		token, path, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --sample %q, expected token=file.wav", spec)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sample %s: %w", path, err)
		}
		sample, err := samples.DecodeWAV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode sample %s: %w", path, err)
		}
		library.Put(token, sample)
	}

	assembler := &synth.Assembler{
		SegmentDuration: flagDuration,
		Rate:            flagRate,
		Lookup:          library.LookupFunc(),
		NoiseSeed:       flagSeed,
	}

	track, err := assembler.Assemble(pattern)
	if err != nil {
		return nil, err
	}
	return synth.EncodeWAV(track, flagRate), nil
}

func runRender(cmd *cobra.Command, _ []string) error {
	wavBytes, err := renderPattern()
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagOutput, wavBytes, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flagOutput, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", flagOutput, len(wavBytes))
	return nil
}

func runPlay(cmd *cobra.Command, _ []string) error {
	wavBytes, err := renderPattern()
	if err != nil {
		return err
	}

	streamer, format, err := beepwav.Decode(io.NopCloser(bytes.NewReader(wavBytes)))
	if err != nil {
		return fmt.Errorf("decode rendered audio: %w", err)
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	defer speaker.Close()

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	seed := flagGenSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch flagKind {
	case "melody":
		g := generator.New(seed)
		fmt.Println(strings.Join(g.Melody(flagLength), " – "))
	case "drums":
		g := generator.New(seed)
		fmt.Println(strings.Join(g.DrumPattern(flagLength), " | "))
	case "hook":
		pool := generator.NewHookPool(seed)
		hook, _ := pool.Next()
		fmt.Println(hook)
	default:
		return fmt.Errorf("unknown kind %q, expected melody, drums, or hook", flagKind)
	}
	return nil
}

func splitPattern(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
