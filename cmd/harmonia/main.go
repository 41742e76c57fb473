package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/modetrail/harmonia/chords"
	"github.com/modetrail/harmonia/logging"
	"github.com/modetrail/harmonia/scales"
	"github.com/modetrail/harmonia/suggest"
	"github.com/modetrail/harmonia/theory"
)

var (
	verbose  bool
	keyName  string
	minorKey bool
)

func main() {
	root := &cobra.Command{
		Use:   "harmonia",
		Short: "Symbolic harmonic analysis: chords, scales, and key classification",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetLevel(logging.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(chordCmd(), scalesCmd(), detectCmd(), classifyCmd(), guessCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseNotes accepts note numbers (any integer, reduced mod 12) and note
// names like C#, Eb, F♯.
func parseNotes(args []string) ([]int, error) {
	notes := make([]int, 0, len(args))
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			notes = append(notes, n)
			continue
		}
		pc, ok := theory.ParseNote(arg)
		if !ok {
			return nil, fmt.Errorf("unrecognized note %q", arg)
		}
		notes = append(notes, pc)
	}
	return notes, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func chordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chord <note>...",
		Short: "Identify chord candidates for a set of notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := parseNotes(args)
			if err != nil {
				return err
			}
			matcher := chords.NewMatcher()
			return printJSON(matcher.FindMatches(notes))
		},
	}
}

func scalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scales <note>...",
		Short: "Suggest scales containing the played notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := parseNotes(args)
			if err != nil {
				return err
			}
			engine := suggest.NewEngine(scales.NewCatalog(), chords.NewMatcher())
			return printJSON(engine.SuggestScales(notes))
		},
	}
}

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <note>...",
		Short: "Classify the played collection as pentatonic, hexatonic, or complete",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := parseNotes(args)
			if err != nil {
				return err
			}
			engine := suggest.NewEngine(scales.NewCatalog(), chords.NewMatcher())
			return printJSON(engine.DetectScaleForms(notes))
		},
	}
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <chord-symbol>",
		Short: "Classify a chord against a key: diatonic, borrowed, or related",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, ok := theory.ParseNote(keyName)
			if !ok {
				return fmt.Errorf("unrecognized key root %q", keyName)
			}
			engine := suggest.NewEngine(scales.NewCatalog(), chords.NewMatcher())
			return printJSON(engine.ClassifyChord(args[0], root, minorKey))
		},
	}
	cmd.Flags().StringVarP(&keyName, "key", "k", "C", "key root note name")
	cmd.Flags().BoolVarP(&minorKey, "minor", "m", false, "treat the key as minor")
	return cmd
}

func guessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <chord-symbol>...",
		Short: "Guess the key from a sequence of chord symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := suggest.NewEngine(scales.NewCatalog(), chords.NewMatcher())
			for _, symbol := range args {
				engine.AddChord(chords.Match{ChordSymbol: symbol})
			}
			return printJSON(engine.GuessKeys())
		},
	}
}
