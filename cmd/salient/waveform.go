package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/satindergrewal/salient/internal/waveform"
)

var (
	wfProfile string
	wfSeed    uint64
	wfAt      time.Duration
	wfJSON    bool
)

var waveformCmd = &cobra.Command{
	Use:   "waveform",
	Short: "Print a generated bar sequence",
	Long: `Generate the at-rest bar heights for a waveform profile and print them.
With --at the animated frame at that playback offset is printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := cfg.Profile()
		if err != nil {
			return err
		}
		if wfProfile != "" {
			var ok bool
			if p, ok = waveform.ProfileByName(wfProfile); !ok {
				return fmt.Errorf("unknown profile %q (have %v)", wfProfile, waveform.ProfileNames())
			}
		}
		seed := wfSeed
		if seed == 0 {
			seed = cfg.WaveformSeed
		}

		heights := waveform.Generate(p, waveform.NewRand(seed))
		if wfAt > 0 {
			heights = waveform.Animate(heights, p, wfAt)
		}

		out := cmd.OutOrStdout()
		if wfJSON {
			return json.NewEncoder(out).Encode(heights)
		}
		for i, h := range heights {
			fmt.Fprintf(out, "%3d %.3f %s\n", i, h, strings.Repeat("#", int(h*40+0.5)))
		}
		return nil
	},
}

func init() {
	waveformCmd.Flags().StringVar(&wfProfile, "profile", "", "profile name (default from config)")
	waveformCmd.Flags().Uint64Var(&wfSeed, "seed", 0, "random seed (0 picks one)")
	waveformCmd.Flags().DurationVar(&wfAt, "at", 0, "print the animated frame at this offset")
	waveformCmd.Flags().BoolVar(&wfJSON, "json", false, "print heights as JSON")
}
