/*

A simple CLI app to parse an osu! replay and/or beatmap file passed as
CLI flags and print the result as JSON.

*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/Corsace/corsace-parser/analytics"
	"github.com/Corsace/corsace-parser/osu"
	"github.com/Corsace/corsace-parser/parser"
)

const (
	appName    = "osuparse"
	appVersion = "v0.1.0"
	appHome    = "https://github.com/Corsace/corsace-parser"
)

const (
	ExitCodeMissingArguments         = 1
	ExitCodeFailedToParseReplay      = 2
	ExitCodeFailedToParseBeatmap     = 3
	ExitCodeFailedToCreateOutputFile = 4
)

// Flag variables
var (
	version = flag.Bool("version", false, "print version info and exit")

	replayFile  = flag.String("replay", "", "path to a .osr replay file")
	beatmapFile = flag.String("beatmap", "", "path to a .osu beatmap file")

	extra      = flag.Bool("extra", false, "decode the replay's full frame stream (requires -beatmap)")
	attributes = flag.Bool("attributes", false, "compute difficulty/performance attributes for the beatmap")

	combo    = flag.Uint("combo", 0, "score combo, used with -attributes")
	n300     = flag.Uint("n300", 0, "count of 300s, used with -attributes")
	n100     = flag.Uint("n100", 0, "count of 100s, used with -attributes")
	n50      = flag.Uint("n50", 0, "count of 50s, used with -attributes")
	miss     = flag.Uint("miss", 0, "count of misses, used with -attributes")
	modsBits = flag.Uint("mods", 0, "mods bitmask, used with -attributes")

	outFile = flag.String("outfile", "", "optional output file name")
	indent  = flag.Bool("indent", true, "use indentation when formatting output")
)

func main() {
	flag.Parse()

	if *version {
		printVersion()
		return
	}

	if *replayFile == "" && *beatmapFile == "" {
		printUsage()
		os.Exit(ExitCodeMissingArguments)
	}

	output := map[string]interface{}{}

	var beatmapBytes []byte
	if *beatmapFile != "" {
		data, err := os.ReadFile(*beatmapFile)
		if err != nil {
			fmt.Printf("Failed to read beatmap: %v\n", err)
			os.Exit(ExitCodeFailedToParseBeatmap)
		}
		beatmapBytes = data

		bm, err := parser.ParseBeatmap(beatmapBytes)
		if err != nil {
			fmt.Printf("Failed to parse beatmap: %v\n", err)
			os.Exit(ExitCodeFailedToParseBeatmap)
		}
		output["beatmap"] = bm

		if *attributes {
			attrs, err := beatmapAttributes(beatmapBytes)
			if err != nil {
				fmt.Printf("Failed to compute attributes: %v\n", err)
				os.Exit(ExitCodeFailedToParseBeatmap)
			}
			output["attributes"] = attrs
		}
	}

	if *replayFile != "" {
		data, err := os.ReadFile(*replayFile)
		if err != nil {
			fmt.Printf("Failed to read replay: %v\n", err)
			os.Exit(ExitCodeFailedToParseReplay)
		}

		var rep *osu.Replay
		if *extra && beatmapBytes != nil {
			rep, err = parser.ParseReplayExtra(data, beatmapBytes)
		} else {
			rep, err = parser.ParseReplay(data)
		}
		if err != nil {
			fmt.Printf("Failed to parse replay: %v\n", err)
			os.Exit(ExitCodeFailedToParseReplay)
		}
		output["replay"] = rep
	}

	destination := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fmt.Printf("Failed to create output file: %v\n", err)
			os.Exit(ExitCodeFailedToCreateOutputFile)
		}
		defer func() {
			if err := f.Close(); err != nil {
				panic(err)
			}
		}()
		destination = f
	}

	enc := json.NewEncoder(destination)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(output); err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
	}
}

func beatmapAttributes(beatmapBytes []byte) (analytics.Attributes, error) {
	state := scoreStateFromFlags()
	return parser.ParseBeatmapAttributes(beatmapBytes, &state)
}

func scoreStateFromFlags() analytics.ScoreState {
	state := analytics.ScoreState{}

	c := uint32(*combo)
	t300 := uint32(*n300)
	t100 := uint32(*n100)
	t50 := uint32(*n50)
	m := uint32(*miss)

	if c > 0 {
		state.Combo = &c
	}
	if t300 > 0 {
		state.N300 = &t300
	}
	if t100 > 0 {
		state.N100 = &t100
	}
	if t50 > 0 {
		state.N50 = &t50
	}
	if m > 0 {
		state.Miss = &m
	}
	if *modsBits != 0 {
		if mods, err := osu.ModsFromBits(uint32(*modsBits)); err == nil {
			state.Mods = &mods
		}
	}

	return state
}

func printVersion() {
	fmt.Println(appName, "version:", appVersion)
	fmt.Println("Platform:", runtime.GOOS, runtime.GOARCH)
	fmt.Println("Built with:", runtime.Version())
	fmt.Println("Home page:", appHome)
}

func printUsage() {
	fmt.Println("Usage:")
	name := os.Args[0]
	fmt.Printf("\t%s -replay replay.osr [-beatmap map.osu] [FLAGS]\n", name)
	fmt.Println("\tRun with '-h' to see a list of available flags.")
}
