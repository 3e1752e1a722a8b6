// This file decompresses a replay's LZMA-compressed frame payload and
// parses the resulting comma/pipe-delimited frame records into a
// ReplayFrameData.

package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/itchio/lzma"

	"github.com/Corsace/corsace-parser/osu"
)

// seedSentinelTimeSince is the well-known terminating frame's TimeSince
// value; its Buttons field is repurposed as the RNG seed.
const seedSentinelTimeSince = -12345

// parseFrameStream LZMA-decompresses compressed into a UTF-8 string and
// parses it into an ordered ReplayFrameData.
func parseFrameStream(compressed []byte) (*osu.ReplayFrameData, error) {
	decompressed, err := decompressLZMA(compressed)
	if err != nil {
		return nil, fmt.Errorf("parser: lzma: %w", err)
	}

	return parseFrameCSV(string(decompressed))
}

// decompressLZMA opens an LZMA reader over compressed and copies its full
// output into a buffer.
func decompressLZMA(compressed []byte) ([]byte, error) {
	zr, err := lzma.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := &bytes.Buffer{}
	if _, err := io.Copy(out, zr); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// parseFrameCSV parses the decompressed comma-separated, pipe-delimited
// frame stream into individual frames, accumulating each frame's
// TimeSince into a running TimestampMs and consuming the well-known
// seed sentinel frame rather than appending it as a regular frame.
func parseFrameCSV(payload string) (*osu.ReplayFrameData, error) {
	data := &osu.ReplayFrameData{}

	var running int64
	for _, entry := range strings.Split(payload, ",") {
		if entry == "" {
			continue
		}

		fields := strings.Split(entry, "|")
		if len(fields) != 4 {
			return nil, fmt.Errorf("parser: malformed replay frame %q", entry)
		}

		timeSince, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parser: frame timeSince: %w", err)
		}

		if timeSince == seedSentinelTimeSince {
			seedRaw, err := strconv.ParseUint(fields[3], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("parser: frame seed: %w", err)
			}
			seed := uint32(seedRaw)
			data.Seed = &seed
			break
		}

		x, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			return nil, fmt.Errorf("parser: frame x: %w", err)
		}
		y, err := strconv.ParseFloat(fields[2], 32)
		if err != nil {
			return nil, fmt.Errorf("parser: frame y: %w", err)
		}
		buttonsRaw, err := strconv.ParseUint(fields[3], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parser: frame buttons: %w", err)
		}
		buttons, err := osu.ButtonsFromBits(uint32(buttonsRaw))
		if err != nil {
			return nil, err
		}

		running += timeSince
		data.Frames = append(data.Frames, osu.ReplayFrame{
			TimestampMs: int32(running),
			TimeSinceMs: int32(timeSince),
			Cursor:      osu.Pos2{X: float32(x), Y: float32(y)},
			Buttons:     buttons,
		})
	}

	return data, nil
}
