// This file implements the beatmap text parser: an outer loop that reads
// a `[Section]` header line, then dispatches each following line to the
// handler for whatever section is currently open until the next header
// line switches it. The format carries no length prefixes, so there is
// nothing to jump past. Unrecognized sections and keys, and event or
// colour lines that do not parse, are skipped; a malformed timing point
// or hit object line fails the whole parse.
package beatmap

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Corsace/corsace-parser/osu"
)

// Options controls how much of a beatmap Parse populates.
type Options struct {
	// WithCollections, when true, attaches TimingPoints, HitObjects,
	// Breaks and ComboColors to the returned Beatmap. Counts and derived
	// scalars are always computed regardless of this flag.
	WithCollections bool

	// RequireHitObjects, when true, fails the parse with
	// osu.ErrHitObjectsMissing if the [HitObjects] section is empty.
	// Callers that only need metadata (title, artist, AR/OD/CS/HP) leave
	// this false.
	RequireHitObjects bool
}

// section identifies which [Section] header is currently open.
type section int

const (
	sectionNone section = iota
	sectionGeneral
	sectionMetadata
	sectionDifficulty
	sectionEvents
	sectionTimingPoints
	sectionHitObjects
	sectionColours
)

const eventTypeBreak = "2"

// Parse decodes a .osu beatmap from its raw source bytes. Any decode
// panic, including an accidental out-of-range slice or string read, is
// recovered and returned as a structured error.
func Parse(data []byte, opts Options) (bm *osu.Beatmap, err error) {
	defer func() {
		if p := recover(); p != nil {
			bm, err = nil, fmt.Errorf("beatmap: panic parsing: %v", p)
		}
	}()
	return parseBeatmap(data, opts)
}

func parseBeatmap(data []byte, opts Options) (*osu.Beatmap, error) {
	sum := md5.Sum(data)

	bm := &osu.Beatmap{Hash: hex.EncodeToString(sum[:])}

	var (
		timingPoints = []osu.TimingPoint{}
		hitObjects   = []osu.HitObject{}
		breaks       = []osu.Break{}
		colours      = []osu.Color{}
	)

	cur := sectionNone
	scanner := bufio.NewScanner(bytes.NewReader(stripBOM(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			cur = sectionByName(trimmed[1 : len(trimmed)-1])
			continue
		}

		switch cur {
		case sectionGeneral, sectionMetadata, sectionDifficulty:
			key, value, ok := splitKeyValue(trimmed)
			if !ok {
				continue
			}
			applyKeyValue(bm, cur, key, value)

		case sectionEvents:
			if b, ok := parseBreakEvent(trimmed); ok {
				breaks = append(breaks, b)
			}

		case sectionTimingPoints:
			tp, err := parseTimingPoint(trimmed)
			if err != nil {
				return nil, fmt.Errorf("beatmap: line %d: %w", lineNo, err)
			}
			timingPoints = append(timingPoints, tp)

		case sectionHitObjects:
			ho, err := parseHitObject(trimmed)
			if err != nil {
				return nil, fmt.Errorf("beatmap: line %d: %w", lineNo, err)
			}
			hitObjects = append(hitObjects, ho)

		case sectionColours:
			if c, ok := parseComboColour(trimmed); ok {
				colours = append(colours, c)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("beatmap: %w", err)
	}

	if len(hitObjects) == 0 && opts.RequireHitObjects {
		return nil, osu.ErrHitObjectsMissing
	}

	for _, ho := range hitObjects {
		switch ho.Kind {
		case osu.KindCircle:
			bm.Circles++
		case osu.KindSlider:
			bm.Sliders++
		case osu.KindSpinner:
			bm.Spinners++
		}
	}

	if len(hitObjects) > 0 {
		bm.MapLength = uint32(math.Floor(hitObjects[len(hitObjects)-1].StartTime))
	}

	var breakTotal uint32
	for _, b := range breaks {
		if b.EndTime > b.StartTime {
			breakTotal += b.EndTime - b.StartTime
		}
	}
	if bm.MapLength > breakTotal {
		bm.DrainTime = bm.MapLength - breakTotal
	}

	if bpm, ok := computeBPM(timingPoints, hitObjects); ok {
		bm.BPM = &bpm
	}

	if opts.WithCollections {
		bm.TimingPoints = timingPoints
		bm.HitObjects = hitObjects
		bm.Breaks = breaks
		bm.ComboColors = colours
	}

	return bm, nil
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

func sectionByName(name string) section {
	switch name {
	case "General":
		return sectionGeneral
	case "Metadata":
		return sectionMetadata
	case "Difficulty":
		return sectionDifficulty
	case "Events":
		return sectionEvents
	case "TimingPoints":
		return sectionTimingPoints
	case "HitObjects":
		return sectionHitObjects
	case "Colours":
		return sectionColours
	default:
		return sectionNone
	}
}

func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func applyKeyValue(bm *osu.Beatmap, cur section, key, value string) {
	switch cur {
	case sectionMetadata:
		switch key {
		case "Title":
			bm.Title = value
		case "Artist":
			bm.Artist = value
		case "Version":
			bm.DiffName = value
		case "Tags":
			if value != "" {
				bm.Tags = strings.Fields(value)
			}
		}
	case sectionDifficulty:
		switch key {
		case "ApproachRate":
			bm.AR = parseFloat32(value)
		case "OverallDifficulty":
			bm.OD = parseFloat32(value)
		case "CircleSize":
			bm.CS = parseFloat32(value)
		case "HPDrainRate":
			bm.HP = parseFloat32(value)
		case "SliderMultiplier":
			bm.SliderMultiplier = parseFloat64(value)
		case "SliderTickRate":
			bm.TickRate = parseFloat64(value)
		}
	case sectionGeneral:
		// [General] carries fields (AudioFilename, Mode, ...) outside
		// this record's scope; nothing to extract here today.
	}
}

func parseFloat32(s string) float32 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return float32(v)
}

func parseFloat64(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func parseBreakEvent(line string) (osu.Break, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 || strings.TrimSpace(fields[0]) != eventTypeBreak {
		return osu.Break{}, false
	}
	start, err1 := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 32)
	end, err2 := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 32)
	if err1 != nil || err2 != nil {
		return osu.Break{}, false
	}
	return osu.Break{StartTime: uint32(start), EndTime: uint32(end)}, true
}

func parseTimingPoint(line string) (osu.TimingPoint, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return osu.TimingPoint{}, fmt.Errorf("timing point: too few fields")
	}
	offset, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return osu.TimingPoint{}, fmt.Errorf("timing point offset: %w", err)
	}
	beatLength, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return osu.TimingPoint{}, fmt.Errorf("timing point beatLength: %w", err)
	}
	return osu.TimingPoint{Time: offset, BeatLength: beatLength}, nil
}

func parseComboColour(line string) (osu.Color, bool) {
	key, value, ok := splitKeyValue(line)
	if !ok || !strings.HasPrefix(key, "Combo") {
		return osu.Color{}, false
	}
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return osu.Color{}, false
	}
	r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	g, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	b, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return osu.Color{}, false
	}
	return osu.Color{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

const (
	hitObjectBitCircle  = 1 << 0
	hitObjectBitSlider  = 1 << 1
	hitObjectBitSpinner = 1 << 3
	hitObjectBitHold    = 1 << 7
)

func parseHitObject(line string) (osu.HitObject, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return osu.HitObject{}, fmt.Errorf("hit object: too few fields")
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 32)
	if err != nil {
		return osu.HitObject{}, fmt.Errorf("hit object x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 32)
	if err != nil {
		return osu.HitObject{}, fmt.Errorf("hit object y: %w", err)
	}
	startTime, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return osu.HitObject{}, fmt.Errorf("hit object time: %w", err)
	}
	typeBits, err := strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 16)
	if err != nil {
		return osu.HitObject{}, fmt.Errorf("hit object type: %w", err)
	}

	ho := osu.HitObject{
		Pos:       osu.Pos2{X: float32(x), Y: float32(y)},
		StartTime: startTime,
	}

	switch {
	case typeBits&hitObjectBitSlider != 0:
		ho.Kind = osu.KindSlider
		if len(fields) < 8 {
			return osu.HitObject{}, fmt.Errorf("slider: too few fields")
		}
		if err := parseSliderPayload(&ho, fields[5:]); err != nil {
			return osu.HitObject{}, err
		}
	case typeBits&hitObjectBitSpinner != 0:
		ho.Kind = osu.KindSpinner
		if len(fields) < 6 {
			return osu.HitObject{}, fmt.Errorf("spinner: too few fields")
		}
		endTime, err := strconv.ParseFloat(strings.TrimSpace(fields[5]), 64)
		if err != nil {
			return osu.HitObject{}, fmt.Errorf("spinner endTime: %w", err)
		}
		ho.EndTime = endTime
	case typeBits&hitObjectBitHold != 0:
		ho.Kind = osu.KindHold
		if len(fields) < 6 {
			return osu.HitObject{}, fmt.Errorf("hold: too few fields")
		}
		endPart := strings.SplitN(strings.TrimSpace(fields[5]), ":", 2)[0]
		endTime, err := strconv.ParseFloat(endPart, 64)
		if err != nil {
			return osu.HitObject{}, fmt.Errorf("hold endTime: %w", err)
		}
		ho.EndTime = endTime
	case typeBits&hitObjectBitCircle != 0:
		ho.Kind = osu.KindCircle
	default:
		ho.Kind = osu.KindCircle
	}

	return ho, nil
}

// parseSliderPayload fills a slider's fields from the tail of a hit
// object line: curve, slides (repeats), pixelLen, and an optional
// edgeSounds list, in that order.
func parseSliderPayload(ho *osu.HitObject, tail []string) error {
	curveTokens := strings.Split(strings.TrimSpace(tail[0]), "|")
	if len(curveTokens[0]) == 0 {
		return fmt.Errorf("slider curve: missing path type tag")
	}
	curveType, ok := osu.PathTypeByTag(curveTokens[0][0])
	if !ok {
		return fmt.Errorf("slider curve: unknown path type %q", curveTokens[0])
	}

	points := make([]osu.PathControlPoint, 0, len(curveTokens))
	var prev osu.Pos2
	havePrev := false
	for _, tok := range curveTokens[1:] {
		pos, err := parsePoint(tok)
		if err != nil {
			return fmt.Errorf("slider point: %w", err)
		}
		point := osu.PathControlPoint{Pos: pos}
		if havePrev && pos == prev {
			t := curveType
			point.Kind = &t
		}
		points = append(points, point)
		prev, havePrev = pos, true
	}
	ho.ControlPoints = points

	repeats, err := strconv.ParseUint(strings.TrimSpace(tail[1]), 10, 32)
	if err != nil {
		return fmt.Errorf("slider repeats: %w", err)
	}
	ho.Repeats = uint(repeats)

	pixelLen, err := strconv.ParseFloat(strings.TrimSpace(tail[2]), 64)
	if err != nil {
		return fmt.Errorf("slider pixelLen: %w", err)
	}
	ho.PixelLen = &pixelLen

	if len(tail) > 3 && strings.TrimSpace(tail[3]) != "" {
		sounds := strings.Split(strings.TrimSpace(tail[3]), "|")
		edgeSounds := make([]uint8, 0, len(sounds))
		for _, s := range sounds {
			v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
			if err != nil {
				return fmt.Errorf("slider edgeSounds: %w", err)
			}
			edgeSounds = append(edgeSounds, uint8(v))
		}
		ho.EdgeSounds = edgeSounds
	}

	return nil
}

func parsePoint(tok string) (osu.Pos2, error) {
	parts := strings.SplitN(tok, ":", 2)
	if len(parts) != 2 {
		return osu.Pos2{}, fmt.Errorf("malformed point %q", tok)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return osu.Pos2{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return osu.Pos2{}, err
	}
	return osu.Pos2{X: float32(x), Y: float32(y)}, nil
}

// computeBPM derives a single representative BPM by weighting each
// uninherited timing point's BPM by the duration it's in effect for
// (up to the next uninherited point, or the last hit object's start
// time), then taking the weighted mean. Inherited (non-positive
// beatLength) timing points are excluded from both the numerator and
// the segment-duration weights, since they don't carry their own tempo.
func computeBPM(timingPoints []osu.TimingPoint, hitObjects []osu.HitObject) (float32, bool) {
	var uninherited []osu.TimingPoint
	for _, tp := range timingPoints {
		if tp.Uninherited() {
			uninherited = append(uninherited, tp)
		}
	}
	if len(uninherited) == 0 {
		return 0, false
	}
	if len(uninherited) == 1 || len(hitObjects) == 0 {
		return float32(60000 / uninherited[0].BeatLength), true
	}

	lastStart := hitObjects[len(hitObjects)-1].StartTime

	var weightedSum, totalWeight float64
	for i, tp := range uninherited {
		var duration float64
		if i+1 < len(uninherited) {
			duration = uninherited[i+1].Time - tp.Time
		} else {
			duration = lastStart - tp.Time
		}
		if duration <= 0 {
			continue
		}
		bpm := 60000 / tp.BeatLength
		weightedSum += bpm * duration
		totalWeight += duration
	}
	if totalWeight <= 0 {
		return float32(60000 / uninherited[0].BeatLength), true
	}
	return float32(weightedSum / totalWeight), true
}
