// internal/status/parse.go
package status

import (
	"strconv"
	"strings"
	"time"

	"github.com/tamzrod/zone-navigator/internal/zone"
)

// Parse decodes one output line. ok is false for lines that are not
// well-formed status lines; callers ignore those, which keeps the
// protocol forward-compatible.
func Parse(line string) (Event, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, Prefix) {
		return Event{}, false
	}
	body := line[len(Prefix):]

	// tag is everything up to the first space; key=value pairs follow
	tag, rest, _ := strings.Cut(body, " ")

	switch {
	case tag == tagDone:
		return Event{Kind: Done}, true

	case tag == tagTurnAround:
		return Event{Kind: TurnAround}, true

	case tag == tagStart:
		s, ok := scenarioField(rest, keyScenario)
		if !ok {
			return Event{}, false
		}
		return Event{Kind: Start, Scenario: s}, true

	case tag == tagAbortObstacle:
		mm, ok := intField(rest, keyDistanceMM)
		if !ok {
			return Event{}, false
		}
		return Event{Kind: AbortObstacle, DistanceMM: mm}, true

	case tag == tagAbortTimeout:
		ms, ok := intField(rest, keyElapsedMS)
		if !ok {
			return Event{}, false
		}
		return Event{Kind: AbortTimeout, Elapsed: time.Duration(ms) * time.Millisecond}, true

	case strings.HasPrefix(tag, tagTargetColor+"="):
		c := zone.Color(tag[len(tagTargetColor)+1:])
		if !c.IsStripe() {
			return Event{}, false
		}
		return Event{Kind: TargetColor, Color: c}, true

	case strings.HasPrefix(tag, tagZone+"="):
		s := zone.Scenario(tag[len(tagZone)+1:])
		if !s.IsValid() {
			return Event{}, false
		}
		return Event{Kind: Zone, Scenario: s}, true

	case strings.HasPrefix(tag, tagWrongWayFor):
		c := zone.Color(tag[len(tagWrongWayFor):])
		if !c.IsStripe() {
			return Event{}, false
		}
		return Event{Kind: WrongWay, Color: c}, true

	case strings.HasSuffix(tag, suffixReached):
		c := zone.Color(tag[:len(tag)-len(suffixReached)])
		if !c.IsStripe() {
			return Event{}, false
		}
		return Event{Kind: Reached, Color: c}, true

	default:
		return Event{}, false
	}
}

// scenarioField extracts key=<scenario> from a key=value list.
func scenarioField(rest, key string) (zone.Scenario, bool) {
	v, ok := field(rest, key)
	if !ok {
		return "", false
	}
	s := zone.Scenario(v)
	return s, s.IsValid()
}

// intField extracts key=<integer> from a key=value list.
func intField(rest, key string) (int, bool) {
	v, ok := field(rest, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func field(rest, key string) (string, bool) {
	for _, pair := range strings.Fields(rest) {
		k, v, ok := strings.Cut(pair, "=")
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}
