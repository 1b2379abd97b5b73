package simulation

import (
	"encoding/json"

	"github.com/vbutenko/csa-toolchain/datapath"
)

// ParseSchedule decodes the input-schedule wire format: a JSON array of
// `[tick, char]` pairs, ascending by tick, char a string of exactly one
// codepoint. EOF is the absence of further entries, so an empty array is
// a valid, fully-exhausted schedule.
func ParseSchedule(data []byte) ([]datapath.ScheduleEntry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ScheduleError{Index: -1, Err: err}
	}

	entries := make([]datapath.ScheduleEntry, 0, len(raw))
	for i, item := range raw {
		var pair [2]json.RawMessage
		if err := json.Unmarshal(item, &pair); err != nil {
			return nil, &ScheduleError{Index: i, Err: err}
		}

		var tick int
		if err := json.Unmarshal(pair[0], &tick); err != nil {
			return nil, &ScheduleError{Index: i, Err: err}
		}

		var ch string
		if err := json.Unmarshal(pair[1], &ch); err != nil {
			return nil, &ScheduleError{Index: i, Err: err}
		}
		runes := []rune(ch)
		if len(runes) != 1 {
			return nil, &ScheduleError{Index: i, Err: &CodepointError{Value: ch}}
		}

		entries = append(entries, datapath.ScheduleEntry{Tick: tick, Char: int32(runes[0])})
	}

	return entries, nil
}
