package models

// LoopLineInfo holds the fixed metadata of a known circular line
type LoopLineInfo struct {
	LineID int64
	Name   string

	// MajorStations are group ids used to name the two circular
	// directions, in increasing array index order.
	MajorStations []int64

	// Merged is set when the station data only carries one half of the
	// circle in order and the return half is spliced from MajorStations.
	Merged bool
}

// Known circular lines. Only these are treated as loops.
var loopLines = map[int64]LoopLineInfo{
	11302: {
		LineID: 11302,
		Name:   "Yamanote",
		// Tokyo, Shinagawa, Shibuya, Shinjuku, Ikebukuro, Ueno
		MajorStations: []int64{1130101, 1130103, 1130205, 1130208, 1130212, 1130220},
	},
	11623: {
		LineID: 11623,
		Name:   "Osaka Loop",
		// Osaka, Kyobashi, Tsuruhashi, Tennoji, Bentencho, Nishikujo
		MajorStations: []int64{1162310, 1162304, 1162317, 1162301, 1162322, 1162325},
	},
	99515: {
		LineID: 99515,
		Name:   "Meijo",
		// Sakae, Ozone, Nagoyadaigaku, Kanayama
		MajorStations: []int64{9951503, 9951508, 9951513, 9951520},
	},
}

// LoopLine returns the loop metadata for a line id
func LoopLine(id int64) (LoopLineInfo, bool) {
	info, ok := loopLines[id]
	return info, ok
}

// LoopLineIDs returns the ids of all known circular lines
func LoopLineIDs() []int64 {
	ids := make([]int64, 0, len(loopLines))
	for id := range loopLines {
		ids = append(ids, id)
	}
	return ids
}
