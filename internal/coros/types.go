// ABOUTME: Symbolic names for magic constants in the Coros API.
// ABOUTME: Sport types, lap group types, and downloadable file formats.
package coros

import "fmt"

// SportType identifies the kind of activity. The Coros API reports these
// as bare integers; the known values below were partly taken from the
// Coros API reference and partly derived empirically. Unlisted values
// still round-trip, they just have no symbolic name.
type SportType int

const (
	SportIndoorRun   SportType = 101
	SportHike        SportType = 104
	SportIndoorBike  SportType = 201
	SportSkiTouring  SportType = 503
	SportIndoorClimb SportType = 800
	SportBouldering  SportType = 801
	SportWalk        SportType = 900
	SportJumpRope    SportType = 901
	SportMultisport  SportType = 10001
)

var sportNames = map[SportType]string{
	SportIndoorRun:   "indoor_run",
	SportHike:        "hike",
	SportIndoorBike:  "indoor_bike",
	SportSkiTouring:  "ski_touring",
	SportIndoorClimb: "indoor_climb",
	SportBouldering:  "bouldering",
	SportWalk:        "walk",
	SportJumpRope:    "jump_rope",
	SportMultisport:  "multisport",
}

// Name returns the symbolic name for a sport type, or "sport_<n>" for
// values not yet cataloged.
func (s SportType) Name() string {
	if name, ok := sportNames[s]; ok {
		return name
	}
	return fmt.Sprintf("sport_%d", int(s))
}

// LapType identifies a lap group in an activity detail payload. Bike
// rides and runs have specialized lap counters; only running groups
// carry a lapItemList today.
type LapType int

const (
	LapTypeBike LapType = 1
	LapTypeRun  LapType = 2
)

// FileType identifies a server-side activity export format.
type FileType int

const (
	FileCSV FileType = 0
	FileGPX FileType = 1
	FileKML FileType = 2
	FileTCX FileType = 3
	FileFIT FileType = 4
)

var fileExtensions = map[FileType]string{
	FileCSV: "csv",
	FileGPX: "gpx",
	FileKML: "kml",
	FileTCX: "tcx",
	FileFIT: "fit",
}

// ParseFileType maps a format name like "gpx" to its FileType.
func ParseFileType(name string) (FileType, error) {
	for ft, ext := range fileExtensions {
		if ext == name {
			return ft, nil
		}
	}
	return 0, fmt.Errorf("unknown file format: %q (use csv, gpx, kml, tcx, or fit)", name)
}

// Ext returns the file extension for the format, without the dot.
func (f FileType) Ext() string {
	return fileExtensions[f]
}
