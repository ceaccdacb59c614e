package convert

// Package convert turns source audio files into Ogg Vorbis by invoking ffmpeg.
// Each call is independent and owns exactly one output file, so callers may
// run any number of conversions in parallel against the same directory.
