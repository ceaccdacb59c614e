package asset

// Package asset emits the Stellaris music definition files (songs.asset and
// songs.txt) for every converted .ogg track found in a folder.
