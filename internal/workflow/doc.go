package workflow

// Package workflow coordinates the two user operations: converting the
// selected tracks into the output folder and committing the converted tracks
// as song definitions into the game music folder. It owns the observable
// state the UI and CLI render.
