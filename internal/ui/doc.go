package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires file picking, drag-and-drop and folder selection to the workflow
// coordinator and renders its state. All UI strings are localized via Localization.
