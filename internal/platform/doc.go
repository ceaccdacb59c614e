package platform

// Package platform contains OS/platform integration: filesystem helpers,
// default folder locations, drop expansion, audio tag reading, and OS reveal.
