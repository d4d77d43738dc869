// Package skill emits the SKILL command script that builds a filled I/O ring
// in the layout editor.
//
// A [Generator] writes, in order: the instance of every component, the
// digital power rails with their corner jumpers, rail taps for digital
// power pads, digital-IO control routing, pin labels, and any node-specific
// geometry supplied by its [Strategy] (substrate tie-downs on T180).
//
// All coordinates are computed from pad origins with the same sequence of
// additions the layout team's reference scripts use, so the printed numbers
// match them digit for digit.
package skill
